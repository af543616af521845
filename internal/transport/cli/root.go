// Package cli is the learnhub command-line interface.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/learnhub/internal/version"
	"github.com/kailas-cloud/learnhub/pkg/learnhub"
)

// Screens is the screen data the commands render.
type Screens interface {
	Courses(ctx context.Context, query string) ([]learnhub.Course, error)
	Notes(ctx context.Context, query string) ([]learnhub.Note, error)
	Dashboard(ctx context.Context, scale float64) (learnhub.Dashboard, error)
}

var (
	screens     Screens
	contentFile string
	jsonOutput  bool
)

var rootCmd = &cobra.Command{
	Use:   "learnhub",
	Short: "Browse learnhub courses, notes and study analytics",
	Long: `learnhub prints the study companion's screens in the terminal.
Lists are filtered with a case-insensitive substring query; the weekly
study chart is scaled to the terminal width.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if screens != nil {
			return nil
		}
		c, err := learnhub.New(learnhub.WithContent(contentFile))
		if err != nil {
			return fmt.Errorf("open content: %w", err)
		}
		screens = c
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&contentFile, "content", "", "YAML content file (default: built-in content)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
}

// SetScreens injects the screen data source. Nil restores the default client.
func SetScreens(s Screens) {
	screens = s
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
