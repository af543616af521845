package cli

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kailas-cloud/learnhub/pkg/learnhub"
)

const (
	fallbackWidth = 80
	labelWidth    = 5
	valueWidth    = 8 // " 24.0h" plus margin
)

var chartWidth int

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show study stats and the weekly study chart",
	Args:  cobra.NoArgs,
	RunE:  runAnalytics,
}

func init() {
	analyticsCmd.Flags().IntVarP(&chartWidth, "width", "w", 0, "chart width in columns (default: terminal width)")
	rootCmd.AddCommand(analyticsCmd)
}

func runAnalytics(cmd *cobra.Command, _ []string) error {
	width := chartWidth
	if width < 0 {
		return fmt.Errorf("width must not be negative: %d", width)
	}
	if width == 0 {
		width = barColumns(terminalWidth())
	}

	dash, err := screens.Dashboard(cmd.Context(), float64(width))
	if err != nil {
		return fmt.Errorf("load analytics: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd, dash)
	}

	cards := make([]string, 0, len(dash.Stats))
	for _, s := range dash.Stats {
		cards = append(cards, renderCard(s))
	}
	cmd.Println(titleStyle.Render("Analytics"))
	cmd.Println(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	cmd.Println()
	cmd.Println(titleStyle.Render("Weekly study hours"))
	for _, b := range dash.Weekly {
		cmd.Println(renderBar(b))
	}
	if len(dash.Achievements) > 0 {
		cmd.Println()
		cmd.Println(titleStyle.Render("Recent achievements"))
		for _, a := range dash.Achievements {
			cmd.Printf("  %s  %s\n", titleStyle.Render(a.Title), mutedStyle.Render(a.EarnedAgo))
			cmd.Printf("  %s\n", a.Description)
		}
	}
	return nil
}

func renderCard(s learnhub.StatCard) string {
	change := negativeStyle.Render(s.Change)
	if s.Positive {
		change = positiveStyle.Render(s.Change)
	}
	return cardStyle.Render(mutedStyle.Render(s.Label) + "\n" + titleStyle.Render(s.Value) + "\n" + change)
}

func renderBar(b learnhub.Bar) string {
	cells := int(math.Round(b.Size))
	return fmt.Sprintf("%-*s %s %s", labelWidth, b.Label,
		barStyle.Render(strings.Repeat("█", cells)),
		mutedStyle.Render(fmt.Sprintf("%.1fh", b.Magnitude)))
}

// barColumns leaves room for the label column and the hours value.
func barColumns(total int) int {
	return max(1, total-labelWidth-valueWidth)
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fallbackWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return fallbackWidth
	}
	return w
}
