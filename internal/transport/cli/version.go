package cli

import (
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/learnhub/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	// Overrides the root hook: printing the version never opens content.
	PersistentPreRun: func(*cobra.Command, []string) {},
	Run: func(cmd *cobra.Command, _ []string) {
		if jsonOutput {
			_ = printJSON(cmd, map[string]string{
				"version": version.Version,
				"commit":  version.Commit,
				"date":    version.Date,
			})
			return
		}
		cmd.Printf("learnhub %s (commit %s, built %s)\n", version.Version, version.Commit, version.Date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
