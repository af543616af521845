package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var coursesCmd = &cobra.Command{
	Use:   "courses [query]",
	Short: "List courses, optionally filtered by title",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCourses,
}

func init() {
	rootCmd.AddCommand(coursesCmd)
}

func runCourses(cmd *cobra.Command, args []string) error {
	query := queryArg(args)
	courses, err := screens.Courses(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("list courses: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd, courses)
	}
	if len(courses) == 0 {
		cmd.Println(mutedStyle.Render(fmt.Sprintf("No courses match %q.", query)))
		return nil
	}

	cmd.Println(titleStyle.Render("Courses"))
	cmd.Println()
	for _, c := range courses {
		cmd.Printf("  %s%s\n", titleStyle.Render(c.Title), levelStyle.Render(c.Level))
		cmd.Printf("  %s\n", c.Description)
		cmd.Printf("  %s  %s\n\n", progressBar(c.Progress, 20), mutedStyle.Render(c.Duration))
	}
	return nil
}

// progressBar renders percent as a fixed-width bar followed by the number.
func progressBar(percent, width int) string {
	percent = max(0, min(100, percent))
	filled := percent * width / 100
	return barStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled)) +
		fmt.Sprintf(" %d%%", percent)
}

func queryArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
