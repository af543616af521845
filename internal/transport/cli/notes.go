package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var notesCmd = &cobra.Command{
	Use:   "notes [query]",
	Short: "List study notes, optionally filtered by title or content",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runNotes,
}

func init() {
	rootCmd.AddCommand(notesCmd)
}

func runNotes(cmd *cobra.Command, args []string) error {
	query := queryArg(args)
	notes, err := screens.Notes(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("list notes: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd, notes)
	}
	if len(notes) == 0 {
		cmd.Println(mutedStyle.Render(fmt.Sprintf("No notes match %q.", query)))
		return nil
	}

	cmd.Println(titleStyle.Render("Notes"))
	cmd.Println()
	for _, n := range notes {
		cmd.Printf("  %s  %s\n", titleStyle.Render(n.Title), mutedStyle.Render(n.UpdatedAgo))
		cmd.Printf("  %s\n", n.Content)
		if len(n.Tags) > 0 {
			cmd.Printf("  %s\n", tagStyle.Render("#"+strings.Join(n.Tags, " #")))
		}
		cmd.Println()
	}
	return nil
}
