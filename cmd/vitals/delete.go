// ABOUTME: CLI command for deleting vital-sign readings.
// ABOUTME: Supports deletion by full ID or ID prefix.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a reading",
	Long: `Delete a reading by its ID or ID prefix.

You can use either the full UUID or just the first few characters (prefix).
The ID prefix is shown in the first column of 'vitals list' output.

EXAMPLES:

  vitals delete abc12345                    # Delete by 8-char prefix
  vitals delete abc12345-1234-1234-...      # Delete by full UUID
  vitals rm abc1                            # Short prefix (if unique)

CAUTION:

  This permanently deletes the reading. There is no undo.
  If the prefix matches multiple readings, an error is returned.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idOrPrefix := args[0]

		// First, fetch the reading to show what we're deleting
		r, err := repo.GetReading(idOrPrefix)
		if err != nil {
			return fmt.Errorf("reading not found: %w", err)
		}

		if err := repo.DeleteReading(r.ID.String()); err != nil {
			return fmt.Errorf("failed to delete reading: %w", err)
		}

		color.Yellow("✗ Deleted %s", kindTitle(r.Kind))
		fmt.Printf("  %s %s\n",
			color.New(color.Faint).Sprint(r.ID.String()[:8]),
			formatValue(r))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
