// ABOUTME: CLI command for listing vital-sign readings.
// ABOUTME: Supports filtering by kind and limiting results.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/vitals/internal/vitals"
	"github.com/spf13/cobra"
)

var (
	listKind  string
	listLimit int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List vital-sign readings",
	Long: `List recent readings, newest first.

OUTPUT FORMAT:

  Each line shows: ID  TIMESTAMP  KIND  VALUE  BADGE  (NOTES)

  The ID is an 8-character prefix you can use with delete commands.

FILTERING:

  Use --kind to filter by vital:
    blood_pressure (bp), respiratory_rate (rr), bmi, heart_rate (hr)

EXAMPLES:

  vitals list                  # Show last 20 readings (all kinds)
  vitals list --kind bp        # Show only blood pressure
  vitals list -k hr -n 50      # Show last 50 heart rate readings`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var kind *vitals.Kind
		if listKind != "" {
			k, err := parseKindArg(listKind)
			if err != nil {
				return err
			}
			kind = &k
		}

		readings, err := repo.ListReadings(kind, listLimit)
		if err != nil {
			return fmt.Errorf("failed to list readings: %w", err)
		}

		if len(readings) == 0 {
			fmt.Println("No readings found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, r := range readings {
			notes := ""
			if r.Notes != nil && *r.Notes != "" {
				notes = faint.Sprintf(" (%s)", truncate(*r.Notes, 30))
			}
			fmt.Printf("%s %s %s %s %s%s\n",
				faint.Sprint(r.ID.String()[:8]),
				faint.Sprint(r.RecordedAt.Local().Format("2006-01-02 15:04")),
				padRight(string(r.Kind), 17),
				padRight(formatValue(r), 18),
				badge(r.Classification()),
				notes)
		}

		return nil
	},
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	listCmd.Flags().StringVarP(&listKind, "kind", "k", "", "filter by vital kind")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results")
	rootCmd.AddCommand(listCmd)
}
