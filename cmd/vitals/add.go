// ABOUTME: CLI command for recording vital-sign readings.
// ABOUTME: Validates the value, stores it, and publishes alert readings.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/vitals/internal/models"
	"github.com/harperreed/vitals/internal/vitals"
	"github.com/spf13/cobra"
)

var (
	addAt    string
	addNotes string
)

var addCmd = &cobra.Command{
	Use:     "add <kind> <value> [diastolic]",
	Aliases: []string{"a"},
	Short:   "Record a vital-sign reading",
	Long: `Record a reading. Blood pressure takes "sys/dia" or two separate values.

Readings classified as alert severity are published to the alert queue
when one is configured.

Examples:
  vitals add bp 118/79
  vitals add bp 140 90
  vitals add hr 72 --at "2024-12-14 07:00"
  vitals add bmi 24.5 --notes "after holidays"`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKindArg(args[0])
		if err != nil {
			return err
		}

		value, err := readingValue(kind, args[1:])
		if err != nil {
			return err
		}

		r := models.NewReading(kind, value)

		// Handle --at flag
		if addAt != "" {
			t, err := parseTime(addAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", addAt)
			}
			r.WithRecordedAt(t)
		}

		// Handle --notes flag
		if addNotes != "" {
			r.WithNotes(addNotes)
		}

		if err := repo.CreateReading(r); err != nil {
			return fmt.Errorf("failed to create reading: %w", err)
		}
		logger.Debug("reading stored", "id", r.ID.String(), "kind", r.Kind)

		if err := notifier.Notify(cmd.Context(), r); err != nil {
			logger.Warn("alert not published", "id", r.ID.String()[:8], "err", err)
		}

		color.Green("✓ Added %s", kindTitle(kind))
		fmt.Printf("  %s %s %s\n",
			color.New(color.Faint).Sprint(r.ID.String()[:8]),
			formatValue(r),
			badge(r.Classification()))

		return nil
	},
}

// readingValue validates the value arguments for kind and returns the
// text to store.
func readingValue(kind vitals.Kind, args []string) (string, error) {
	if kind == vitals.KindBloodPressure {
		value := args[0]
		if len(args) == 2 {
			value = args[0] + "/" + args[1]
		}
		bp, ok := vitals.ParseBloodPressure(value)
		if !ok {
			return "", fmt.Errorf("invalid blood pressure: %s (use systolic/diastolic)", value)
		}
		return bp.String(), nil
	}

	if len(args) > 1 {
		return "", fmt.Errorf("%s takes a single value", kind)
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return "", fmt.Errorf("invalid value: %s", args[0])
	}
	return strconv.FormatFloat(v, 'f', -1, 64), nil
}

func formatValue(r *models.Reading) string {
	if r.Unit == "" {
		return r.Value
	}
	return r.Value + " " + r.Unit
}

// parseTime reads layouts without a zone in local time.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	for _, f := range formats {
		if t, err := time.ParseInLocation(f, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

func init() {
	addCmd.Flags().StringVar(&addAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "notes for the reading")
	rootCmd.AddCommand(addCmd)
}
