// ABOUTME: CLI command for classifying a single vital-sign value.
// ABOUTME: Also holds the badge coloring shared by dashboard and list output.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/vitals/internal/vitals"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:     "classify <kind> <value>",
	Aliases: []string{"c"},
	Short:   "Classify a vital-sign value",
	Long: `Classify a single value without storing it.

KINDS:

  blood_pressure (bp)     "<systolic>/<diastolic>", e.g. 135/85
  respiratory_rate (rr)   breaths per minute
  bmi                     body mass index
  heart_rate (hr)         beats per minute

EXAMPLES:

  vitals classify bp 135/85     # Elevated
  vitals classify bp 145/95     # High
  vitals classify bmi 31.2      # Obese
  vitals classify hr 58         # Low`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKindArg(args[0])
		if err != nil {
			return err
		}

		c := vitals.Classify(kind, args[1])
		fmt.Printf("%s %s  %s\n",
			padRight(kindTitle(kind), 18),
			badge(c),
			color.New(color.Faint).Sprintf("normal %s", vitals.ReferenceRanges[kind]))
		return nil
	},
}

func parseKindArg(s string) (vitals.Kind, error) {
	kind, ok := vitals.ParseKind(strings.ToLower(s))
	if !ok {
		return "", fmt.Errorf("unknown vital kind: %s\nValid kinds: blood_pressure (bp), respiratory_rate (rr), bmi, heart_rate (hr)", s)
	}
	return kind, nil
}

// severityColor maps a severity to its badge color.
func severityColor(s vitals.Severity) *color.Color {
	switch s {
	case vitals.Safe:
		return color.New(color.FgGreen)
	case vitals.Warning:
		return color.New(color.FgYellow)
	case vitals.Alert:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.Faint)
	}
}

func badge(c vitals.Classification) string {
	return severityColor(c.Severity).Sprintf("[%s]", c.Label)
}

func kindTitle(k vitals.Kind) string {
	switch k {
	case vitals.KindBMI:
		return "BMI"
	case vitals.KindBloodPressure:
		return "Blood pressure"
	case vitals.KindHeartRate:
		return "Heart rate"
	case vitals.KindRespiratoryRate:
		return "Respiratory rate"
	}
	return string(k)
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
