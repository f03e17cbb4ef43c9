// ABOUTME: CLI command rendering the vitals dashboard.
// ABOUTME: Shows latest value, badge, and reference range per vital with trends.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/vitals/internal/models"
	"github.com/harperreed/vitals/internal/storage"
	"github.com/harperreed/vitals/internal/vitals"
	"github.com/spf13/cobra"
)

var dashboardTrend int

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "d"},
	Short:   "Show the vitals dashboard",
	Long: `Show the latest value of every vital with its classification badge.

BADGES:

  green    safe       value within the normal range
  yellow   warning    elevated or mildly out of range
  red      alert      needs attention
  faint    neutral    no data (N/A)

Below the table, BMI and heart rate trends list the most recent values
oldest first, followed by the status of the latest analyzed report.

EXAMPLES:

  vitals dashboard             # Default 10-point trends
  vitals dash --trend 30       # Longer trends`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := storage.BuildDashboard(repo, dashboardTrend)
		if err != nil {
			return fmt.Errorf("failed to build dashboard: %w", err)
		}

		bold := color.New(color.Bold)
		faint := color.New(color.Faint)

		bold.Println("VITALS")
		for _, kind := range vitals.AllKinds {
			value := "-"
			when := ""
			if r, ok := d.Readings[kind]; ok {
				value = formatValue(r)
				when = r.RecordedAt.Local().Format("2006-01-02 15:04")
			}
			fmt.Printf("  %s %s %s %s %s\n",
				padRight(kindTitle(kind), 18),
				padRight(value, 18),
				padRight(badge(d.Status[kind]), 14+badgeEscapeLen(d.Status[kind])),
				faint.Sprintf("normal %s", vitals.ReferenceRanges[kind]),
				faint.Sprint(when))
		}

		fmt.Println()
		bold.Println("TRENDS")
		fmt.Printf("  %s %s\n", padRight("BMI", 18), formatTrend(d.BMITrend))
		fmt.Printf("  %s %s\n", padRight("Heart rate", 18), formatTrend(d.HeartRateTrend))

		fmt.Println()
		bold.Println("LATEST REPORT")
		if d.LatestReport == nil {
			faint.Println("  No reports analyzed yet.")
			return nil
		}
		printReportLine(d.LatestReport)
		fmt.Printf("  %s\n", d.LatestReport.Conclusion)
		return nil
	},
}

// badgeEscapeLen is the width of the color escape codes around a badge,
// so padding lines up whether or not color is enabled.
func badgeEscapeLen(c vitals.Classification) int {
	return len(badge(c)) - len("["+string(c.Label)+"]")
}

func formatTrend(points []storage.TrendPoint) string {
	if len(points) == 0 {
		return color.New(color.Faint).Sprint("no data")
	}
	values := make([]string, 0, len(points))
	for _, p := range points {
		values = append(values, strconv.FormatFloat(p.Value, 'f', -1, 64))
	}
	return strings.Join(values, " → ")
}

func statusColor(s models.Status) *color.Color {
	switch s {
	case models.StatusNormal:
		return color.New(color.FgGreen)
	case models.StatusAttention:
		return color.New(color.FgYellow)
	case models.StatusCritical:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.Faint)
	}
}

func printReportLine(r *models.Report) {
	faint := color.New(color.Faint)
	fmt.Printf("  %s %s %s %s\n",
		faint.Sprint(r.ID.String()[:8]),
		faint.Sprint(r.AnalyzedAt.Local().Format("2006-01-02 15:04")),
		padRight(truncate(r.Source, 24), 24),
		statusColor(r.Status).Sprint(r.Status))
}

func init() {
	dashboardCmd.Flags().IntVar(&dashboardTrend, "trend", storage.DefaultTrendLimit, "number of points per trend")
	rootCmd.AddCommand(dashboardCmd)
}
