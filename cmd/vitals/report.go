// ABOUTME: CLI commands for analyzing and managing medical reports.
// ABOUTME: Provides report analyze, list, show, and delete subcommands.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/harperreed/vitals/internal/models"
	"github.com/harperreed/vitals/internal/report"
	"github.com/spf13/cobra"
)

var (
	reportGender string
	reportSave   bool
	reportLimit  int
)

var reportCmd = &cobra.Command{
	Use:     "report",
	Aliases: []string{"r"},
	Short:   "Analyze and manage medical reports",
	Long: `Analyze plain-text medical reports and manage saved analyses.

Analysis extracts patient details and vitals, compares each vital with its
normal range, and derives an overall status: Normal, Attention, or Critical.

EXAMPLES:

  vitals report analyze lab.txt                 # Print analysis only
  vitals report analyze lab.txt --save          # Save report and its readings
  vitals report analyze lab.txt --gender female # Override detected gender
  vitals report list                            # Recent analyses
  vitals report show abc12345                   # Full analysis
  vitals report delete abc12345                 # Remove report and readings`,
}

var reportAnalyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a text report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		r := report.Analyze(filepath.Base(filename), string(data), reportGender)
		logger.Debug("report analyzed", "source", r.Source, "vitals", len(r.Vitals), "status", r.Status)

		if reportSave {
			if err := repo.SaveReport(r); err != nil {
				return fmt.Errorf("failed to save report: %w", err)
			}
			for _, reading := range r.Readings {
				if err := notifier.Notify(cmd.Context(), reading); err != nil {
					logger.Warn("alert not published", "id", reading.ID.String()[:8], "err", err)
				}
			}
			color.Green("✓ Saved report with %d readings", len(r.Readings))

			pruned, err := repo.PruneReports(cfg.GetReportKeep())
			if err != nil {
				logger.Warn("report cleanup failed", "err", err)
			} else if pruned > 0 {
				color.Yellow("Removed %d older report(s)", pruned)
			}
		}

		printReport(r)
		return nil
	},
}

var reportListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List analyzed reports",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reports, err := repo.ListReports(reportLimit)
		if err != nil {
			return fmt.Errorf("failed to list reports: %w", err)
		}

		if len(reports) == 0 {
			fmt.Println("No reports found.")
			return nil
		}

		for _, r := range reports {
			printReportLine(r)
		}
		return nil
	},
}

var reportShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := repo.GetReport(args[0])
		if err != nil {
			return fmt.Errorf("report not found: %w", err)
		}

		printReport(r)
		return nil
	},
}

var reportDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a report and its readings",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := repo.GetReport(args[0])
		if err != nil {
			return fmt.Errorf("report not found: %w", err)
		}

		if err := repo.DeleteReport(r.ID.String()); err != nil {
			return fmt.Errorf("failed to delete report: %w", err)
		}

		color.Yellow("✗ Deleted report %s", r.Source)
		fmt.Printf("  %s %d readings removed\n",
			color.New(color.Faint).Sprint(r.ID.String()[:8]),
			len(r.Readings))
		return nil
	},
}

func printReport(r *models.Report) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	bold.Printf("Report %s ", r.Source)
	fmt.Println(statusColor(r.Status).Sprint(r.Status))
	faint.Printf("  %s  analyzed %s\n", r.ID.String()[:8], r.AnalyzedAt.Local().Format("2006-01-02 15:04"))

	if len(r.Patient) > 0 {
		fmt.Println()
		bold.Println("PATIENT")
		keys := make([]string, 0, len(r.Patient))
		for k := range r.Patient {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %s %s\n", padRight(k, 14), r.Patient[k])
		}
	}

	fmt.Println()
	bold.Println("COMPARISON")
	if len(r.Comparisons) == 0 {
		faint.Println("  No recognized vitals.")
	}
	for _, c := range r.Comparisons {
		fmt.Printf("  %s %s %s %s\n",
			padRight(c.Vital, 24),
			padRight(c.PatientValue, 14),
			padRight(c.NormalRange, 18),
			findingColor(c.Status).Sprint(c.Status))
	}

	if len(r.Observations) > 0 {
		fmt.Println()
		bold.Println("OBSERVATIONS")
		for _, o := range r.Observations {
			fmt.Printf("  • %s\n", o)
		}
	}

	fmt.Println()
	bold.Println("CONCLUSION")
	fmt.Printf("  %s\n", r.Conclusion)
}

func findingColor(f models.Finding) *color.Color {
	if f.IsAbnormal() {
		return color.New(color.FgRed)
	}
	return color.New(color.FgGreen)
}

func init() {
	reportAnalyzeCmd.Flags().StringVar(&reportGender, "gender", "", "patient gender for gender-based ranges (male|female)")
	reportAnalyzeCmd.Flags().BoolVar(&reportSave, "save", false, "save the report and add its vitals as readings")
	reportListCmd.Flags().IntVarP(&reportLimit, "limit", "n", 20, "max number of results")

	reportCmd.AddCommand(reportAnalyzeCmd)
	reportCmd.AddCommand(reportListCmd)
	reportCmd.AddCommand(reportShowCmd)
	reportCmd.AddCommand(reportDeleteCmd)
	rootCmd.AddCommand(reportCmd)
}
