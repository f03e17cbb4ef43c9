// ABOUTME: CLI command suggesting a diet goal from BMI.
// ABOUTME: Falls back to the most recent stored BMI reading.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/vitals/internal/vitals"
	"github.com/spf13/cobra"
)

var dietCmd = &cobra.Command{
	Use:   "diet [bmi]",
	Short: "Suggest a diet goal for a BMI",
	Long: `Suggest a diet goal and a sample meal for a BMI value.

Without an argument the latest stored BMI reading is used.

GOALS:

  BMI < 18.5          High calorie diet
  18.5 <= BMI < 25    Balanced diet
  BMI >= 25           Low calorie diet

EXAMPLES:

  vitals diet 27.3
  vitals diet`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var bmi *float64
		if len(args) == 1 {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid BMI: %s", args[0])
			}
			bmi = &v
		} else {
			latest, err := repo.GetLatestReading(vitals.KindBMI)
			if err != nil {
				return fmt.Errorf("no BMI given and none stored: %w", err)
			}
			bmi = latest.Number()
		}

		diet, ok := vitals.DietGoal(bmi)
		if !ok {
			return fmt.Errorf("BMI is not a number")
		}

		fmt.Printf("BMI %s %s\n",
			strconv.FormatFloat(diet.BMI, 'f', -1, 64),
			badge(vitals.ClassifyBMI(bmi)))
		color.Green("  Goal:   %s", diet.Goal)
		fmt.Printf("  Sample: %s\n", diet.Query)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dietCmd)
}
