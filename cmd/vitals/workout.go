// ABOUTME: CLI command suggesting exercises by level and type.
// ABOUTME: Reads from the built-in exercise table; no storage needed.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/vitals/internal/vitals"
	"github.com/spf13/cobra"
)

var (
	workoutLevel string
	workoutType  string
)

var workoutCmd = &cobra.Command{
	Use:   "workout",
	Short: "Suggest exercises for a difficulty level",
	Long: `Suggest exercises for a difficulty level, optionally narrowed to one type.

LEVELS:  beginner, intermediate, expert
TYPES:   cardio, strength, stretching

EXAMPLES:

  vitals workout
  vitals workout --level expert --type cardio`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exercises, err := vitals.WorkoutSuggestion(workoutLevel, workoutType)
		if err != nil {
			return err
		}

		title := strings.ToLower(strings.TrimSpace(workoutLevel))
		if t := strings.ToLower(strings.TrimSpace(workoutType)); t != "" {
			title += " " + t
		}
		color.Cyan("Workout: %s", title)
		for _, e := range exercises {
			fmt.Printf("  %-28s %-11s %-12s %s\n", e.Name, e.Type, e.Muscle, color.New(color.Faint).Sprint(e.Equipment))
		}
		return nil
	},
}

func init() {
	workoutCmd.Flags().StringVarP(&workoutLevel, "level", "l", "beginner", "difficulty level")
	workoutCmd.Flags().StringVarP(&workoutType, "type", "t", "", "exercise type (default: all)")
	rootCmd.AddCommand(workoutCmd)
}
