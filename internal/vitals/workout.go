// ABOUTME: Workout suggestions by difficulty level and exercise type.
// ABOUTME: Second half of the smart helper next to the BMI diet goal.
package vitals

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrWorkoutLevelRequired is returned when no difficulty level is given.
var ErrWorkoutLevelRequired = errors.New("workout level is required")

// WorkoutLevels lists the accepted difficulty levels, easiest first.
var WorkoutLevels = []string{"beginner", "intermediate", "expert"}

// WorkoutTypes lists the accepted exercise types.
var WorkoutTypes = []string{"cardio", "strength", "stretching"}

// Exercise is one suggested movement.
type Exercise struct {
	Name      string `json:"name" yaml:"name"`
	Type      string `json:"type" yaml:"type"`
	Muscle    string `json:"muscle" yaml:"muscle"`
	Equipment string `json:"equipment" yaml:"equipment"`
	Level     string `json:"difficulty" yaml:"difficulty"`
}

var exercises = []Exercise{
	{"Brisk walking", "cardio", "legs", "none", "beginner"},
	{"Jumping jacks", "cardio", "full body", "none", "beginner"},
	{"Jump rope", "cardio", "calves", "jump rope", "intermediate"},
	{"Stair climbing", "cardio", "glutes", "stairs", "intermediate"},
	{"Sprint intervals", "cardio", "legs", "none", "expert"},
	{"Burpees", "cardio", "full body", "none", "expert"},

	{"Wall push-up", "strength", "chest", "wall", "beginner"},
	{"Bodyweight squat", "strength", "quadriceps", "none", "beginner"},
	{"Push-up", "strength", "chest", "none", "intermediate"},
	{"Dumbbell lunge", "strength", "quadriceps", "dumbbell", "intermediate"},
	{"Pull-up", "strength", "lats", "pull-up bar", "expert"},
	{"Barbell deadlift", "strength", "hamstrings", "barbell", "expert"},

	{"Standing hamstring stretch", "stretching", "hamstrings", "none", "beginner"},
	{"Child's pose", "stretching", "lower back", "mat", "beginner"},
	{"Pigeon pose", "stretching", "glutes", "mat", "intermediate"},
	{"Lunge with spinal twist", "stretching", "hip flexors", "none", "intermediate"},
	{"Front split", "stretching", "hamstrings", "mat", "expert"},
	{"Wheel pose", "stretching", "chest", "mat", "expert"},
}

// WorkoutSuggestion returns the exercises for a level, optionally narrowed
// to one exercise type. Level and type are matched case-insensitively.
func WorkoutSuggestion(level, exerciseType string) ([]Exercise, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	exerciseType = strings.ToLower(strings.TrimSpace(exerciseType))

	if level == "" {
		return nil, ErrWorkoutLevelRequired
	}
	if !slices.Contains(WorkoutLevels, level) {
		return nil, fmt.Errorf("unknown workout level: %s (use %s)", level, strings.Join(WorkoutLevels, ", "))
	}
	if exerciseType != "" && !slices.Contains(WorkoutTypes, exerciseType) {
		return nil, fmt.Errorf("unknown exercise type: %s (use %s)", exerciseType, strings.Join(WorkoutTypes, ", "))
	}

	var out []Exercise
	for _, e := range exercises {
		if e.Level != level {
			continue
		}
		if exerciseType != "" && e.Type != exerciseType {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
