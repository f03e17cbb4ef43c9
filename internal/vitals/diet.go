// ABOUTME: BMI-driven diet goal used by the smart helper.
// ABOUTME: Reuses the ordered rule evaluator with a goal per BMI band.
package vitals

// Diet is a nutrition goal with a sample food query for it.
type Diet struct {
	Goal  string  `json:"goal" yaml:"goal"`
	Query string  `json:"query" yaml:"query"`
	BMI   float64 `json:"bmi" yaml:"bmi"`
}

type dietBand struct {
	match func(float64) bool
	goal  string
	query string
}

var dietBands = []dietBand{
	{below(18.5), "High calorie diet", "1 banana, 2 tbsp peanut butter, 1 glass milk"},
	{below(25), "Balanced diet", "150g chicken breast, 1 cup rice, 1 apple"},
	{always[float64], "Low calorie diet", "2 eggs, 1 apple, 50g oats"},
}

// DietGoal picks the diet goal for a BMI. It returns false when bmi is absent.
func DietGoal(bmi *float64) (Diet, bool) {
	if !present(bmi) {
		return Diet{}, false
	}
	for _, b := range dietBands {
		if b.match(*bmi) {
			return Diet{Goal: b.goal, Query: b.query, BMI: *bmi}, true
		}
	}
	return Diet{}, false
}
