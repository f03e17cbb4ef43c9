// ABOUTME: Ordered threshold tables and the evaluator shared by all classifiers.
// ABOUTME: Each table is a list of (predicate, label, severity); first match wins.
package vitals

// rule is one row of a threshold table.
type rule[T any] struct {
	match    func(T) bool
	label    Label
	severity Severity
}

// evaluate returns the classification of the first matching rule.
// Tables always end with an unconditional rule, so the fallback is unreachable
// for the built-in tables.
func evaluate[T any](rules []rule[T], v T) Classification {
	for _, r := range rules {
		if r.match(v) {
			return Classification{Label: r.label, Severity: r.severity}
		}
	}
	return NotAvailable
}

func below(limit float64) func(float64) bool {
	return func(v float64) bool { return v < limit }
}

func atMost(limit float64) func(float64) bool {
	return func(v float64) bool { return v <= limit }
}

func always[T any](T) bool { return true }

var bmiRules = []rule[float64]{
	{below(18.5), LabelUnderweight, Alert},
	{below(25), LabelNormal, Safe},
	{below(30), LabelOverweight, Warning},
	{always[float64], LabelObese, Alert},
}

var heartRateRules = []rule[float64]{
	{below(60), LabelLow, Warning},
	{atMost(100), LabelNormal, Safe},
	{always[float64], LabelHigh, Alert},
}

var respiratoryRateRules = []rule[float64]{
	{below(12), LabelLow, Warning},
	{atMost(20), LabelNormal, Safe},
	{always[float64], LabelHigh, Alert},
}

// Normal needs both sides in range; Elevated needs only one.
var bloodPressureRules = []rule[BloodPressure]{
	{func(bp BloodPressure) bool { return bp.Systolic < 120 && bp.Diastolic < 80 }, LabelNormal, Safe},
	{func(bp BloodPressure) bool { return bp.Systolic < 140 || bp.Diastolic < 90 }, LabelElevated, Warning},
	{always[BloodPressure], LabelHigh, Alert},
}
