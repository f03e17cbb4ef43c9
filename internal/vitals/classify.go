// ABOUTME: Classifiers for BMI, blood pressure, heart rate, and respiratory rate.
// ABOUTME: Every function is total: absent or malformed input yields N/A.
package vitals

import (
	"math"
	"strconv"
	"strings"
)

// BloodPressure is a parsed "<systolic>/<diastolic>" reading in mmHg.
type BloodPressure struct {
	Systolic  float64
	Diastolic float64
}

// String formats the reading as "sys/dia".
func (bp BloodPressure) String() string {
	return strconv.FormatFloat(bp.Systolic, 'f', -1, 64) + "/" +
		strconv.FormatFloat(bp.Diastolic, 'f', -1, 64)
}

// ParseBloodPressure splits s on "/" and parses both halves as numbers.
// Anything after a second slash is ignored.
func ParseBloodPressure(s string) (BloodPressure, bool) {
	if !strings.Contains(s, "/") {
		return BloodPressure{}, false
	}
	parts := strings.Split(s, "/")
	sys, ok := parseNumber(parts[0])
	if !ok {
		return BloodPressure{}, false
	}
	dia, ok := parseNumber(parts[1])
	if !ok {
		return BloodPressure{}, false
	}
	return BloodPressure{Systolic: sys, Diastolic: dia}, true
}

// ClassifyBMI classifies a body mass index.
func ClassifyBMI(v *float64) Classification {
	if !present(v) {
		return NotAvailable
	}
	return evaluate(bmiRules, *v)
}

// ClassifyBloodPressure classifies a "<systolic>/<diastolic>" string.
func ClassifyBloodPressure(v *string) Classification {
	if v == nil {
		return NotAvailable
	}
	bp, ok := ParseBloodPressure(*v)
	if !ok {
		return NotAvailable
	}
	return evaluate(bloodPressureRules, bp)
}

// ClassifyHeartRate classifies a heart rate in beats per minute.
func ClassifyHeartRate(v *float64) Classification {
	if !present(v) {
		return NotAvailable
	}
	return evaluate(heartRateRules, *v)
}

// ClassifyRespiratoryRate classifies a respiratory rate in breaths per minute.
func ClassifyRespiratoryRate(v *float64) Classification {
	if !present(v) {
		return NotAvailable
	}
	return evaluate(respiratoryRateRules, *v)
}

// Classify dispatches a loosely typed raw value to the classifier for kind.
// Blood pressure only accepts string input; numeric kinds go through Number.
func Classify(kind Kind, raw any) Classification {
	switch kind {
	case KindBMI:
		return ClassifyBMI(Number(raw))
	case KindHeartRate:
		return ClassifyHeartRate(Number(raw))
	case KindRespiratoryRate:
		return ClassifyRespiratoryRate(Number(raw))
	case KindBloodPressure:
		switch s := raw.(type) {
		case string:
			return ClassifyBloodPressure(&s)
		case *string:
			return ClassifyBloodPressure(s)
		}
	}
	return NotAvailable
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// String returns a pointer to s.
func String(s string) *string { return &s }

func present(v *float64) bool {
	return v != nil && !math.IsNaN(*v)
}

// parseNumber accepts finite numeric text only; "inf" and "nan" spellings
// are rejected.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
