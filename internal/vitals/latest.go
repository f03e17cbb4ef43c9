// ABOUTME: LatestVitals record supplied by the dashboard data source.
// ABOUTME: Each optional field is classified independently at render time.
package vitals

import "strconv"

// LatestVitals is the most recent value of each vital, any of which may be absent.
type LatestVitals struct {
	BP              *string  `json:"bp,omitempty" yaml:"bp,omitempty"`
	BMI             *float64 `json:"bmi,omitempty" yaml:"bmi,omitempty"`
	HeartRate       *float64 `json:"heart_rate,omitempty" yaml:"heart_rate,omitempty"`
	RespiratoryRate *float64 `json:"respiratory_rate,omitempty" yaml:"respiratory_rate,omitempty"`
}

// Classify returns a classification for every kind, N/A where absent.
func (l LatestVitals) Classify() map[Kind]Classification {
	return map[Kind]Classification{
		KindBloodPressure:   ClassifyBloodPressure(l.BP),
		KindBMI:             ClassifyBMI(l.BMI),
		KindHeartRate:       ClassifyHeartRate(l.HeartRate),
		KindRespiratoryRate: ClassifyRespiratoryRate(l.RespiratoryRate),
	}
}

// Set stores a raw value under kind, coercing numbers loosely.
func (l *LatestVitals) Set(kind Kind, raw any) {
	switch kind {
	case KindBloodPressure:
		switch s := raw.(type) {
		case string:
			l.BP = &s
		case *string:
			l.BP = s
		}
	case KindBMI:
		l.BMI = Number(raw)
	case KindHeartRate:
		l.HeartRate = Number(raw)
	case KindRespiratoryRate:
		l.RespiratoryRate = Number(raw)
	}
}

// Raw returns the stored value for kind as display text, or "" when absent.
func (l LatestVitals) Raw(kind Kind) string {
	switch kind {
	case KindBloodPressure:
		if l.BP != nil {
			return *l.BP
		}
	case KindBMI:
		return formatOptional(l.BMI)
	case KindHeartRate:
		return formatOptional(l.HeartRate)
	case KindRespiratoryRate:
		return formatOptional(l.RespiratoryRate)
	}
	return ""
}

func formatOptional(v *float64) string {
	if !present(v) {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
