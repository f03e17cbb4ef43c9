// ABOUTME: Kind enum naming the vital signs the classifier understands.
// ABOUTME: Also holds units, reference ranges, and loose numeric coercion.
package vitals

import (
	"encoding/json"
	"math"
)

// Kind identifies a vital sign.
type Kind string

const (
	KindBMI             Kind = "bmi"
	KindBloodPressure   Kind = "blood_pressure"
	KindHeartRate       Kind = "heart_rate"
	KindRespiratoryRate Kind = "respiratory_rate"
)

// AllKinds lists every supported kind in display order.
var AllKinds = []Kind{KindBloodPressure, KindRespiratoryRate, KindBMI, KindHeartRate}

// Units maps kinds to their display units.
var Units = map[Kind]string{
	KindBMI:             "",
	KindBloodPressure:   "mmHg",
	KindHeartRate:       "bpm",
	KindRespiratoryRate: "breaths/min",
}

// ReferenceRanges is the normal range shown next to each reading.
var ReferenceRanges = map[Kind]string{
	KindBMI:             "18.5 – 24.9",
	KindBloodPressure:   "< 120/80 mmHg",
	KindHeartRate:       "60 – 100 bpm",
	KindRespiratoryRate: "12 – 20 /min",
}

// kindAliases accepts the short names used by the dashboard payload.
var kindAliases = map[string]Kind{
	"bp": KindBloodPressure,
	"hr": KindHeartRate,
	"rr": KindRespiratoryRate,
}

// ParseKind resolves a kind name or alias.
func ParseKind(s string) (Kind, bool) {
	if k, ok := kindAliases[s]; ok {
		return k, true
	}
	for _, k := range AllKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// IsValidKind checks if a string names a kind or alias.
func IsValidKind(s string) bool {
	_, ok := ParseKind(s)
	return ok
}

// Number coerces a decoded JSON value into a float pointer.
// Numeric strings are trimmed and parsed; anything else is nil.
func Number(raw any) *float64 {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case *float64:
		if v == nil {
			return nil
		}
		f = *v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case int32:
		f = float64(v)
	case int16:
		f = float64(v)
	case int8:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint64:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint8:
		f = float64(v)
	case json.Number:
		parsed, ok := parseNumber(string(v))
		if !ok {
			return nil
		}
		f = parsed
	case string:
		parsed, ok := parseNumber(v)
		if !ok {
			return nil
		}
		f = parsed
	case *string:
		if v == nil {
			return nil
		}
		return Number(*v)
	default:
		return nil
	}
	if math.IsNaN(f) {
		return nil
	}
	return &f
}
