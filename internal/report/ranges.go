// ABOUTME: Normal reference ranges for vitals and lab values found in reports.
// ABOUTME: Covers numeric, blood-pressure, gender-based, and qualitative tests.
package report

import (
	"strconv"
)

// RangeType selects how a value is compared with its range.
type RangeType int

const (
	RangeNumeric RangeType = iota
	RangeBloodPressure
	RangeGenderBased
	RangeQualitative
)

// Bounds is an optional min/max pair.
type Bounds struct {
	Min *float64
	Max *float64
}

// Range is the reference range of one vital or lab test.
type Range struct {
	Type   RangeType
	Bounds Bounds
	Unit   string

	// Blood pressure limits (inclusive).
	SystolicMax  float64
	DiastolicMax float64

	// Gender-based bounds keyed by lowercase gender; Bounds is the fallback.
	ByGender map[string]Bounds

	// Qualitative results accepted as normal, lowercase.
	Normal []string
}

func num(f float64) *float64 { return &f }

// NormalRanges maps extracted vital keys to their reference ranges.
var NormalRanges = map[string]Range{
	"blood_pressure": {Type: RangeBloodPressure, SystolicMax: 120, DiastolicMax: 80, Unit: "mmHg"},
	"heart_rate":     {Type: RangeNumeric, Bounds: Bounds{num(60), num(100)}, Unit: "bpm"},
	"respiratory_rate": {
		Type: RangeNumeric, Bounds: Bounds{num(12), num(20)}, Unit: "breaths/min",
	},
	"body_temperature": {Type: RangeNumeric, Bounds: Bounds{num(36.1), num(37.2)}, Unit: "°C"},
	"spo2":             {Type: RangeNumeric, Bounds: Bounds{num(95), num(100)}, Unit: "%"},

	"fasting_glucose": {Type: RangeNumeric, Bounds: Bounds{num(70), num(99)}, Unit: "mg/dL"},
	"random_glucose":  {Type: RangeNumeric, Bounds: Bounds{num(0), num(140)}, Unit: "mg/dL"},

	"hemoglobin": {
		Type:   RangeGenderBased,
		Bounds: Bounds{num(12), num(17)},
		ByGender: map[string]Bounds{
			"male":   {num(13), num(17)},
			"female": {num(12), num(15)},
		},
		Unit: "g/dL",
	},
	"platelet_count": {Type: RangeNumeric, Bounds: Bounds{num(150000), num(450000)}, Unit: "/µL"},

	"blood_urea":        {Type: RangeNumeric, Bounds: Bounds{num(15), num(40)}, Unit: "mg/dL"},
	"serum_creatinine":  {Type: RangeNumeric, Bounds: Bounds{num(0.6), num(1.3)}, Unit: "mg/dL"},
	"total_cholesterol": {Type: RangeNumeric, Bounds: Bounds{Max: num(200)}, Unit: "mg/dL"},

	"bmi": {Type: RangeNumeric, Bounds: Bounds{num(18.5), num(24.9)}},

	"urine_sugar": {Type: RangeQualitative, Normal: []string{"absent", "negative"}},
	"hiv":         {Type: RangeQualitative, Normal: []string{"non reactive", "negative"}},
	"hbsag":       {Type: RangeQualitative, Normal: []string{"non reactive", "negative"}},
	"vdrl":        {Type: RangeQualitative, Normal: []string{"non reactive", "negative"}},
}

// For returns the bounds that apply to a gender. Non gender-based ranges
// ignore the argument.
func (r Range) For(gender string) Bounds {
	if r.Type == RangeGenderBased && gender != "" {
		if b, ok := r.ByGender[lower(gender)]; ok {
			return b
		}
	}
	return r.Bounds
}

// FormatRange renders bounds as "a-b", "≥a", "≤b", or "Not Defined".
func FormatRange(b Bounds) string {
	switch {
	case b.Min != nil && b.Max != nil:
		return formatFloat(*b.Min) + "-" + formatFloat(*b.Max)
	case b.Min != nil:
		return "≥" + formatFloat(*b.Min)
	case b.Max != nil:
		return "≤" + formatFloat(*b.Max)
	}
	return "Not Defined"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
