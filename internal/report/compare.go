// ABOUTME: Compares extracted report values with their normal ranges.
// ABOUTME: Produces the comparison table rows consumed by observations and status.
package report

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/harperreed/vitals/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	bpValuePattern    = regexp.MustCompile(`(\d{2,3})\s*/\s*(\d{2,3})`)
	spo2ValuePattern  = regexp.MustCompile(`(\d{2,3})`)
	decimalPattern    = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
	glucoseVitalNames = map[string]bool{"fasting_glucose": true, "random_glucose": true}
)

// Compare evaluates each known vital against NormalRanges. Unknown keys and
// values that cannot be parsed are skipped. Rows are ordered by vital key.
func Compare(vitals map[string]string, gender string) []models.Comparison {
	keys := make([]string, 0, len(vitals))
	for k := range vitals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var results []models.Comparison
	for _, key := range keys {
		ref, ok := NormalRanges[key]
		if !ok {
			continue
		}
		if row, ok := compareOne(key, vitals[key], ref, gender); ok {
			results = append(results, row)
		}
	}
	return results
}

func compareOne(key, raw string, ref Range, gender string) (models.Comparison, bool) {
	switch {
	case ref.Type == RangeBloodPressure:
		return compareBloodPressure(raw, ref)
	case ref.Type == RangeQualitative:
		return compareQualitative(key, raw, ref), true
	case key == "spo2":
		m := spo2ValuePattern.FindStringSubmatch(raw)
		if m == nil {
			return models.Comparison{}, false
		}
		v, _ := strconv.ParseFloat(m[1], 64)
		return models.Comparison{
			Vital:        "SpO₂",
			PatientValue: m[1],
			NormalRange:  formatFloat(*ref.Bounds.Min) + "–" + formatFloat(*ref.Bounds.Max) + "%",
			Status:       classify(v, ref.Bounds),
		}, true
	case glucoseVitalNames[key]:
		m := decimalPattern.FindStringSubmatch(raw)
		if m == nil {
			return models.Comparison{}, false
		}
		v, _ := strconv.ParseFloat(m[1], 64)
		return models.Comparison{
			Vital:        "Blood Sugar",
			PatientValue: formatFloat(v),
			NormalRange:  FormatRange(ref.Bounds),
			Status:       classify(v, ref.Bounds),
		}, true
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return models.Comparison{}, false
	}
	bounds := ref.For(gender)
	return models.Comparison{
		Vital:        displayName(key),
		PatientValue: formatFloat(v),
		NormalRange:  FormatRange(bounds),
		Status:       classify(v, bounds),
	}, true
}

func compareBloodPressure(raw string, ref Range) (models.Comparison, bool) {
	m := bpValuePattern.FindStringSubmatch(raw)
	if m == nil {
		return models.Comparison{}, false
	}
	sys, _ := strconv.Atoi(m[1])
	dia, _ := strconv.Atoi(m[2])

	status := models.FindingNormal
	if float64(sys) > ref.SystolicMax || float64(dia) > ref.DiastolicMax {
		status = models.FindingHigh
	}
	return models.Comparison{
		Vital:        "Blood Pressure",
		PatientValue: strconv.Itoa(sys) + "/" + strconv.Itoa(dia),
		NormalRange:  "≤" + formatFloat(ref.SystolicMax) + " / ≤" + formatFloat(ref.DiastolicMax),
		Status:       status,
	}, true
}

func compareQualitative(key, raw string, ref Range) models.Comparison {
	status := models.FindingAbnormal
	value := lower(raw)
	for _, n := range ref.Normal {
		if value == n {
			status = models.FindingNormal
			break
		}
	}
	return models.Comparison{
		Vital:        displayName(key),
		PatientValue: raw,
		NormalRange:  strings.Join(ref.Normal, ", "),
		Status:       status,
	}
}

// classify checks the lower bound first, so a value can only be Low or High.
func classify(v float64, b Bounds) models.Finding {
	if b.Min != nil && v < *b.Min {
		return models.FindingLow
	}
	if b.Max != nil && v > *b.Max {
		return models.FindingHigh
	}
	return models.FindingNormal
}

func displayName(key string) string {
	// Casers are stateful, so each call gets its own.
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}
