// ABOUTME: Observation, conclusion, and status rules plus the analysis pipeline.
// ABOUTME: Analyze turns raw report text into a models.Report with readings.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/harperreed/vitals/internal/models"
	"github.com/harperreed/vitals/internal/vitals"
)

// MaxObservations caps the number of observation sentences.
const MaxObservations = 6

// Observations returns one sentence per abnormal vital. Each vital name is
// considered once, at its first occurrence.
func Observations(cmp []models.Comparison) []string {
	observations := []string{}
	seen := make(map[string]bool)

	for _, c := range cmp {
		if c.Vital == "" || seen[c.Vital] {
			continue
		}
		seen[c.Vital] = true

		switch c.Status {
		case models.FindingHigh:
			observations = append(observations, fmt.Sprintf("%s is higher than the normal range.", c.Vital))
		case models.FindingLow:
			observations = append(observations, fmt.Sprintf("%s is lower than the normal range.", c.Vital))
		case models.FindingAbnormal:
			observations = append(observations, fmt.Sprintf("%s result is abnormal.", c.Vital))
		}
	}

	if len(observations) > MaxObservations {
		observations = observations[:MaxObservations]
	}
	return observations
}

// Conclusion summarizes the comparison table in one paragraph.
func Conclusion(cmp []models.Comparison) string {
	if len(cmp) == 0 {
		return "No vital information could be evaluated from the report. " +
			"Please consult a healthcare professional for further review."
	}

	affected := make(map[string]bool)
	for _, c := range cmp {
		if c.Status.IsAbnormal() {
			affected[c.Vital] = true
		}
	}

	if len(affected) == 0 {
		return "All evaluated vital parameters are within the normal range. " +
			"Overall findings appear normal. Regular health monitoring is advised."
	}

	names := make([]string, 0, len(affected))
	for name := range affected {
		names = append(names, name)
	}
	sort.Strings(names)

	return fmt.Sprintf("The report shows abnormal values in the following parameters: %s. ", strings.Join(names, ", ")) +
		"These findings may require medical attention. " +
		"Please consult a healthcare professional for proper evaluation."
}

// DeriveStatus grades a report by its number of abnormal rows.
func DeriveStatus(cmp []models.Comparison) models.Status {
	if len(cmp) == 0 {
		return models.StatusUnknown
	}
	abnormal := 0
	for _, c := range cmp {
		if c.Status.IsAbnormal() {
			abnormal++
		}
	}
	switch {
	case abnormal == 0:
		return models.StatusNormal
	case abnormal <= 2:
		return models.StatusAttention
	default:
		return models.StatusCritical
	}
}

// Analyze runs extraction, comparison, and summarization over text.
// When gender is empty, the gender found in the text is used.
func Analyze(source, text, gender string) *models.Report {
	text = Normalize(text)
	patient := ExtractPatient(text)
	if gender == "" && patient["gender"] != NotAvailable {
		gender = patient["gender"]
	}

	r := models.NewReport(source).WithGender(gender)
	r.Patient = patient
	r.Vitals = ExtractVitals(text)
	r.Comparisons = Compare(r.Vitals, gender)
	r.Observations = Observations(r.Comparisons)
	r.Conclusion = Conclusion(r.Comparisons)
	r.Status = DeriveStatus(r.Comparisons)
	r.Readings = dashboardReadings(r)
	return r
}

// dashboardReadings converts the tracked vitals of a report into readings
// stamped with the analysis time.
func dashboardReadings(r *models.Report) []*models.Reading {
	var readings []*models.Reading
	add := func(kind vitals.Kind, value string) {
		reading := models.NewReading(kind, value).WithRecordedAt(r.AnalyzedAt)
		reading.WithNotes("from report " + r.Source)
		reading.ReportID = &r.ID
		readings = append(readings, reading)
	}

	if bp, ok := r.Vitals["blood_pressure"]; ok {
		add(vitals.KindBloodPressure, bp)
	}
	if bmi := vitals.Number(r.Vitals["bmi"]); bmi != nil {
		add(vitals.KindBMI, formatFloat(math.Round(*bmi*10)/10))
	}
	if hr := vitals.Number(r.Vitals["heart_rate"]); hr != nil {
		add(vitals.KindHeartRate, formatFloat(*hr))
	}
	if rr := vitals.Number(r.Vitals["respiratory_rate"]); rr != nil {
		add(vitals.KindRespiratoryRate, formatFloat(*rr))
	}
	return readings
}
