// ABOUTME: Pattern-based extraction of vitals and patient details from report text.
// ABOUTME: Matching is case-insensitive and takes the first occurrence.
package report

import (
	"regexp"
	"strings"
)

var (
	bpPattern      = regexp.MustCompile(`(?i)Blood\s*Pressure.*?(\d{2,3})\s*/\s*(\d{2,3})`)
	hrPattern      = regexp.MustCompile(`(?i)(?:Heart\s*Rate|Pulse).*?(\d{2,3})`)
	rrPattern      = regexp.MustCompile(`(?i)Respiratory\s*Rate.*?(\d{1,2})`)
	tempPattern    = regexp.MustCompile(`(?i)(?:Body\s*Temperature|Temperature).*?([\d.]+)\s*(?:C|F)`)
	spo2Pattern    = regexp.MustCompile(`(?i)(?:SpO2|Oxygen\s*Saturation).*?(\d{2,3})\s*%`)
	glucosePattern = regexp.MustCompile(`(?i)Blood\s*Glucose.*?(\d{2,3})\s*/\s*(\d{2,3})`)
	bmiPattern     = regexp.MustCompile(`(?i)\bBMI.*?([\d.]+)`)

	blankLines = regexp.MustCompile(`\n{2,}`)
)

// Normalize unifies line endings and collapses blank lines.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r", "\n")
	text = blankLines.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// ExtractVitals finds vital values in free text. Keys match NormalRanges.
func ExtractVitals(text string) map[string]string {
	vitals := make(map[string]string)
	if text == "" {
		return vitals
	}

	if m := bpPattern.FindStringSubmatch(text); m != nil {
		vitals["blood_pressure"] = m[1] + "/" + m[2]
	}
	if m := hrPattern.FindStringSubmatch(text); m != nil {
		vitals["heart_rate"] = m[1]
	}
	if m := rrPattern.FindStringSubmatch(text); m != nil {
		vitals["respiratory_rate"] = m[1]
	}
	if m := tempPattern.FindStringSubmatch(text); m != nil {
		vitals["body_temperature"] = m[1]
	}
	if m := spo2Pattern.FindStringSubmatch(text); m != nil {
		vitals["spo2"] = m[1]
	}
	if m := glucosePattern.FindStringSubmatch(text); m != nil {
		vitals["fasting_glucose"] = m[1]
		vitals["random_glucose"] = m[2]
	}
	if m := bmiPattern.FindStringSubmatch(text); m != nil {
		vitals["bmi"] = m[1]
	}

	return vitals
}

// NotAvailable is the placeholder for patient fields missing from the text.
const NotAvailable = "Not Available"

type fieldPattern struct {
	field    string
	patterns []*regexp.Regexp
}

var patientPatterns = []fieldPattern{
	{"patient_id", []*regexp.Regexp{
		regexp.MustCompile(`(?i)Patient\s*ID\s*[:\-]\s*([A-Za-z0-9\-]+)`),
		regexp.MustCompile(`(?i)UHID\s*[:\-]\s*([A-Za-z0-9\-]+)`),
	}},
	{"age", []*regexp.Regexp{
		regexp.MustCompile(`(?i)Age\s*[:\-]\s*(\d{1,3})`),
		regexp.MustCompile(`(?i)(\d{1,3})\s*Years`),
	}},
	{"gender", []*regexp.Regexp{
		regexp.MustCompile(`(?i)Gender\s*[:\-]\s*(Male|Female|Other)`),
		regexp.MustCompile(`(?i)Sex\s*[:\-]\s*(Male|Female|M|F)\b`),
	}},
	{"blood_group", []*regexp.Regexp{
		regexp.MustCompile(`(?i)Blood\s*Group\s*[:\-]\s*(A\+|A-|B\+|B-|AB\+|AB-|O\+|O-)`),
		regexp.MustCompile(`(?i)Blood\s*Group\s*[:\-]\s*((?:AB|A|B|O)\s*(?:Positive|Negative))`),
	}},
	{"report_date", []*regexp.Regexp{
		regexp.MustCompile(`(?i)Report\s*Date\s*[:\-]\s*([0-9\-/]+)`),
		regexp.MustCompile(`(?i)Date\s*[:\-]\s*([0-9\-/]+)`),
	}},
}

// ExtractPatient finds patient details in free text. Every field is present
// in the result; missing ones hold NotAvailable.
func ExtractPatient(text string) map[string]string {
	details := make(map[string]string, len(patientPatterns))
	for _, fp := range patientPatterns {
		value := NotAvailable
		for _, re := range fp.patterns {
			if m := re.FindStringSubmatch(text); m != nil {
				value = normalizeField(fp.field, m[1])
				break
			}
		}
		details[fp.field] = value
	}
	return details
}

func normalizeField(field, value string) string {
	value = strings.TrimSpace(value)
	switch field {
	case "gender":
		switch lower(value) {
		case "m", "male":
			return "Male"
		case "f", "female":
			return "Female"
		}
	case "blood_group":
		value = strings.ToUpper(value)
		value = strings.ReplaceAll(value, "POSITIVE", "+")
		value = strings.ReplaceAll(value, "NEGATIVE", "-")
		value = strings.ReplaceAll(value, " ", "")
	}
	return value
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
