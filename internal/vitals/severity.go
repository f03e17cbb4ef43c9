// ABOUTME: Severity and Classification types for vital-sign readings.
// ABOUTME: Severity is an ordered concern level that maps to a display badge.
package vitals

import "fmt"

// Severity is the concern level attached to a classification.
// Values are ordered: Neutral < Safe < Warning < Alert.
type Severity int

const (
	Neutral Severity = iota
	Safe
	Warning
	Alert
)

var severityNames = [...]string{
	Neutral: "neutral",
	Safe:    "safe",
	Warning: "warning",
	Alert:   "alert",
}

// String returns the lowercase severity name.
func (s Severity) String() string {
	if s < Neutral || s > Alert {
		return fmt.Sprintf("severity(%d)", int(s))
	}
	return severityNames[s]
}

// Badge returns the style class used to render the severity.
func (s Severity) Badge() string {
	return "badge-" + s.String()
}

// ParseSeverity converts a severity name back to a Severity.
func ParseSeverity(name string) (Severity, error) {
	for i, n := range severityNames {
		if n == name {
			return Severity(i), nil
		}
	}
	return Neutral, fmt.Errorf("unknown severity: %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Label is the display text of a classification.
type Label string

const (
	LabelNA          Label = "N/A"
	LabelUnderweight Label = "Underweight"
	LabelNormal      Label = "Normal"
	LabelOverweight  Label = "Overweight"
	LabelObese       Label = "Obese"
	LabelElevated    Label = "Elevated"
	LabelHigh        Label = "High"
	LabelLow         Label = "Low"
)

// Classification is the result of evaluating one reading.
type Classification struct {
	Label    Label    `json:"label" yaml:"label"`
	Severity Severity `json:"severity" yaml:"severity"`
}

// NotAvailable is returned for absent or unparseable input.
var NotAvailable = Classification{Label: LabelNA, Severity: Neutral}

// String formats the classification as "Label (severity)".
func (c Classification) String() string {
	return fmt.Sprintf("%s (%s)", c.Label, c.Severity)
}
