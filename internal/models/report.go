// ABOUTME: Report model for an analyzed medical report.
// ABOUTME: Holds extracted vitals, range comparisons, observations, and status.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Status is the overall verdict of a report.
type Status string

const (
	StatusUnknown   Status = "Unknown"
	StatusNormal    Status = "Normal"
	StatusAttention Status = "Attention"
	StatusCritical  Status = "Critical"
)

// Finding is the outcome of comparing one value with its normal range.
type Finding string

const (
	FindingNormal   Finding = "Normal"
	FindingHigh     Finding = "High"
	FindingLow      Finding = "Low"
	FindingAbnormal Finding = "Abnormal"
)

// IsAbnormal reports whether the finding needs attention.
func (f Finding) IsAbnormal() bool {
	return f == FindingHigh || f == FindingLow || f == FindingAbnormal
}

// Comparison is one row of a report's comparison table.
type Comparison struct {
	Vital        string  `json:"vital" yaml:"vital"`
	PatientValue string  `json:"patient_value" yaml:"patient_value"`
	NormalRange  string  `json:"normal_range" yaml:"normal_range"`
	Status       Finding `json:"status" yaml:"status"`
}

// Report represents an analyzed medical report.
type Report struct {
	ID           uuid.UUID         `json:"id" yaml:"id"`
	Source       string            `json:"source" yaml:"source"`
	Gender       string            `json:"gender,omitempty" yaml:"gender,omitempty"`
	Patient      map[string]string `json:"patient,omitempty" yaml:"patient,omitempty"`
	Vitals       map[string]string `json:"vitals" yaml:"vitals"`
	Comparisons  []Comparison      `json:"comparisons" yaml:"comparisons"`
	Observations []string          `json:"observations" yaml:"observations"`
	Conclusion   string            `json:"conclusion" yaml:"conclusion"`
	Status       Status            `json:"status" yaml:"status"`
	AnalyzedAt   time.Time         `json:"analyzed_at" yaml:"analyzed_at"`
	Readings     []*Reading        `json:"readings,omitempty" yaml:"readings,omitempty"` // Populated by analysis
}

// NewReport creates a new Report with generated UUID and current timestamp.
func NewReport(source string) *Report {
	return &Report{
		ID:         uuid.New(),
		Source:     source,
		Vitals:     make(map[string]string),
		Status:     StatusUnknown,
		AnalyzedAt: time.Now(),
	}
}

// WithGender sets the patient gender used for gender-based ranges.
func (r *Report) WithGender(gender string) *Report {
	r.Gender = gender
	return r
}
