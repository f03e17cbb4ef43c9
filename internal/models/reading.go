// ABOUTME: Reading model for a single recorded vital sign.
// ABOUTME: Raw values are kept as text and classified on demand.
package models

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/vitals/internal/vitals"
)

// Reading represents a single vital-sign measurement.
type Reading struct {
	ID         uuid.UUID   `json:"id" yaml:"id"`
	Kind       vitals.Kind `json:"kind" yaml:"kind"`
	Value      string      `json:"value" yaml:"value"`
	Unit       string      `json:"unit" yaml:"unit"`
	RecordedAt time.Time   `json:"recorded_at" yaml:"recorded_at"`
	Notes      *string     `json:"notes,omitempty" yaml:"notes,omitempty"`
	ReportID   *uuid.UUID  `json:"report_id,omitempty" yaml:"report_id,omitempty"`
	CreatedAt  time.Time   `json:"created_at" yaml:"created_at"`
}

// NewReading creates a new Reading with generated UUID and current timestamp.
func NewReading(kind vitals.Kind, value string) *Reading {
	now := time.Now()
	return &Reading{
		ID:         uuid.New(),
		Kind:       kind,
		Value:      value,
		Unit:       vitals.Units[kind],
		RecordedAt: now,
		CreatedAt:  now,
	}
}

// NewNumericReading creates a Reading from a float value.
func NewNumericReading(kind vitals.Kind, value float64) *Reading {
	return NewReading(kind, strconv.FormatFloat(value, 'f', -1, 64))
}

// WithRecordedAt sets a custom recorded_at timestamp.
func (r *Reading) WithRecordedAt(t time.Time) *Reading {
	r.RecordedAt = t
	return r
}

// WithNotes sets notes on the reading.
func (r *Reading) WithNotes(notes string) *Reading {
	r.Notes = &notes
	return r
}

// Classification evaluates the stored value against its kind's thresholds.
func (r *Reading) Classification() vitals.Classification {
	return vitals.Classify(r.Kind, r.Value)
}

// Number returns the value as a float, or nil for blood pressure and
// unparseable values.
func (r *Reading) Number() *float64 {
	if r.Kind == vitals.KindBloodPressure {
		return nil
	}
	return vitals.Number(r.Value)
}
