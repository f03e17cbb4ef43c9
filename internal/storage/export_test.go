// ABOUTME: Tests for export and import functionality.
// ABOUTME: Verifies JSON, YAML, and Markdown export formats.
package storage

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/vitals/internal/models"
	"github.com/harperreed/vitals/internal/vitals"
	"gopkg.in/yaml.v3"
)

func TestExportJSON(t *testing.T) {
	db := setupTestDB(t)

	r := models.NewReading(vitals.KindBloodPressure, "145/95")
	r.WithNotes("test note")
	if err := db.CreateReading(r); err != nil {
		t.Fatalf("CreateReading failed: %v", err)
	}
	if err := db.SaveReport(sampleReport()); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}

	data, err := ExportJSON(db)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var export ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	if export.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", export.Version)
	}
	if export.Tool != "vitals" {
		t.Errorf("Expected tool vitals, got %s", export.Tool)
	}
	if len(export.Readings) != 3 {
		t.Errorf("Expected 3 readings, got %d", len(export.Readings))
	}
	if len(export.Reports) != 1 {
		t.Errorf("Expected 1 report, got %d", len(export.Reports))
	}
	if len(export.Reports) == 1 && len(export.Reports[0].Readings) != 0 {
		t.Errorf("Report readings should only appear in the readings list")
	}
}

func TestExportYAML(t *testing.T) {
	db := setupTestDB(t)

	if err := db.CreateReading(models.NewNumericReading(vitals.KindHeartRate, 110)); err != nil {
		t.Fatalf("CreateReading failed: %v", err)
	}

	data, err := ExportYAML(db)
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}

	var yamlData map[string]interface{}
	if err := yaml.Unmarshal(data, &yamlData); err != nil {
		t.Fatalf("Failed to parse YAML: %v", err)
	}

	if yamlData["version"] != "1.0" {
		t.Errorf("Expected version 1.0, got %v", yamlData["version"])
	}

	readings, ok := yamlData["readings"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected readings map, got %T", yamlData["readings"])
	}
	hr, ok := readings["heart_rate"].([]interface{})
	if !ok || len(hr) != 1 {
		t.Fatalf("Expected one heart_rate entry, got %v", readings["heart_rate"])
	}
	entry := hr[0].(map[string]interface{})
	if entry["status"] != "High" || entry["severity"] != "alert" {
		t.Errorf("Expected High/alert classification, got %v/%v", entry["status"], entry["severity"])
	}
}

func TestExportMarkdown(t *testing.T) {
	db := setupTestDB(t)

	old := time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)
	recent := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	readings := []*models.Reading{
		models.NewReading(vitals.KindBloodPressure, "118/79").WithRecordedAt(recent),
		models.NewNumericReading(vitals.KindBMI, 31.2).WithRecordedAt(recent),
		models.NewNumericReading(vitals.KindBMI, 29).WithRecordedAt(old),
	}
	for _, r := range readings {
		if err := db.CreateReading(r); err != nil {
			t.Fatalf("CreateReading failed: %v", err)
		}
	}

	md, err := ExportMarkdown(db, nil, nil)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}

	if !strings.Contains(md, "# Vitals Export") {
		t.Error("Missing title")
	}
	if !strings.Contains(md, "## blood_pressure") || !strings.Contains(md, "## bmi") {
		t.Error("Missing kind sections")
	}
	if strings.Contains(md, "## heart_rate") {
		t.Error("Empty kinds should be omitted")
	}
	if !strings.Contains(md, "| 118/79 mmHg | Normal |") {
		t.Errorf("Missing classified blood pressure row:\n%s", md)
	}
	if !strings.Contains(md, "| 31.2 | Obese |") {
		t.Errorf("Missing classified BMI row:\n%s", md)
	}

	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	kind := vitals.KindBMI
	filtered, err := ExportMarkdown(db, &kind, &since)
	if err != nil {
		t.Fatalf("ExportMarkdown with filter failed: %v", err)
	}
	if strings.Contains(filtered, "## blood_pressure") {
		t.Error("Kind filter not applied")
	}
	if strings.Contains(filtered, "| 29 |") {
		t.Error("Since filter not applied")
	}
}

func TestImportJSONRoundTrip(t *testing.T) {
	src := setupTestDB(t)

	r := models.NewNumericReading(vitals.KindRespiratoryRate, 18)
	if err := src.CreateReading(r); err != nil {
		t.Fatalf("CreateReading failed: %v", err)
	}
	rep := sampleReport()
	if err := src.SaveReport(rep); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}

	data, err := ExportJSON(src)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	dst := setupTestDB(t)
	if err := ImportJSON(dst, data); err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}

	got, err := dst.GetReport(rep.ID.String())
	if err != nil {
		t.Fatalf("GetReport after import failed: %v", err)
	}
	if len(got.Readings) != 2 {
		t.Errorf("Expected report readings to stay linked, got %d", len(got.Readings))
	}

	all, err := dst.ListReadings(nil, 0)
	if err != nil {
		t.Fatalf("ListReadings failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 readings after import, got %d", len(all))
	}
}

func TestImportRejectsUnknownKind(t *testing.T) {
	db := setupTestDB(t)

	payload := `{"version":"1.0","tool":"vitals","readings":[
		{"id":"7c9e6679-7425-40de-944b-e07fc1f90ae7","kind":"weight","value":"80","recorded_at":"2026-01-01T00:00:00Z"}
	]}`
	if err := ImportJSON(db, []byte(payload)); err == nil {
		t.Error("Expected error for unknown kind")
	}

	readings, _ := db.ListReadings(nil, 0)
	if len(readings) != 0 {
		t.Errorf("Failed import should not leave readings, got %d", len(readings))
	}
}

func TestImportAcceptsKindAliases(t *testing.T) {
	db := setupTestDB(t)

	payload := `{"version":"1.0","tool":"vitals","readings":[
		{"id":"7c9e6679-7425-40de-944b-e07fc1f90ae7","kind":"bp","value":"150/100","recorded_at":"2026-01-01T00:00:00Z"}
	]}`
	if err := ImportJSON(db, []byte(payload)); err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}

	got, err := db.GetReading("7c9e6679")
	if err != nil {
		t.Fatalf("GetReading failed: %v", err)
	}
	if got.Kind != vitals.KindBloodPressure || got.Unit != "mmHg" {
		t.Errorf("Expected normalized kind and unit, got %s %q", got.Kind, got.Unit)
	}
}

func TestImportJSONInvalid(t *testing.T) {
	db := setupTestDB(t)

	if err := ImportJSON(db, []byte("not json")); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

// brokenReports fails report listing while readings still work.
type brokenReports struct {
	Repository
}

func (brokenReports) ListReports(int) ([]*models.Report, error) {
	return nil, errors.New("disk I/O error")
}

func TestExportMarkdownReportsError(t *testing.T) {
	db := setupTestDB(t)
	if err := db.CreateReading(models.NewReading(vitals.KindHeartRate, "72")); err != nil {
		t.Fatalf("CreateReading failed: %v", err)
	}

	if _, err := ExportMarkdown(brokenReports{db}, nil, nil); err == nil {
		t.Error("Expected report listing error to fail the export")
	}

	kind := vitals.KindHeartRate
	if _, err := ExportMarkdown(brokenReports{db}, &kind, nil); err != nil {
		t.Errorf("Filtered export does not list reports, got error: %v", err)
	}
}
