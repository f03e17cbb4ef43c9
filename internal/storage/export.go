// ABOUTME: Export and import functionality for vitals data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/vitals/internal/models"
	"github.com/harperreed/vitals/internal/vitals"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the current export file format version.
const ExportVersion = "1.0"

// ExportData represents the full export format for vitals data.
type ExportData struct {
	Version    string            `json:"version" yaml:"version"`
	ExportedAt time.Time         `json:"exported_at" yaml:"exported_at"`
	Tool       string            `json:"tool" yaml:"tool"`
	Readings   []*models.Reading `json:"readings" yaml:"readings"`
	Reports    []*models.Report  `json:"reports" yaml:"reports"`
}

// GetAllData retrieves all data for export.
// Report readings appear once, in Readings, linked by report_id.
func (d *DB) GetAllData() (*ExportData, error) {
	readings, err := d.ListReadings(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}

	reports, err := d.ListReports(0)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	return &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "vitals",
		Readings:   readings,
		Reports:    reports,
	}, nil
}

// ImportData imports data from an export file in a single transaction.
// Reports go first so that report readings keep their link.
func (d *DB) ImportData(data *ExportData) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, r := range data.Reports {
		if err := insertReport(tx, r); err != nil {
			return fmt.Errorf("import report: %w", err)
		}
	}

	for _, r := range data.Readings {
		kind, ok := vitals.ParseKind(string(r.Kind))
		if !ok {
			return fmt.Errorf("import reading %s: unknown kind %q", r.ID, r.Kind)
		}
		r.Kind = kind
		if r.Unit == "" {
			r.Unit = vitals.Units[r.Kind]
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = r.RecordedAt
		}
		if err := insertReading(tx, r); err != nil {
			return fmt.Errorf("import reading: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

// ExportJSON exports all data as JSON.
func ExportJSON(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML with readings grouped by kind.
func ExportYAML(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string                   `yaml:"version"`
		ExportedAt string                   `yaml:"exported_at"`
		Tool       string                   `yaml:"tool"`
		Readings   map[string][]yamlReading `yaml:"readings"`
		Reports    []yamlReport             `yaml:"reports"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Readings:   make(map[string][]yamlReading),
		Reports:    make([]yamlReport, 0, len(data.Reports)),
	}

	for _, r := range data.Readings {
		c := r.Classification()
		yr := yamlReading{
			ID:         r.ID.String()[:8],
			Value:      r.Value,
			Unit:       r.Unit,
			Status:     string(c.Label),
			Severity:   c.Severity.String(),
			RecordedAt: r.RecordedAt.Format(time.RFC3339),
		}
		if r.Notes != nil {
			yr.Notes = *r.Notes
		}
		if r.ReportID != nil {
			yr.Report = r.ReportID.String()[:8]
		}
		k := string(r.Kind)
		yamlData.Readings[k] = append(yamlData.Readings[k], yr)
	}

	for _, r := range data.Reports {
		yamlData.Reports = append(yamlData.Reports, yamlReport{
			ID:           r.ID.String()[:8],
			Source:       r.Source,
			Status:       string(r.Status),
			AnalyzedAt:   r.AnalyzedAt.Format(time.RFC3339),
			Observations: r.Observations,
			Conclusion:   r.Conclusion,
		})
	}

	return yaml.Marshal(yamlData)
}

type yamlReading struct {
	ID         string `yaml:"id"`
	Value      string `yaml:"value"`
	Unit       string `yaml:"unit,omitempty"`
	Status     string `yaml:"status"`
	Severity   string `yaml:"severity"`
	RecordedAt string `yaml:"recorded_at"`
	Notes      string `yaml:"notes,omitempty"`
	Report     string `yaml:"report,omitempty"`
}

type yamlReport struct {
	ID           string   `yaml:"id"`
	Source       string   `yaml:"source"`
	Status       string   `yaml:"status"`
	AnalyzedAt   string   `yaml:"analyzed_at"`
	Observations []string `yaml:"observations,omitempty"`
	Conclusion   string   `yaml:"conclusion"`
}

// ExportMarkdown exports readings, optionally filtered by kind and start time,
// as Markdown tables. Reports are listed only for unfiltered exports.
func ExportMarkdown(repo Repository, kind *vitals.Kind, since *time.Time) (string, error) {
	readings, err := repo.ListReadings(kind, 0)
	if err != nil {
		return "", err
	}

	if since != nil {
		var filtered []*models.Reading
		for _, r := range readings {
			if !r.RecordedAt.Before(*since) {
				filtered = append(filtered, r)
			}
		}
		readings = filtered
	}

	grouped := make(map[vitals.Kind][]*models.Reading)
	for _, r := range readings {
		grouped[r.Kind] = append(grouped[r.Kind], r)
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Vitals Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	for _, k := range vitals.AllKinds {
		if kind != nil && *kind != k {
			continue
		}
		rs := grouped[k]
		if len(rs) == 0 && kind == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("## %s\n\n", k))
		sb.WriteString("| Date | Value | Status | Notes |\n")
		sb.WriteString("|------|-------|--------|-------|\n")
		for _, r := range rs {
			notes := ""
			if r.Notes != nil {
				notes = *r.Notes
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
				r.RecordedAt.Format("2006-01-02 15:04"),
				strings.TrimSpace(r.Value+" "+r.Unit),
				r.Classification().Label,
				notes))
		}
		sb.WriteString("\n")
	}

	if kind == nil {
		reports, err := repo.ListReports(0)
		if err != nil {
			return "", fmt.Errorf("list reports: %w", err)
		}
		if len(reports) > 0 {
			sb.WriteString("## Reports\n\n")
			sb.WriteString("| Date | Source | Status | Conclusion |\n")
			sb.WriteString("|------|--------|--------|------------|\n")
			for _, r := range reports {
				if since != nil && r.AnalyzedAt.Before(*since) {
					continue
				}
				sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
					r.AnalyzedAt.Format("2006-01-02 15:04"),
					r.Source, r.Status, r.Conclusion))
			}
		}
	}

	return sb.String(), nil
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(repo Repository, data []byte) error {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return repo.ImportData(&exportData)
}
