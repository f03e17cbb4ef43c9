// ABOUTME: Report persistence for SQLite storage.
// ABOUTME: Reports are saved together with the readings derived from them.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/vitals/internal/models"
)

const reportColumns = `id, source, gender, patient, vitals, comparisons, observations, conclusion, status, analyzed_at`

// DefaultReportKeep is how many analyzed reports are retained by PruneReports.
const DefaultReportKeep = 6

// SaveReport stores a report and its derived readings in one transaction.
func (d *DB) SaveReport(r *models.Report) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertReport(tx, r); err != nil {
		return err
	}
	for _, reading := range r.Readings {
		id := r.ID
		reading.ReportID = &id
		if err := insertReading(tx, reading); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit report: %w", err)
	}
	return nil
}

func insertReport(e execer, r *models.Report) error {
	patient, err := json.Marshal(r.Patient)
	if err != nil {
		return fmt.Errorf("encode patient: %w", err)
	}
	vitals, err := json.Marshal(r.Vitals)
	if err != nil {
		return fmt.Errorf("encode vitals: %w", err)
	}
	comparisons, err := json.Marshal(r.Comparisons)
	if err != nil {
		return fmt.Errorf("encode comparisons: %w", err)
	}
	observations, err := json.Marshal(r.Observations)
	if err != nil {
		return fmt.Errorf("encode observations: %w", err)
	}

	var gender *string
	if r.Gender != "" {
		gender = &r.Gender
	}

	query := `INSERT INTO reports (` + reportColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = e.Exec(query,
		r.ID.String(),
		r.Source,
		gender,
		string(patient),
		string(vitals),
		string(comparisons),
		string(observations),
		r.Conclusion,
		string(r.Status),
		formatTime(r.AnalyzedAt),
	)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	return nil
}

// GetReport retrieves a report by ID or prefix, including its readings.
func (d *DB) GetReport(idOrPrefix string) (*models.Report, error) {
	id, err := d.resolveID("reports", idOrPrefix)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = ?`
	r, err := scanReport(d.db.QueryRow(query, id))
	if err != nil {
		return nil, err
	}

	readings, err := d.listReportReadings(r.ID)
	if err != nil {
		return nil, err
	}
	r.Readings = readings

	return r, nil
}

// ListReports returns reports ordered by analysis time, most recent first.
// Readings are not populated; use GetReport for a single full report.
func (d *DB) ListReports(limit int) ([]*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports ORDER BY analyzed_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var reports []*models.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// DeleteReport removes a report and every reading derived from it.
func (d *DB) DeleteReport(idOrPrefix string) error {
	id, err := d.resolveID("reports", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// foreign_keys is per connection, so the cascade is not relied upon
	if _, err := tx.Exec("DELETE FROM readings WHERE report_id = ?", id); err != nil {
		return fmt.Errorf("delete report readings: %w", err)
	}

	result, err := tx.Exec("DELETE FROM reports WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete report %s: %w", idOrPrefix, ErrNotFound)
	}

	return tx.Commit()
}

// PruneReports deletes every report beyond the newest keep, together with
// the readings derived from them, and returns how many reports were removed.
// A keep of zero or less disables pruning.
func (d *DB) PruneReports(keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.Query(`SELECT id FROM reports ORDER BY analyzed_at DESC, rowid DESC LIMIT -1 OFFSET ?`, keep)
	if err != nil {
		return 0, fmt.Errorf("list old reports: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan report id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("list old reports: %w", err)
	}
	rows.Close()

	for _, id := range ids {
		if _, err := tx.Exec("DELETE FROM readings WHERE report_id = ?", id); err != nil {
			return 0, fmt.Errorf("delete report readings: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM reports WHERE id = ?", id); err != nil {
			return 0, fmt.Errorf("delete report: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit prune: %w", err)
	}
	return len(ids), nil
}

func (d *DB) listReportReadings(reportID uuid.UUID) ([]*models.Reading, error) {
	query := `SELECT ` + readingColumns + ` FROM readings WHERE report_id = ? ORDER BY kind`
	rows, err := d.db.Query(query, reportID.String())
	if err != nil {
		return nil, fmt.Errorf("list report readings: %w", err)
	}
	defer rows.Close()

	var readings []*models.Reading
	for rows.Next() {
		r, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		readings = append(readings, r)
	}
	return readings, rows.Err()
}

// scanReport scans a single row into a Report struct.
func scanReport(row rowScanner) (*models.Report, error) {
	var r models.Report
	var idStr, status, analyzedAt string
	var gender, patient sql.NullString
	var vitals, comparisons, observations string

	err := row.Scan(&idStr, &r.Source, &gender, &patient, &vitals, &comparisons,
		&observations, &r.Conclusion, &status, &analyzedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan report: %w", err)
	}

	r.ID, _ = uuid.Parse(idStr)
	r.Status = models.Status(status)
	r.AnalyzedAt, _ = time.Parse(time.RFC3339, analyzedAt)
	if gender.Valid {
		r.Gender = gender.String
	}
	if patient.Valid && patient.String != "" && patient.String != "null" {
		if err := json.Unmarshal([]byte(patient.String), &r.Patient); err != nil {
			return nil, fmt.Errorf("decode patient: %w", err)
		}
	}
	if err := json.Unmarshal([]byte(vitals), &r.Vitals); err != nil {
		return nil, fmt.Errorf("decode vitals: %w", err)
	}
	if err := json.Unmarshal([]byte(comparisons), &r.Comparisons); err != nil {
		return nil, fmt.Errorf("decode comparisons: %w", err)
	}
	if err := json.Unmarshal([]byte(observations), &r.Observations); err != nil {
		return nil, fmt.Errorf("decode observations: %w", err)
	}

	return &r, nil
}
