// ABOUTME: Reading CRUD operations for SQLite storage.
// ABOUTME: Implements Repository interface methods for readings.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/vitals/internal/models"
	"github.com/harperreed/vitals/internal/vitals"
)

const readingColumns = `id, kind, value, unit, recorded_at, notes, report_id, created_at`

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// CreateReading stores a new reading in the database.
func (d *DB) CreateReading(r *models.Reading) error {
	return insertReading(d.db, r)
}

func insertReading(e execer, r *models.Reading) error {
	query := `INSERT INTO readings (` + readingColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	var reportID *string
	if r.ReportID != nil {
		s := r.ReportID.String()
		reportID = &s
	}

	_, err := e.Exec(query,
		r.ID.String(),
		string(r.Kind),
		r.Value,
		r.Unit,
		formatTime(r.RecordedAt),
		r.Notes,
		reportID,
		formatTime(r.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create reading: %w", err)
	}
	return nil
}

// GetReading retrieves a reading by ID or ID prefix.
func (d *DB) GetReading(idOrPrefix string) (*models.Reading, error) {
	id, err := d.resolveID("readings", idOrPrefix)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + readingColumns + ` FROM readings WHERE id = ?`
	return scanReading(d.db.QueryRow(query, id))
}

// ListReadings retrieves readings with optional filtering by kind.
// Results are sorted by RecordedAt descending (most recent first).
func (d *DB) ListReadings(kind *vitals.Kind, limit int) ([]*models.Reading, error) {
	query := `SELECT ` + readingColumns + ` FROM readings`
	var args []any

	if kind != nil {
		query += ` WHERE kind = ?`
		args = append(args, string(*kind))
	}
	query += ` ORDER BY recorded_at DESC, created_at DESC`

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
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

// DeleteReading removes a reading by ID or prefix.
func (d *DB) DeleteReading(idOrPrefix string) error {
	id, err := d.resolveID("readings", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete reading: %w", err)
	}

	result, err := d.db.Exec("DELETE FROM readings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete reading: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete reading: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete reading %s: %w", idOrPrefix, ErrNotFound)
	}

	return nil
}

// GetLatestReading returns the most recent reading of a specific kind.
func (d *DB) GetLatestReading(kind vitals.Kind) (*models.Reading, error) {
	query := `SELECT ` + readingColumns + ` FROM readings
		WHERE kind = ?
		ORDER BY recorded_at DESC, created_at DESC
		LIMIT 1`
	r, err := scanReading(d.db.QueryRow(query, string(kind)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("no readings of kind %s: %w", kind, ErrNotFound)
		}
		return nil, err
	}
	return r, nil
}

// resolveID finds the full ID from a prefix in the given table.
func (d *DB) resolveID(table, idOrPrefix string) (string, error) {
	// If it looks like a full UUID, use it directly
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		return idOrPrefix, nil
	}
	if idOrPrefix == "" {
		return "", fmt.Errorf("empty ID: %w", ErrNotFound)
	}

	// table is one of our constants, never user input
	rows, err := d.db.Query(`SELECT id FROM `+table+` WHERE id LIKE ? || '%'`, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve ID: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan ID: %w", err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolve ID: %w", err)
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("%s: %w", idOrPrefix, ErrNotFound)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
	}

	return matches[0], nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanReading scans a single row into a Reading struct.
func scanReading(row rowScanner) (*models.Reading, error) {
	var r models.Reading
	var idStr, kind, recordedAt, createdAt string
	var notes, reportID sql.NullString

	err := row.Scan(&idStr, &kind, &r.Value, &r.Unit, &recordedAt, &notes, &reportID, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan reading: %w", err)
	}

	r.ID, _ = uuid.Parse(idStr)
	r.Kind = vitals.Kind(kind)
	r.RecordedAt, _ = time.Parse(time.RFC3339, recordedAt)
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if notes.Valid {
		r.Notes = &notes.String
	}
	if reportID.Valid {
		if id, err := uuid.Parse(reportID.String); err == nil {
			r.ReportID = &id
		}
	}

	return &r, nil
}

// formatTime stores timestamps in UTC so that text ordering matches time ordering.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
