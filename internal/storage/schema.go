// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for readings and analyzed reports.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		gender TEXT,
		patient TEXT,
		vitals TEXT NOT NULL,
		comparisons TEXT NOT NULL,
		observations TEXT NOT NULL,
		conclusion TEXT NOT NULL,
		status TEXT NOT NULL,
		analyzed_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS readings (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		value TEXT NOT NULL,
		unit TEXT NOT NULL,
		recorded_at DATETIME NOT NULL,
		notes TEXT,
		report_id TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (report_id) REFERENCES reports(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_readings_kind ON readings(kind);
	CREATE INDEX IF NOT EXISTS idx_readings_recorded ON readings(recorded_at DESC);
	CREATE INDEX IF NOT EXISTS idx_readings_kind_recorded ON readings(kind, recorded_at DESC);
	CREATE INDEX IF NOT EXISTS idx_readings_report ON readings(report_id);
	CREATE INDEX IF NOT EXISTS idx_reports_analyzed ON reports(analyzed_at DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
