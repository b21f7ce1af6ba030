package storage

import "database/sql"

// migrateV001 creates the initial stridelog schema. Every statement uses
// IF NOT EXISTS for idempotency.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS timeline (
			date        TEXT PRIMARY KEY,
			steps       INTEGER NOT NULL DEFAULT 0,
			distance_km REAL NOT NULL DEFAULT 0,
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS runs (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			export_dir        TEXT NOT NULL DEFAULT '',
			fragments_found   INTEGER NOT NULL DEFAULT 0,
			records_parsed    INTEGER NOT NULL DEFAULT 0,
			fragments_skipped INTEGER NOT NULL DEFAULT 0,
			clusters_matched  INTEGER NOT NULL DEFAULT 0,
			timeline_days     INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE INDEX IF NOT EXISTS idx_timeline_steps ON timeline(steps)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started   ON runs(started_at)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
