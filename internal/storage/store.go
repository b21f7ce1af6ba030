package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/runnerr0/stridelog/internal/timeline"
)

// Store defines the interface for stridelog data operations.
type Store interface {
	ReplaceTimeline(ctx context.Context, tl timeline.Timeline) error
	GetTimeline(ctx context.Context) (timeline.Timeline, error)
	RecordRun(ctx context.Context, run *RunRecord) error
	LastRun(ctx context.Context) (*RunRecord, error)
	GetStats(ctx context.Context) (*Stats, error)
	PurgeAll(ctx context.Context) error
	Close() error
}

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB

	// Prepared statements
	insertDay *sql.Stmt
	insertRun *sql.Stmt
}

// NewSQLiteStore creates a new SQLiteStore from an already-opened and
// migrated database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}

	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.insertDay, err = s.db.Prepare(`
		INSERT INTO timeline (date, steps, distance_km)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}

	s.insertRun, err = s.db.Prepare(`
		INSERT INTO runs (started_at, export_dir, fragments_found, records_parsed,
		                  fragments_skipped, clusters_matched, timeline_days)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}

	return nil
}

// ReplaceTimeline atomically swaps the stored timeline for the given one.
func (s *SQLiteStore) ReplaceTimeline(ctx context.Context, tl timeline.Timeline) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM timeline"); err != nil {
		return fmt.Errorf("clear timeline: %w", err)
	}

	for _, e := range tl {
		if _, err := tx.StmtContext(ctx, s.insertDay).ExecContext(ctx,
			e.Day.String(), e.Steps, e.DistanceKm,
		); err != nil {
			return fmt.Errorf("insert day %s: %w", e.Day, err)
		}
	}

	return tx.Commit()
}

// GetTimeline returns the stored timeline in ascending date order.
func (s *SQLiteStore) GetTimeline(ctx context.Context) (timeline.Timeline, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT date, steps, distance_km FROM timeline ORDER BY date ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("query timeline: %w", err)
	}
	defer rows.Close()

	tl := timeline.Timeline{}
	for rows.Next() {
		var dateStr string
		var e timeline.Entry
		if err := rows.Scan(&dateStr, &e.Steps, &e.DistanceKm); err != nil {
			return nil, fmt.Errorf("scan day: %w", err)
		}
		day, err := timeline.ParseDay(dateStr)
		if err != nil {
			return nil, fmt.Errorf("stored date %q: %w", dateStr, err)
		}
		e.Day = day
		tl = append(tl, e)
	}
	return tl, rows.Err()
}

// RecordRun appends one ingestion run's counters and fills in the record's
// ID and StartedAt.
func (s *SQLiteStore) RecordRun(ctx context.Context, run *RunRecord) error {
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	res, err := s.insertRun.ExecContext(ctx,
		run.StartedAt.UTC().Format(time.RFC3339), run.ExportDir,
		run.FragmentsFound, run.RecordsParsed, run.FragmentsSkipped,
		run.ClustersMatched, run.TimelineDays,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	run.ID, err = res.LastInsertId()
	return err
}

// LastRun returns the most recent ingestion run, or nil when none exists.
func (s *SQLiteStore) LastRun(ctx context.Context) (*RunRecord, error) {
	var run RunRecord
	var startedStr string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, export_dir, fragments_found, records_parsed,
		       fragments_skipped, clusters_matched, timeline_days
		FROM runs ORDER BY id DESC LIMIT 1
	`).Scan(
		&run.ID, &startedStr, &run.ExportDir, &run.FragmentsFound,
		&run.RecordsParsed, &run.FragmentsSkipped, &run.ClustersMatched,
		&run.TimelineDays,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get last run: %w", err)
	}
	run.StartedAt, _ = parseTimestamp(startedStr)
	return &run, nil
}

// GetStats returns aggregate statistics about the stored timeline.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(steps > 0), 0),
		       COALESCE(SUM(steps), 0),
		       COALESCE(SUM(distance_km), 0)
		FROM timeline
	`).Scan(&stats.TimelineDays, &stats.ActiveDays, &stats.TotalSteps, &stats.TotalDistanceKm)
	if err != nil {
		return nil, fmt.Errorf("timeline totals: %w", err)
	}

	if stats.TimelineDays > 0 {
		err = s.db.QueryRowContext(ctx,
			"SELECT MIN(date), MAX(date) FROM timeline",
		).Scan(&stats.FirstDay, &stats.LastDay)
		if err != nil {
			return nil, fmt.Errorf("timeline range: %w", err)
		}
	}

	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs").Scan(&stats.Runs)
	if err != nil {
		return nil, fmt.Errorf("count runs: %w", err)
	}

	return stats, nil
}

// PurgeAll deletes the stored timeline and all run records.
func (s *SQLiteStore) PurgeAll(ctx context.Context) error {
	stmts := []string{
		"DELETE FROM timeline",
		"DELETE FROM runs",
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("purge (%s): %w", stmt, err)
		}
	}
	return nil
}

// parseTimestamp tries several common SQLite timestamp formats.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}

// Close releases all prepared statements. The underlying *sql.DB is NOT
// closed; that is the caller's responsibility.
func (s *SQLiteStore) Close() error {
	for _, stmt := range []*sql.Stmt{s.insertDay, s.insertRun} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}
