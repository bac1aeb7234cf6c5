// Package catalog persists split-run history in a local SQLite database.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	source_path TEXT NOT NULL,
	output_dir TEXT NOT NULL,
	started_at TEXT NOT NULL,
	succeeded INTEGER NOT NULL,
	failed INTEGER NOT NULL,
	skipped INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS clips (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	clip_index INTEGER NOT NULL,
	start_seconds REAL NOT NULL,
	end_seconds REAL NOT NULL,
	output_path TEXT NOT NULL,
	status TEXT NOT NULL,
	error TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_clips_run ON clips(run_id);
`

const (
	insertRunSQL = `INSERT INTO runs (source_path, output_dir, started_at, succeeded, failed, skipped)
		VALUES (?, ?, ?, ?, ?, ?)`
	insertClipSQL = `INSERT INTO clips (run_id, clip_index, start_seconds, end_seconds, output_path, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	selectRunsSQL = `SELECT id, source_path, output_dir, started_at, succeeded, failed, skipped
		FROM runs ORDER BY id DESC LIMIT ?`
	selectClipsSQL = `SELECT clip_index, start_seconds, end_seconds, output_path, status, error
		FROM clips WHERE run_id = ? ORDER BY clip_index`
)

// ClipRecord mirrors one ClipResult for persistence.
type ClipRecord struct {
	Index        int
	StartSeconds float64
	EndSeconds   float64
	OutputPath   string
	Status       string
	Error        string
}

// Run is one recorded splitting run.
type Run struct {
	ID         int64
	SourcePath string
	OutputDir  string
	StartedAt  time.Time
	Succeeded  int
	Failed     int
	Skipped    int
	Clips      []ClipRecord
}

// Catalog is a handle to the run-history database.
type Catalog struct {
	db *sql.DB
}

// Open opens (or creates) the catalog database at the given path.
func Open(path string) (*Catalog, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize catalog schema: %w", err)
	}

	return &Catalog{db: db}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// RecordRun inserts a run and all of its clips in one transaction and
// fills in the run's ID.
func (c *Catalog) RecordRun(ctx context.Context, run *Run) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record run: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, insertRunSQL,
		run.SourcePath, run.OutputDir, run.StartedAt.UTC().Format(time.RFC3339),
		run.Succeeded, run.Failed, run.Skipped)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get run id: %w", err)
	}

	for _, clip := range run.Clips {
		if _, err := tx.ExecContext(ctx, insertClipSQL,
			runID, clip.Index, clip.StartSeconds, clip.EndSeconds,
			clip.OutputPath, clip.Status, clip.Error); err != nil {
			return fmt.Errorf("insert clip %d: %w", clip.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit record run: %w", err)
	}
	run.ID = runID
	return nil
}

// ListRuns returns the most recent runs, newest first, with their clips.
func (c *Catalog) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := c.db.QueryContext(ctx, selectRunsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var startedAt string
		if err := rows.Scan(&run.ID, &run.SourcePath, &run.OutputDir, &startedAt,
			&run.Succeeded, &run.Failed, &run.Skipped); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
			run.StartedAt = t
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	for i := range runs {
		clips, err := c.listClips(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Clips = clips
	}
	return runs, nil
}

func (c *Catalog) listClips(ctx context.Context, runID int64) ([]ClipRecord, error) {
	rows, err := c.db.QueryContext(ctx, selectClipsSQL, runID)
	if err != nil {
		return nil, fmt.Errorf("select clips: %w", err)
	}
	defer rows.Close()

	var clips []ClipRecord
	for rows.Next() {
		var clip ClipRecord
		if err := rows.Scan(&clip.Index, &clip.StartSeconds, &clip.EndSeconds,
			&clip.OutputPath, &clip.Status, &clip.Error); err != nil {
			return nil, fmt.Errorf("scan clip: %w", err)
		}
		clips = append(clips, clip)
	}
	return clips, rows.Err()
}
