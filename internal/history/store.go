// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records conversion runs and their per-file outcomes in a
// local SQLite database so past runs can be inspected later.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/ffxi-audio/pkg/types"
)

const (
	defaultLimit = 20
	// timeLayout has fixed-width fractional seconds so stored timestamps
	// sort chronologically as text.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// ErrRunNotFound is returned when no run matches an ID or prefix.
var ErrRunNotFound = errors.New("run not found")

// Run is a stored batch summary.
type Run struct {
	ID          string      `json:"id" yaml:"id"`
	Root        string      `json:"root" yaml:"root"`
	StartedAt   time.Time   `json:"started_at" yaml:"started_at"`
	FinishedAt  time.Time   `json:"finished_at" yaml:"finished_at"`
	Tally       types.Tally `json:"tally" yaml:"tally"`
	Interrupted bool        `json:"interrupted" yaml:"interrupted"`
}

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path, creating parent directories
// and the schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			root TEXT NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			converted INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			interrupted INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS files (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			input TEXT NOT NULL,
			output TEXT NOT NULL,
			outcome TEXT NOT NULL,
			detail TEXT,
			duration_ms INTEGER NOT NULL,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_files_input ON files(input)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveRun stores a batch result and all its file results in one transaction
// and returns the generated run ID.
func (s *Store) SaveRun(ctx context.Context, r types.BatchResult) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, root, started_at, finished_at, converted, skipped, failed, interrupted)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, r.Root, formatTime(r.StartedAt), formatTime(r.FinishedAt),
		r.Converted, r.Skipped, r.Failed, r.Interrupted,
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO files (run_id, position, input, output, outcome, detail, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, f := range r.Files {
		if _, err := stmt.ExecContext(ctx,
			id, i, f.Input, f.Output, string(f.Outcome), f.Detail, f.Duration.Milliseconds(),
		); err != nil {
			return "", fmt.Errorf("inserting file %s: %w", f.Input, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first. A limit of zero or
// less selects the default.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, root, started_at, finished_at, converted, skipped, failed, interrupted
		 FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// FindRun resolves a full run ID or a unique prefix of one.
func (s *Store) FindRun(ctx context.Context, idPrefix string) (Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, root, started_at, finished_at, converted, skipped, failed, interrupted
		 FROM runs WHERE substr(id, 1, length(?1)) = ?1 LIMIT 2`, idPrefix)
	if err != nil {
		return Run{}, fmt.Errorf("querying run %s: %w", idPrefix, err)
	}
	defer rows.Close()

	var matches []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return Run{}, err
		}
		matches = append(matches, r)
	}
	if err := rows.Err(); err != nil {
		return Run{}, err
	}

	switch len(matches) {
	case 0:
		return Run{}, fmt.Errorf("%s: %w", idPrefix, ErrRunNotFound)
	case 1:
		return matches[0], nil
	default:
		return Run{}, fmt.Errorf("run ID prefix %q is ambiguous", idPrefix)
	}
}

// RunFiles returns the file results of a run in processing order.
func (s *Store) RunFiles(ctx context.Context, runID string) ([]types.FileResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT input, output, outcome, detail, duration_ms
		 FROM files WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying files for run %s: %w", runID, err)
	}
	defer rows.Close()

	var files []types.FileResult
	for rows.Next() {
		var (
			f       types.FileResult
			outcome string
			detail  sql.NullString
			ms      int64
		)
		if err := rows.Scan(&f.Input, &f.Output, &outcome, &detail, &ms); err != nil {
			return nil, fmt.Errorf("scanning file row: %w", err)
		}
		f.Outcome = types.Outcome(outcome)
		f.Detail = detail.String
		f.Duration = time.Duration(ms) * time.Millisecond
		files = append(files, f)
	}
	return files, rows.Err()
}

func scanRun(rows *sql.Rows) (Run, error) {
	var (
		r                 Run
		started, finished string
	)
	if err := rows.Scan(&r.ID, &r.Root, &started, &finished,
		&r.Tally.Converted, &r.Tally.Skipped, &r.Tally.Failed, &r.Interrupted); err != nil {
		return Run{}, fmt.Errorf("scanning run row: %w", err)
	}
	r.StartedAt = parseTime(started)
	r.FinishedAt = parseTime(finished)
	return r, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
