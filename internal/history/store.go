// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite ledger of finished conversion jobs and
// exports it as YAML or JSON.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/formatforge/pkg/types"
)

const (
	dbFile            = "history.db"
	defaultMaxResults = 20
)

// Store manages the ledger database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// Open opens or creates the ledger at cfg.Dir/history.db, creating the
// directory and schema when missing.
func Open(cfg types.HistoryConfig) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("history directory not configured")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, dir: cfg.Dir, maxResults: maxResults}
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

// Dir returns the directory holding the database and exports.
func (s *Store) Dir() string { return s.dir }

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			input_path TEXT NOT NULL,
			output_dir TEXT NOT NULL,
			source TEXT NOT NULL,
			target TEXT NOT NULL,
			status TEXT NOT NULL,
			message TEXT,
			outputs TEXT,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_finished_at ON jobs(finished_at)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores rec, replacing an earlier record with the same job ID.
func (s *Store) Record(ctx context.Context, rec types.Record) error {
	outputsJSON, err := json.Marshal(rec.Outputs)
	if err != nil {
		return fmt.Errorf("encoding outputs: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO jobs (id, input_path, output_dir, source, target, status, message, outputs, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			input_path=excluded.input_path, output_dir=excluded.output_dir,
			source=excluded.source, target=excluded.target, status=excluded.status,
			message=excluded.message, outputs=excluded.outputs,
			started_at=excluded.started_at, finished_at=excluded.finished_at`,
		rec.Job.ID, rec.Job.InputPath, rec.Job.OutputDir,
		string(rec.Job.Source), string(rec.Job.Target), string(rec.Status),
		rec.Message, string(outputsJSON),
		rec.StartedAt.UTC().Format(time.RFC3339Nano),
		rec.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording job %s: %w", rec.Job.ID, err)
	}
	return nil
}

// ListOptions filters List. Zero values match everything.
type ListOptions struct {
	Status     types.JobStatus
	Source     types.SourceType
	MaxResults int
}

// List returns records newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.Record, error) {
	var where []string
	var args []any
	if opts.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(opts.Status))
	}
	if opts.Source != "" {
		where = append(where, "source = ?")
		args = append(args, string(opts.Source))
	}

	limit := opts.MaxResults
	if limit <= 0 {
		limit = s.maxResults
	}

	q := `SELECT id, input_path, output_dir, source, target, status, message, outputs, started_at, finished_at FROM jobs`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY finished_at DESC, rowid DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying jobs: %w", err)
	}
	defer rows.Close()

	var records []types.Record
	for rows.Next() {
		var (
			rec                   types.Record
			source, target        string
			status                string
			message, outputs      sql.NullString
			startedAt, finishedAt string
		)
		if err := rows.Scan(&rec.Job.ID, &rec.Job.InputPath, &rec.Job.OutputDir,
			&source, &target, &status, &message, &outputs, &startedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("scanning job: %w", err)
		}
		rec.Job.Source = types.SourceType(source)
		rec.Job.Target = types.TargetFormat(target)
		rec.Status = types.JobStatus(status)
		rec.Message = message.String
		if outputs.Valid && outputs.String != "" {
			if err := json.Unmarshal([]byte(outputs.String), &rec.Outputs); err != nil {
				return nil, fmt.Errorf("decoding outputs of job %s: %w", rec.Job.ID, err)
			}
		}
		var err error
		if rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, fmt.Errorf("parsing started_at of job %s: %w", rec.Job.ID, err)
		}
		if rec.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt); err != nil {
			return nil, fmt.Errorf("parsing finished_at of job %s: %w", rec.Job.ID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
