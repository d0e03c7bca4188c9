// Package repository persists run bookkeeping for extraction batches.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jet-w/unisa-uniadelaide-payslip-extractor/constants"
)

// Run is one document's extraction run.
type Run struct {
	ID           uuid.UUID
	SourcePath   string
	ContentHash  string
	Pages        int
	Payments     int
	Summaries    int
	SoftErrors   int
	Status       constants.RunStatus
	ErrorMessage string
	StartedAt    time.Time
	FinishedAt   *time.Time
}

// RunOutcome carries the counts recorded when a run finishes.
type RunOutcome struct {
	Pages        int
	Payments     int
	Summaries    int
	SoftErrors   int
	Status       constants.RunStatus
	ErrorMessage string
}

// RunRepository records extraction runs, one row per document per batch.
type RunRepository interface {
	Start(ctx context.Context, id uuid.UUID, sourcePath, contentHash string) error
	Finish(ctx context.Context, id uuid.UUID, out RunOutcome) error
	List(ctx context.Context) ([]Run, error)
	Close() error
}

const schema = `
CREATE TABLE IF NOT EXISTS extraction_runs (
	id            TEXT PRIMARY KEY,
	source_path   TEXT NOT NULL,
	content_hash  TEXT NOT NULL DEFAULT '',
	pages         INTEGER NOT NULL DEFAULT 0,
	payments      INTEGER NOT NULL DEFAULT 0,
	summaries     INTEGER NOT NULL DEFAULT 0,
	soft_errors   INTEGER NOT NULL DEFAULT 0,
	status        TEXT NOT NULL,
	error_message TEXT NOT NULL DEFAULT '',
	started_at    TIMESTAMP NOT NULL,
	finished_at   TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_extraction_runs_source ON extraction_runs(source_path);
`

type sqliteRunRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) the run-history database. path ":memory:" gives
// an in-memory store for tests and --inmem batch runs.
func Open(ctx context.Context, path string, logger *slog.Logger) (RunRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// The sqlite driver is single-writer; one connection avoids table locks.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	logger.Debug("run store ready", "path", path)
	return &sqliteRunRepository{db: db, logger: logger}, nil
}

func (r *sqliteRunRepository) Start(ctx context.Context, id uuid.UUID, sourcePath, contentHash string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO extraction_runs (id, source_path, content_hash, status, started_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id.String(), sourcePath, contentHash, string(constants.RunStatusRunning), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("start run: %w", err)
	}
	return nil
}

func (r *sqliteRunRepository) Finish(ctx context.Context, id uuid.UUID, out RunOutcome) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE extraction_runs
		 SET pages = ?, payments = ?, summaries = ?, soft_errors = ?,
		     status = ?, error_message = ?, finished_at = ?
		 WHERE id = ?`,
		out.Pages, out.Payments, out.Summaries, out.SoftErrors,
		string(out.Status), out.ErrorMessage, time.Now().UTC(), id.String(),
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("finish run %s: no such run", id)
	}
	return nil
}

func (r *sqliteRunRepository) List(ctx context.Context) ([]Run, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, source_path, content_hash, pages, payments, summaries,
		        soft_errors, status, error_message, started_at, finished_at
		 FROM extraction_runs ORDER BY started_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []Run
	for rows.Next() {
		var (
			run      Run
			idStr    string
			status   string
			finished sql.NullTime
		)
		if err := rows.Scan(&idStr, &run.SourcePath, &run.ContentHash, &run.Pages,
			&run.Payments, &run.Summaries, &run.SoftErrors, &status,
			&run.ErrorMessage, &run.StartedAt, &finished); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.ID, err = uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("parse run id %q: %w", idStr, err)
		}
		run.Status = constants.RunStatus(status)
		if finished.Valid {
			t := finished.Time
			run.FinishedAt = &t
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func (r *sqliteRunRepository) Close() error {
	return r.db.Close()
}
