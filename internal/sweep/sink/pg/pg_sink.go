// Package pg stores experiment log entries in PostgreSQL.
package pg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/sink"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createTable = `
CREATE TABLE IF NOT EXISTS experiment_log (
    run_id         UUID PRIMARY KEY,
    status         TEXT        NOT NULL,
    name           TEXT        NOT NULL,
    date           TIMESTAMPTZ NOT NULL,
    solver         TEXT        NOT NULL,
    project        TEXT        NOT NULL DEFAULT '',
    justification  TEXT        NOT NULL DEFAULT '',
    result_path    TEXT        NOT NULL,
    file_path      TEXT        NOT NULL,
    jobs           INTEGER     NOT NULL,
    manifest_path  TEXT        NOT NULL
);`

type Sink struct {
	pool *ConnectionPool
	db   *pgxpool.Pool
}

// NewSink connects to the database and creates the experiment_log table when
// it does not exist yet.
func NewSink(ctx context.Context, cfg PoolConfig) (*Sink, error) {
	pool, err := NewConnectionPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s := &Sink{pool: pool, db: pool.conn}

	if err := s.EnsureTable(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *Sink) EnsureTable(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createTable); err != nil {
		return fmt.Errorf("failed to create experiment_log table: %w", err)
	}
	return nil
}

func (s *Sink) Record(ctx context.Context, e sink.Entry) error {
	if e.RunID == uuid.Nil {
		e.RunID = uuid.New()
	}

	cmd := `
        INSERT INTO experiment_log (run_id, status, name, date, solver, project, justification, result_path, file_path, jobs, manifest_path)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING run_id;
    `
	var id uuid.UUID
	err := s.db.QueryRow(
		ctx,
		cmd,
		e.RunID,
		e.Status,
		e.Name,
		e.Date,
		e.Solver,
		e.Project,
		e.Justification,
		e.ResultPath,
		e.ParametersPath,
		e.Jobs,
		e.ManifestPath,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to insert experiment: %w", err)
	}

	slog.Info("Experiment stored", "run_id", id, "table", "experiment_log")
	return nil
}

// Get loads one entry by run id.
func (s *Sink) Get(ctx context.Context, id uuid.UUID) (sink.Entry, error) {
	var e sink.Entry
	err := s.db.QueryRow(ctx, `
        SELECT run_id, status, name, date, solver, project, justification, result_path, file_path, jobs, manifest_path
        FROM experiment_log WHERE run_id = $1`, id).Scan(
		&e.RunID,
		&e.Status,
		&e.Name,
		&e.Date,
		&e.Solver,
		&e.Project,
		&e.Justification,
		&e.ResultPath,
		&e.ParametersPath,
		&e.Jobs,
		&e.ManifestPath,
	)
	if err != nil {
		return sink.Entry{}, fmt.Errorf("failed to load experiment %s: %w", id, err)
	}
	return e, nil
}

func (s *Sink) Close() error {
	s.pool.Close()
	return nil
}
