package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/salesdash/internal/runner"
	"github.com/leapstack-labs/salesdash/pkg/core"
)

// Status is the outcome of a run.
type Status string

// Run outcomes.
const (
	StatusSuccess         Status = "success"
	StatusConnectionError Status = "connection_error"
	StatusQueryError      Status = "query_error"
)

// timeLayout is fixed width so started_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// DefaultLimit is the number of runs Recent returns when limit <= 0.
const DefaultLimit = 20

// Entry is one recorded run.
type Entry struct {
	ID        string
	Mode      string
	Label     string
	Target    string
	Status    Status
	Rows      int
	Duration  time.Duration
	Error     string
	StartedAt time.Time
}

// StatusFor classifies a run error.
func StatusFor(err error) Status {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, runner.ErrConnection):
		return StatusConnectionError
	default:
		return StatusQueryError
	}
}

// Record stores e. Missing ID and StartedAt are filled in.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if s == nil || s.db == nil {
		return nil
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.StartedAt.IsZero() {
		e.StartedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, mode, label, target, status, row_count, duration_ms, error, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Mode, e.Label, e.Target, string(e.Status), e.Rows,
		e.Duration.Milliseconds(), e.Error, e.StartedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// Recent returns the latest runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mode, label, target, status, row_count, duration_ms, error, started_at
		 FROM runs
		 ORDER BY started_at DESC, rowid DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			status     string
			durationMS int64
			startedAt  string
		)
		if err := rows.Scan(&e.ID, &e.Mode, &e.Label, &e.Target, &status, &e.Rows, &durationMS, &e.Error, &startedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		e.Status = Status(status)
		e.Duration = time.Duration(durationMS) * time.Millisecond
		if e.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
			return nil, fmt.Errorf("invalid started_at %q: %w", startedAt, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return entries, nil
}

// Track calls run and records its outcome under e's mode, label and target.
// A failure to record is logged and never replaces run's result.
func (s *Store) Track(ctx context.Context, e Entry, run func(context.Context) (*core.Table, error)) (*core.Table, error) {
	if s == nil {
		return run(ctx)
	}

	e.StartedAt = time.Now()
	table, err := run(ctx)
	e.Duration = time.Since(e.StartedAt)
	e.Status = StatusFor(err)
	if err != nil {
		e.Error = err.Error()
	} else if table != nil {
		e.Rows = len(table.Rows)
	}

	// Record even when the request was cancelled mid-run.
	if recErr := s.Record(context.WithoutCancel(ctx), e); recErr != nil {
		s.logger.Warn("failed to record run", slog.String("label", e.Label), slog.Any("error", recErr))
	}
	return table, err
}

// Table converts entries into a result table for the CLI renderers.
func Table(entries []Entry) *core.Table {
	t := &core.Table{
		Columns:  []string{"started_at", "mode", "label", "status", "rows", "duration_ms", "error"},
		Rows:     make([][]any, len(entries)),
		RowCount: len(entries),
	}
	for i, e := range entries {
		t.Rows[i] = []any{
			e.StartedAt.Local().Format(time.DateTime),
			e.Mode,
			e.Label,
			string(e.Status),
			int64(e.Rows),
			e.Duration.Milliseconds(),
			e.Error,
		}
	}
	return t
}
