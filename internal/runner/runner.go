// Package runner executes a single SQL statement against the configured
// target and materializes the result in memory.
//
// Every Run acquires its own connection and releases it before returning,
// whether the query succeeded or not. There is no pooling across runs.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/salesdash/pkg/adapter"
	"github.com/leapstack-labs/salesdash/pkg/core"
)

// AdapterFactory creates an unconnected adapter.
type AdapterFactory func() (adapter.Adapter, error)

// Runner runs queries against one target.
type Runner struct {
	cfg     core.AdapterConfig
	factory AdapterFactory
	logger  *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithAdapterFactory overrides how adapters are created.
func WithAdapterFactory(f AdapterFactory) Option {
	return func(r *Runner) {
		if f != nil {
			r.factory = f
		}
	}
}

// New creates a Runner for cfg. By default adapters are resolved from the
// adapter registry by cfg.Type.
func New(cfg core.AdapterConfig, opts ...Option) *Runner {
	r := &Runner{
		cfg:    cfg,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.factory == nil {
		r.factory = func() (adapter.Adapter, error) {
			return adapter.NewAdapter(r.cfg, r.logger)
		}
	}
	return r
}

// Target returns a display name for the configured database.
func (r *Runner) Target() string {
	return describeTarget(r.cfg)
}

// Run executes sqlText verbatim and returns the full result.
// On error the returned table is nil.
func (r *Runner) Run(ctx context.Context, sqlText string) (*core.Table, error) {
	log := r.logger.With(slog.String("run_id", uuid.NewString()))
	start := time.Now()

	adp, err := r.factory()
	if err != nil {
		return nil, &ConnectionError{Target: r.Target(), Err: err}
	}

	log.Debug("connecting", slog.String("target", r.Target()))
	if err := adp.Connect(ctx, r.cfg); err != nil {
		_ = adp.Close()
		log.Warn("connection failed", slog.String("error", err.Error()))
		return nil, &ConnectionError{Target: r.Target(), Err: err}
	}
	defer func() {
		if cerr := adp.Close(); cerr != nil {
			log.Warn("failed to close connection", slog.String("error", cerr.Error()))
		}
	}()

	rows, err := adp.Query(ctx, sqlText)
	if err != nil {
		log.Warn("query failed", slog.String("error", err.Error()))
		return nil, &QueryExecutionError{Err: err}
	}
	defer func() { _ = rows.Close() }()

	table, err := materialize(rows)
	if err != nil {
		log.Warn("reading results failed", slog.String("error", err.Error()))
		return nil, &QueryExecutionError{Err: err}
	}

	log.Info("query executed",
		slog.Int("rows", table.RowCount),
		slog.Int("columns", table.NumColumns()),
		slog.Duration("duration", time.Since(start)))
	return table, nil
}

// materialize reads every row into a core.Table.
func materialize(rows *core.Rows) (*core.Table, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	table := &core.Table{Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", table.RowCount+1, err)
		}
		for i, v := range values {
			values[i] = normalize(v)
		}
		table.Rows = append(table.Rows, values)
		table.RowCount++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

func describeTarget(cfg core.AdapterConfig) string {
	switch {
	case cfg.Host != "":
		port := ""
		if cfg.Port != 0 {
			port = ":" + strconv.Itoa(cfg.Port)
		}
		return fmt.Sprintf("%s://%s%s/%s", cfg.Type, cfg.Host, port, cfg.Database)
	case cfg.Path != "":
		return fmt.Sprintf("%s:%s", cfg.Type, cfg.Path)
	case cfg.Database != "":
		return fmt.Sprintf("%s:%s", cfg.Type, cfg.Database)
	default:
		return cfg.Type
	}
}
