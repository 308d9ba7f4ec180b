package commands

import (
	"context"
	"errors"

	"github.com/leapstack-labs/salesdash/internal/cli/output"
	"github.com/leapstack-labs/salesdash/internal/history"
	"github.com/spf13/cobra"
)

// errHistoryDisabled is returned when the run log is switched off or cannot be opened.
var errHistoryDisabled = errors.New("run history is not available (see history.enabled and history.path)")

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent query runs",
		Long: `Show the most recent query runs, newest first.

Every run from the CLI, the shell and the dashboard is recorded in a local
SQLite database (history.path, default .salesdash/history.db).`,
		Example: `  # Last 20 runs
  salesdash history

  # Last 5 runs as JSON
  salesdash history --limit 5 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			hist := cmdCtx.History(cmd.Context())
			if hist == nil {
				return errHistoryDisabled
			}
			defer func() { _ = hist.Close() }()
			return runHistory(cmd.Context(), cmdCtx.Renderer, hist, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", history.DefaultLimit, "Number of runs to show")

	return cmd
}

func runHistory(ctx context.Context, r *output.Renderer, hist *history.Store, opts *HistoryOptions) error {
	entries, err := hist.Recent(ctx, opts.Limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 && r.EffectiveMode() != output.ModeJSON {
		r.Println("No runs recorded yet.")
		return nil
	}
	return r.Table(history.Table(entries))
}
