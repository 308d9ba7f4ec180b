package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/leapstack-labs/salesdash/internal/chart"
	"github.com/leapstack-labs/salesdash/internal/cli/output"
	"github.com/leapstack-labs/salesdash/internal/history"
	"github.com/leapstack-labs/salesdash/pkg/core"
	"github.com/spf13/cobra"
)

// RunOptions holds options for the run command.
type RunOptions struct {
	Mode  string
	Chart string
}

// QueryRunner executes SQL against the configured target.
type QueryRunner interface {
	Run(ctx context.Context, sql string) (*core.Table, error)
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run <label|number>",
		Short: "Run a predefined query",
		Long: `Run a predefined query against the configured target and print the result.

The query is selected by its full label or its number. With --chart the
first two result columns are also drawn as a bar chart (SVG or PNG, picked
from the file extension).`,
		Example: `  # Run query 3 and print a table
  salesdash run 3

  # Run query 15 and write a bar chart
  salesdash run 15 --chart revenue.svg

  # Machine-readable output
  salesdash run 7 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			hist := cmdCtx.History(cmd.Context())
			defer func() { _ = hist.Close() }()
			return runRun(cmd.Context(), cmdCtx.Renderer, cmdCtx.Runner(), hist, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Mode, "mode", "", "Catalog to search: primary or secondary (default: both)")
	cmd.Flags().StringVar(&opts.Chart, "chart", "", "Write a bar chart of the first two columns to this .svg or .png file")
	_ = cmd.RegisterFlagCompletionFunc("mode", completeModes(false))

	return cmd
}

func runRun(ctx context.Context, r *output.Renderer, qr QueryRunner, hist *history.Store, opts *RunOptions, ref string) error {
	mode, q, err := resolveQuery(opts.Mode, ref)
	if err != nil {
		return err
	}

	var chartFormat chart.Format
	if opts.Chart != "" {
		if chartFormat, err = chart.FormatForPath(opts.Chart); err != nil {
			return err
		}
	}

	entry := history.Entry{Mode: string(mode), Label: q.Label, Target: targetOf(qr)}
	table, err := hist.Track(ctx, entry, func(ctx context.Context) (*core.Table, error) {
		return qr.Run(ctx, q.SQL)
	})
	if err != nil {
		return err
	}

	switch r.EffectiveMode() {
	case output.ModeText:
		r.Success("Query executed successfully!")
		r.Println(r.Styles().Header2.Render("Results for: " + q.Label))
	case output.ModeMarkdown:
		r.Success("Query executed successfully!")
		r.Println()
		r.Println(output.FormatHeader(3, "Results for: "+q.Label))
		r.Println()
	}

	if err := r.Table(table); err != nil {
		return err
	}

	if opts.Chart != "" {
		return writeChart(r, table, opts.Chart, chartFormat)
	}
	return nil
}

// targetOf returns the runner's target description when it has one.
func targetOf(qr QueryRunner) string {
	if t, ok := qr.(interface{ Target() string }); ok {
		return t.Target()
	}
	return ""
}

// writeChart renders the bar chart to path. Results that cannot be charted
// produce a warning, not an error.
func writeChart(r *output.Renderer, table *core.Table, path string, format chart.Format) error {
	bc, err := chart.Build(table)
	if err == nil && len(bc.Bars) == 0 {
		err = &chart.RenderError{Kind: chart.NoData}
	}
	var renderErr *chart.RenderError
	if errors.As(err, &renderErr) {
		r.Warning(renderErr.Error() + "; chart skipped")
		return nil
	}
	if err != nil {
		return err
	}

	f, err := os.Create(path) //nolint:gosec // path comes from the user's own flag
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	if err := bc.Render(f, format); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("failed to write chart file: %w", err)
	}

	if bc.Skipped > 0 {
		r.Warning(fmt.Sprintf("%s with NULL %s left out of the chart", output.Plural(bc.Skipped, "row", "rows"), bc.ValueAxis))
	}
	return nil
}
