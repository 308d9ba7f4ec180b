package commands

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/salesdash/internal/cli/config"
	"github.com/leapstack-labs/salesdash/internal/cli/output"
	"github.com/leapstack-labs/salesdash/internal/history"
	"github.com/leapstack-labs/salesdash/internal/runner"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode, err := output.ParseMode(cfg.OutputFormat)
	if err != nil {
		mode = output.ModeAuto
	}
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Runner creates a query runner for the configured target.
func (c *CommandContext) Runner() *runner.Runner {
	return runner.New(c.Cfg.AdapterConfig(), runner.WithLogger(c.Logger))
}

// History opens the run log. It returns nil when history is disabled or the
// database cannot be opened; a nil store records nothing.
func (c *CommandContext) History(ctx context.Context) *history.Store {
	h := c.Cfg.GetHistoryConfig()
	if !h.Enabled {
		return nil
	}
	store, err := history.Open(ctx, h.Path, c.Logger)
	if err != nil {
		c.Logger.Warn("run history unavailable", slog.String("path", h.Path), slog.Any("error", err))
		return nil
	}
	return store
}

// getConfig returns the current configuration, or defaults when none was
// loaded (help and completion skip loading).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		OutputFormat: config.DefaultOutput,
		LogLevel:     config.DefaultLogLevel,
		Target:       &config.TargetConfig{},
	}
}
