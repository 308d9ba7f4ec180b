package commands

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/leapstack-labs/salesdash/internal/cli/config"
	"github.com/leapstack-labs/salesdash/internal/ui"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port      int
	NoBrowser bool
	Watch     bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"ui"},
		Short:   "Start the query dashboard",
		Long: `Start a local web server with the query dashboard.

Pick a catalog, choose one of its predefined queries and run it. Results are
shown as a table and as a bar chart of the first two columns.`,
		Example: `  # Start on the configured port (default 8765)
  salesdash serve

  # Start on a custom port without opening a browser
  salesdash serve --port 3000 --no-browser`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Reload pages when static assets change (dev builds)")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx := NewCommandContext(cmd)
	uiCfg := serveSettings(cmdCtx.Cfg.GetUIConfig(), opts)

	secret := uiCfg.SessionSecret
	if secret == "" {
		var err error
		if secret, err = generateSessionSecret(); err != nil {
			return fmt.Errorf("failed to generate session secret: %w", err)
		}
	}

	hist := cmdCtx.History(cmd.Context())
	defer func() { _ = hist.Close() }()

	qr := cmdCtx.Runner()
	server := ui.NewServer(ui.Config{
		Runner:        qr,
		History:       hist,
		Port:          uiCfg.Port,
		SessionSecret: secret,
		Logger:        cmdCtx.Logger,
		Watch:         opts.Watch,
	})

	if uiCfg.AutoOpen {
		go openBrowser(server.URL())
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Serving dashboard for %s on %s\n", qr.Target(), server.URL())
	_, _ = fmt.Fprintln(out, "Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx)
}

// serveSettings applies flag overrides on top of the configured UI settings.
func serveSettings(base *config.UIConfig, opts *ServeOptions) config.UIConfig {
	cfg := *base
	if opts.Port != 0 {
		cfg.Port = opts.Port
	}
	if opts.NoBrowser {
		cfg.AutoOpen = false
	}
	return cfg
}

// generateSessionSecret returns a random per-process cookie signing key.
func generateSessionSecret() (string, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return "", err
	}
	return hex.EncodeToString(key), nil
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(context.Background(), "open", url)
	case "linux":
		cmd = exec.CommandContext(context.Background(), "xdg-open", url)
	case "windows":
		cmd = exec.CommandContext(context.Background(), "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return
	}

	_ = cmd.Start()
}
