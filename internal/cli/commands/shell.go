package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/salesdash/internal/catalog"
	"github.com/leapstack-labs/salesdash/internal/cli/output"
	"github.com/leapstack-labs/salesdash/internal/history"
	"github.com/spf13/cobra"
)

const shellPrompt = "salesdash> "

// NewShellCommand creates the shell command.
func NewShellCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Pick and run predefined queries interactively",
		Long: `Start an interactive session for running predefined queries.

Type a query number or label to run it. Only catalog queries can be run;
there is no free-form SQL. Type .help for the session commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShellREPL(cmd)
		},
	}
	return cmd
}

func runShellREPL(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cmdCtx := NewCommandContext(cmd)

	hist := cmdCtx.History(ctx)
	defer func() { _ = hist.Close() }()

	qr := cmdCtx.Runner()
	sh := newShell(cmdCtx.Renderer, qr, hist, cmd.ErrOrStderr())

	histCfg := cmdCtx.Cfg.GetHistoryConfig()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          shellPrompt,
		HistoryFile:     filepath.Join(filepath.Dir(histCfg.Path), "shell_history"),
		AutoComplete:    newShellCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "salesdash shell (target: %s)\n", qr.Target())
	_, _ = fmt.Fprintln(out, "Type a query number to run it, .list to see them, .quit to exit")
	_, _ = fmt.Fprintln(out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if sh.handle(ctx, line) {
			break
		}
	}
	return nil
}

// shell holds the state of one interactive session.
type shell struct {
	r      *output.Renderer
	qr     QueryRunner
	hist   *history.Store
	errOut io.Writer

	mode  string // "" searches both catalogs
	chart string
}

func newShell(r *output.Renderer, qr QueryRunner, hist *history.Store, errOut io.Writer) *shell {
	return &shell{r: r, qr: qr, hist: hist, errOut: errOut}
}

// handle processes one input line and reports whether the session should end.
func (s *shell) handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, ".") {
		return s.dotCommand(ctx, line)
	}

	opts := &RunOptions{Mode: s.mode, Chart: s.chart}
	if err := runRun(ctx, s.r, s.qr, s.hist, opts, line); err != nil {
		s.errorf("Error: %v\n", err)
	}
	s.r.Println()
	return false
}

func (s *shell) dotCommand(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printShellHelp(s.r.Writer())

	case ".list":
		mode := s.mode
		if len(parts) > 1 {
			mode = parts[1]
		}
		if err := runList(s.r, &ListOptions{Mode: mode}); err != nil {
			s.errorf("Error: %v\n", err)
		}

	case ".mode":
		if len(parts) < 2 {
			s.r.Println("mode: " + s.modeName())
			return false
		}
		if parts[1] == "all" {
			s.mode = ""
		} else {
			m, err := catalog.ParseMode(parts[1])
			if err != nil {
				s.errorf("Error: %v\n", err)
				return false
			}
			s.mode = string(m)
		}
		s.r.Println("mode: " + s.modeName())

	case ".chart":
		if len(parts) < 2 {
			s.errorf("Usage: .chart <file.svg|file.png> or .chart off\n")
			return false
		}
		if parts[1] == "off" {
			s.chart = ""
			s.r.Println("chart: off")
			return false
		}
		s.chart = parts[1]
		s.r.Println("chart: " + s.chart)

	case ".history":
		if s.hist == nil {
			s.errorf("Error: %v\n", errHistoryDisabled)
			return false
		}
		limit := history.DefaultLimit
		if len(parts) > 1 {
			n, err := strconv.Atoi(parts[1])
			if err != nil || n <= 0 {
				s.errorf("Usage: .history [n]\n")
				return false
			}
			limit = n
		}
		if err := runHistory(ctx, s.r, s.hist, &HistoryOptions{Limit: limit}); err != nil {
			s.errorf("Error: %v\n", err)
		}

	default:
		s.errorf("Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func (s *shell) modeName() string {
	if s.mode == "" {
		return "all"
	}
	return s.mode
}

func (s *shell) errorf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.errOut, format, a...)
}

func printShellHelp(w io.Writer) {
	help := `
Commands:
  <number|label>       Run a predefined query
  .list [mode]         List the predefined queries
  .mode [mode|all]     Restrict query numbers to one catalog
  .chart <file>|off    Also write a bar chart after each run
  .history [n]         Show recent runs
  .help                Show this help message
  .quit / .exit        Leave the shell

Modes: primary (Guvi Query), secondary (My own Query)
`
	_, _ = fmt.Fprintln(w, help)
}

// newShellCompleter completes query numbers, labels and session commands.
func newShellCompleter() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, q := range catalog.All() {
		items = append(items, readline.PcItem(strconv.Itoa(q.Number())), readline.PcItem(q.Label))
	}

	modes := []readline.PrefixCompleterInterface{readline.PcItem("all")}
	for _, m := range catalog.Modes() {
		modes = append(modes, readline.PcItem(string(m)))
	}

	items = append(items,
		readline.PcItem(".help"),
		readline.PcItem(".list", modes...),
		readline.PcItem(".mode", modes...),
		readline.PcItem(".chart", readline.PcItem("off")),
		readline.PcItem(".history"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
	return readline.NewPrefixCompleter(items...)
}
