package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/salesdash/internal/cli/config"
	"github.com/leapstack-labs/salesdash/internal/cli/output"
	"github.com/leapstack-labs/salesdash/internal/history"
	"github.com/leapstack-labs/salesdash/internal/sample"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Check statuses.
const (
	checkPass  = "pass"
	checkWarn  = "warn"
	checkError = "error"
)

// HealthCheck is the result of one doctor check.
type HealthCheck struct {
	Name    string `json:"name"`
	Group   string `json:"group"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// DoctorOutput is the JSON output of the doctor command.
type DoctorOutput struct {
	Target  string        `json:"target"`
	Checks  []HealthCheck `json:"checks"`
	Healthy bool          `json:"healthy"`
}

// doctorEnv is what the checks inspect.
type doctorEnv struct {
	ConfigFile string
	Target     string
	Runner     QueryRunner
	History    *config.HistoryConfig
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the configuration, database and run history",
		Long: `Check that salesdash can run its predefined queries.

The doctor connects to the configured target, verifies that the
amazon_products table exists with every column the queries use, and opens
the run history database. It exits non-zero when a check fails.`,
		Example: `  # Run all checks
  salesdash doctor

  # Machine-readable report
  salesdash doctor -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			qr := cmdCtx.Runner()
			env := doctorEnv{
				ConfigFile: config.GetConfigFileUsed(),
				Target:     qr.Target(),
				Runner:     qr,
				History:    cmdCtx.Cfg.GetHistoryConfig(),
			}
			return runDoctor(cmd.Context(), cmdCtx.Renderer, env)
		},
	}
	return cmd
}

func runDoctor(ctx context.Context, r *output.Renderer, env doctorEnv) error {
	out := &DoctorOutput{Target: env.Target, Checks: collectChecks(ctx, env)}

	failed := 0
	for _, c := range out.Checks {
		if c.Status == checkError {
			failed++
		}
	}
	out.Healthy = failed == 0

	var err error
	switch r.EffectiveMode() {
	case output.ModeJSON:
		err = r.JSON(out)
	case output.ModeText:
		renderDoctorText(r, out)
	default:
		renderDoctorMarkdown(r, out)
	}
	if err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("doctor found %s", output.Plural(failed, "failing check", "failing checks"))
	}
	return nil
}

func collectChecks(ctx context.Context, env doctorEnv) []HealthCheck {
	checks := []HealthCheck{configCheck(env.ConfigFile)}

	conn := connectionCheck(ctx, env.Runner, env.Target)
	checks = append(checks, conn)
	if conn.Status == checkError {
		checks = append(checks,
			HealthCheck{Name: "Table", Group: "database", Status: checkWarn, Message: "skipped: no connection"},
		)
	} else {
		checks = append(checks, tableChecks(ctx, env.Runner)...)
	}

	return append(checks, historyCheck(ctx, env.History))
}

func configCheck(path string) HealthCheck {
	c := HealthCheck{Name: "Config file", Group: "configuration", Status: checkPass}
	if path == "" {
		c.Status = checkWarn
		c.Message = "no salesdash.yaml found; using defaults and SALESDASH_* variables (run 'salesdash init')"
		return c
	}
	c.Message = path
	return c
}

func connectionCheck(ctx context.Context, qr QueryRunner, target string) HealthCheck {
	c := HealthCheck{Name: "Connection", Group: "database", Status: checkPass, Message: "connected to " + target}
	if _, err := qr.Run(ctx, "SELECT 1"); err != nil {
		c.Status = checkError
		c.Message = err.Error()
	}
	return c
}

// tableChecks verifies the amazon_products columns and row count.
func tableChecks(ctx context.Context, qr QueryRunner) []HealthCheck {
	columns := HealthCheck{Name: "Table", Group: "database", Status: checkPass}
	table, err := qr.Run(ctx, "SELECT * FROM "+sample.TableName+" LIMIT 0")
	if err != nil {
		columns.Status = checkError
		columns.Message = fmt.Sprintf("%s is not readable: %v", sample.TableName, err)
		return []HealthCheck{columns}
	}

	var missing []string
	for _, col := range sample.Columns {
		if !slices.Contains(table.Columns, col) {
			missing = append(missing, fmt.Sprintf("%q", col))
		}
	}
	if len(missing) > 0 {
		columns.Status = checkError
		columns.Message = fmt.Sprintf("%s is missing %s", sample.TableName, strings.Join(missing, ", "))
		return []HealthCheck{columns}
	}
	columns.Message = fmt.Sprintf("%s has all %d columns", sample.TableName, len(sample.Columns))

	rows := HealthCheck{Name: "Rows", Group: "database", Status: checkPass}
	count, err := qr.Run(ctx, "SELECT COUNT(*) FROM "+sample.TableName)
	switch {
	case err != nil:
		rows.Status = checkError
		rows.Message = err.Error()
	case count.RowCount == 0 || len(count.Rows[0]) == 0:
		rows.Status = checkError
		rows.Message = "row count query returned nothing"
	default:
		n := fmt.Sprint(count.Rows[0][0])
		rows.Message = n + " rows"
		if n == "0" {
			rows.Status = checkWarn
			rows.Message = sample.TableName + " is empty; every query will return no rows"
		}
	}
	return []HealthCheck{columns, rows}
}

func historyCheck(ctx context.Context, h *config.HistoryConfig) HealthCheck {
	c := HealthCheck{Name: "Run history", Group: "history", Status: checkPass}
	if h == nil || !h.Enabled {
		c.Status = checkWarn
		c.Message = "disabled (history.enabled: false)"
		return c
	}

	store, err := history.Open(ctx, h.Path, nil)
	if err != nil {
		c.Status = checkError
		c.Message = err.Error()
		return c
	}
	defer func() { _ = store.Close() }()

	version, err := store.Version(ctx)
	if err != nil {
		c.Status = checkError
		c.Message = err.Error()
		return c
	}
	c.Message = fmt.Sprintf("%s (schema v%d)", h.Path, version)
	return c
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) {
	styles := r.Styles()

	r.Println(styles.Header1.Render("salesdash health report"))
	r.Println(styles.Muted.Render("target: " + out.Target))
	r.Println()

	titleCaser := cases.Title(language.English)
	group := ""
	for _, c := range out.Checks {
		if c.Group != group {
			group = c.Group
			r.Println(styles.Bold.Render(titleCaser.String(group)))
		}

		icon := styles.Success.Render("✓")
		switch c.Status {
		case checkWarn:
			icon = styles.Warning.Render("!")
		case checkError:
			icon = styles.Error.Render("✗")
		}
		r.Printf("  %s %s: %s\n", icon, c.Name, c.Message)
	}
	r.Println()

	if out.Healthy {
		r.Println(styles.Success.Render("All checks passed"))
	} else {
		r.Println(styles.Error.Render("Some checks failed"))
	}
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) {
	r.Println(output.FormatHeader(1, "salesdash health report"))
	r.Println()
	r.Println(output.FormatKeyValue("Target", out.Target))
	r.Println()

	titleCaser := cases.Title(language.English)
	group := ""
	for _, c := range out.Checks {
		if c.Group != group {
			if group != "" {
				r.Println()
			}
			group = c.Group
			r.Println(output.FormatHeader(2, titleCaser.String(group)))
			r.Println()
		}
		r.Printf("- **[%s]** %s: %s\n", strings.ToUpper(c.Status), c.Name, c.Message)
	}
}
