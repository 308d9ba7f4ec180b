package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/salesdash/internal/cli/output"
	intconfig "github.com/leapstack-labs/salesdash/internal/config"
	"github.com/leapstack-labs/salesdash/internal/sample"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Target   string
	Database string
	Host     string
	User     string
	Sample   bool
	Force    bool
}

// scaffoldConfig is the salesdash.yaml written by init.
type scaffoldConfig struct {
	Target  scaffoldTarget  `yaml:"target"`
	Output  string          `yaml:"output"`
	UI      scaffoldUI      `yaml:"ui"`
	History scaffoldHistory `yaml:"history"`
}

type scaffoldTarget struct {
	Type     string            `yaml:"type"`
	Database string            `yaml:"database"`
	Host     string            `yaml:"host,omitempty"`
	Port     int               `yaml:"port,omitempty"`
	User     string            `yaml:"user,omitempty"`
	Password string            `yaml:"password,omitempty"`
	Options  map[string]string `yaml:"options,omitempty"`
}

type scaffoldUI struct {
	Port     int  `yaml:"port"`
	AutoOpen bool `yaml:"auto_open"`
}

type scaffoldHistory struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// initOutput is the JSON result of init.
type initOutput struct {
	Config     string `json:"config"`
	Database   string `json:"database,omitempty"`
	SampleRows int    `json:"sample_rows,omitempty"`
}

const scaffoldHeader = `# salesdash configuration
# Values may reference environment variables as ${NAME}.
`

// passwordEnvRef keeps the postgres password out of the generated file.
const passwordEnvRef = "${SALESDASH_PG_PASSWORD}"

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	opts := &InitOptions{}

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a salesdash.yaml for a target database",
		Long: `Create a salesdash.yaml configuration file.

With --sample a DuckDB file holding a demo amazon_products table is created
next to the config, so every predefined query can be tried right away.
Postgres passwords are never written; the file references
${SALESDASH_PG_PASSWORD} instead.`,
		Example: `  # Try salesdash on demo data
  salesdash init --sample

  # Point at a Postgres server
  salesdash init --target postgres --host db.internal --database sales --user analyst`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			// Config is not loaded for init, so read --output directly.
			format, _ := cmd.Flags().GetString("output")
			mode, err := output.ParseMode(format)
			if err != nil {
				return err
			}
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)
			return runInit(cmd.Context(), r, dir, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Target, "target", "duckdb", "Target type: duckdb or postgres")
	cmd.Flags().StringVar(&opts.Database, "database", "", "Database name, or DuckDB file path (default: sales.duckdb / postgres)")
	cmd.Flags().StringVar(&opts.Host, "host", "localhost", "Postgres host")
	cmd.Flags().StringVar(&opts.User, "user", "postgres", "Postgres user")
	cmd.Flags().BoolVar(&opts.Sample, "sample", false, "Create a DuckDB file with demo data (duckdb only)")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite an existing salesdash.yaml")
	_ = cmd.RegisterFlagCompletionFunc("target", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"duckdb", "postgres"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runInit(ctx context.Context, r *output.Renderer, dir string, opts *InitOptions) error {
	cfg, err := buildScaffold(opts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	configPath := filepath.Join(dir, intconfig.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !opts.Force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
	}

	data, err := renderScaffold(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	result := initOutput{Config: configPath}
	if opts.Sample {
		dbPath := cfg.Target.Database
		if !filepath.IsAbs(dbPath) {
			dbPath = filepath.Join(dir, dbPath)
		}
		n, err := sample.CreateDuckDB(ctx, dbPath)
		if err != nil {
			return fmt.Errorf("failed to create sample database: %w", err)
		}
		result.Database = dbPath
		result.SampleRows = n
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(result)
	}

	r.Success("Created " + result.Config)
	if result.Database != "" {
		r.Success(fmt.Sprintf("Created %s with %s", result.Database, output.Plural(result.SampleRows, "sample row", "sample rows")))
	}
	r.Println()
	r.Println("Next steps:")
	if cfg.Target.Type == "postgres" {
		r.Println("  export SALESDASH_PG_PASSWORD=...   Provide the database password")
	}
	r.Println("  salesdash doctor                   Check the connection and the amazon_products table")
	r.Println("  salesdash list                     See the predefined queries")
	r.Println("  salesdash serve                    Open the dashboard")
	return nil
}

// buildScaffold turns the init flags into a config file.
func buildScaffold(opts *InitOptions) (*scaffoldConfig, error) {
	cfg := &scaffoldConfig{
		Output:  intconfig.DefaultOutput,
		UI:      scaffoldUI{Port: intconfig.DefaultUIPort, AutoOpen: true},
		History: scaffoldHistory{Enabled: true, Path: intconfig.DefaultHistoryPath},
	}

	switch opts.Target {
	case "duckdb":
		cfg.Target = scaffoldTarget{Type: "duckdb", Database: opts.Database}
		if cfg.Target.Database == "" {
			cfg.Target.Database = "sales.duckdb"
		}
	case "postgres":
		if opts.Sample {
			return nil, fmt.Errorf("--sample is only supported with --target duckdb")
		}
		cfg.Target = scaffoldTarget{
			Type:     "postgres",
			Database: opts.Database,
			Host:     opts.Host,
			Port:     intconfig.DefaultPostgresPort,
			User:     opts.User,
			Password: passwordEnvRef,
			Options:  map[string]string{"sslmode": "prefer"},
		}
		if cfg.Target.Database == "" {
			cfg.Target.Database = "postgres"
		}
	default:
		return nil, fmt.Errorf("unsupported target %q (expected duckdb or postgres)", opts.Target)
	}
	return cfg, nil
}

func renderScaffold(cfg *scaffoldConfig) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(scaffoldHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}
