package commands

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/salesdash/internal/cli/config"
	"github.com/leapstack-labs/salesdash/internal/cli/output"
	"github.com/leapstack-labs/salesdash/internal/cli/testutil"
)

func TestNewInitCommand(t *testing.T) {
	cmd := NewInitCommand()

	assert.Equal(t, "init [directory]", cmd.Use)
	for _, flag := range []string{"target", "database", "host", "user", "sample", "force"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
	assert.Equal(t, "duckdb", cmd.Flags().Lookup("target").DefValue)
}

func TestRunInit_DuckDBWithSample(t *testing.T) {
	dir := t.TempDir()
	tr := testutil.NewTestRenderer(output.ModeMarkdown, false)

	require.NoError(t, runInit(context.Background(), tr.Renderer, dir, &InitOptions{Target: "duckdb", Sample: true}))

	configPath := filepath.Join(dir, "salesdash.yaml")
	assert.FileExists(t, configPath)
	assert.FileExists(t, filepath.Join(dir, "sales.duckdb"))
	assert.Contains(t, tr.Output(), "Created "+configPath)
	assert.Contains(t, tr.Output(), "sample rows")

	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	cfg, err := config.LoadConfig(configPath, nil)
	require.NoError(t, err)
	assert.Equal(t, "duckdb", cfg.Target.Type)
	assert.Equal(t, "sales.duckdb", cfg.Target.Database)
	assert.True(t, cfg.GetHistoryConfig().Enabled)
}

func TestRunInit_PostgresKeepsPasswordOutOfFile(t *testing.T) {
	dir := t.TempDir()
	tr := testutil.NewTestRenderer(output.ModeMarkdown, false)

	opts := &InitOptions{Target: "postgres", Database: "sales", Host: "db.internal", User: "analyst"}
	require.NoError(t, runInit(context.Background(), tr.Renderer, dir, opts))

	data, err := os.ReadFile(filepath.Join(dir, "salesdash.yaml"))
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "# salesdash configuration")
	assert.Contains(t, content, "type: postgres")
	assert.Contains(t, content, "host: db.internal")
	assert.Contains(t, content, "password: ${SALESDASH_PG_PASSWORD}")
	assert.Contains(t, content, "sslmode: prefer")
	assert.Contains(t, tr.Output(), "export SALESDASH_PG_PASSWORD")
}

func TestRunInit_JSON(t *testing.T) {
	dir := t.TempDir()
	tr := testutil.NewTestRenderer(output.ModeJSON, false)

	require.NoError(t, runInit(context.Background(), tr.Renderer, dir, &InitOptions{Target: "duckdb", Sample: true, Database: "data/demo.duckdb"}))

	var result initOutput
	require.NoError(t, json.Unmarshal(tr.Out.Bytes(), &result))
	assert.Equal(t, filepath.Join(dir, "salesdash.yaml"), result.Config)
	assert.Equal(t, filepath.Join(dir, "data", "demo.duckdb"), result.Database)
	assert.Positive(t, result.SampleRows)
}

func TestRunInit_Errors(t *testing.T) {
	tests := []struct {
		name      string
		opts      InitOptions
		existing  bool
		errSubstr string
	}{
		{name: "unknown target", opts: InitOptions{Target: "mysql"}, errSubstr: "unsupported target"},
		{name: "sample needs duckdb", opts: InitOptions{Target: "postgres", Sample: true}, errSubstr: "--sample is only supported"},
		{name: "existing config", opts: InitOptions{Target: "duckdb"}, existing: true, errSubstr: "already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.existing {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "salesdash.yaml"), []byte("target: {}\n"), 0o600))
			}
			tr := testutil.NewTestRenderer(output.ModeMarkdown, false)

			err := runInit(context.Background(), tr.Renderer, dir, &tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestRunInit_ForceOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "salesdash.yaml")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o600))
	tr := testutil.NewTestRenderer(output.ModeMarkdown, false)

	require.NoError(t, runInit(context.Background(), tr.Renderer, dir, &InitOptions{Target: "duckdb", Force: true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "type: duckdb")
}
