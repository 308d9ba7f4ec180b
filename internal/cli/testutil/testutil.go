// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"database/sql"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/salesdash/internal/cli/output"
	"github.com/leapstack-labs/salesdash/internal/sample"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

const insertProducts = `
INSERT INTO amazon_products VALUES
    ('FUR-10000', 'Furniture', 'Henderson', 'South', 'Consumer', 'Second Class', '2022-03-01', 260, 220, 2, 2),
    ('OFF-20000', 'Office Supplies', 'Los Angeles', 'West', 'Corporate', 'Standard Class', '2022-06-12', 15, 10, 0, 7),
    ('TEC-30000', 'Technology', 'New York City', 'East', 'Home Office', 'First Class', '2023-01-21', 900, 700, 5, 1),
    ('TEC-30001', 'Technology', 'Seattle', 'West', 'Consumer', 'Same Day', '2023-11-02', 120, 90, 3, 4),
    ('OFF-20001', 'Office Supplies', 'Henderson', 'South', 'Corporate', 'Standard Class', '2023-11-15', 40, 0, 4, 3)`

// SetupSalesDB creates a DuckDB file holding a small amazon_products table
// and returns its path.
func SetupSalesDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sales.duckdb")
	db, err := sql.Open("duckdb", path)
	if err != nil {
		t.Fatalf("failed to open duckdb: %v", err)
	}
	defer func() { _ = db.Close() }()

	for _, stmt := range []string{sample.CreateTableSQL, insertProducts} {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to seed amazon_products: %v", err)
		}
	}
	return path
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and basic structure.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	fenceCount := strings.Count(md, "```")
	if fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}

	for i, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
