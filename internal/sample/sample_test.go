package sample

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/salesdash/internal/catalog"
)

func TestRows(t *testing.T) {
	rows, err := Rows()
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	for _, row := range rows {
		require.Len(t, row, len(Columns))
		assert.IsType(t, "", row[0])
		assert.IsType(t, float64(0), row[7])
		assert.IsType(t, int64(0), row[10])
	}
}

func TestParseRecord_Errors(t *testing.T) {
	_, err := parseRecord([]string{"too", "short"})
	assert.ErrorContains(t, err, "expected 11 fields")

	rec := []string{"a", "b", "c", "d", "e", "f", "2023-01-01", "x", "1", "0", "1"}
	_, err = parseRecord(rec)
	assert.ErrorContains(t, err, "List Price")
}

func TestCreateDuckDB_RunsEveryQuery(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "demo", "sales.duckdb")

	n, err := CreateDuckDB(ctx, path)
	require.NoError(t, err)

	want, err := Rows()
	require.NoError(t, err)
	assert.Equal(t, len(want), n)

	db, err := sql.Open("duckdb", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+TableName).Scan(&count))
	assert.Equal(t, n, count)

	for _, q := range catalog.All() {
		rows, err := db.QueryContext(ctx, q.SQL)
		require.NoError(t, err, q.Label)
		assert.True(t, rows.Next(), "%s returned no rows", q.Label)
		require.NoError(t, rows.Close())
	}
}

func TestCreateDuckDB_Replaces(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sales.duckdb")

	first, err := CreateDuckDB(ctx, path)
	require.NoError(t, err)
	second, err := CreateDuckDB(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
