// Package sample ships a small amazon_products dataset so the dashboard can
// be tried without a production database.
package sample

import (
	"bytes"
	"context"
	"database/sql"
	_ "embed"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// TableName is the table every catalog query reads.
const TableName = "amazon_products"

// CreateTableSQL creates an empty amazon_products table.
const CreateTableSQL = `
CREATE TABLE amazon_products (
    "Product Id" VARCHAR,
    "Category" VARCHAR,
    "City" VARCHAR,
    "Region" VARCHAR,
    "Segment" VARCHAR,
    "Ship Mode" VARCHAR,
    "Order Date" VARCHAR,
    "List Price" DOUBLE PRECISION,
    "cost price" DOUBLE PRECISION,
    "Discount Percent" DOUBLE PRECISION,
    "Quantity" INTEGER
)`

const insertSQL = `INSERT INTO amazon_products VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

// Columns lists the amazon_products columns in table order.
var Columns = []string{
	"Product Id", "Category", "City", "Region", "Segment", "Ship Mode",
	"Order Date", "List Price", "cost price", "Discount Percent", "Quantity",
}

//go:embed amazon_products.csv
var productsCSV []byte

// Rows returns the sample rows with numeric columns typed.
func Rows() ([][]any, error) {
	records, err := csv.NewReader(bytes.NewReader(productsCSV)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read sample data: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	rows := make([][]any, 0, len(records)-1)
	for i, rec := range records[1:] {
		row, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("sample row %d: %w", i+1, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRecord(rec []string) ([]any, error) {
	if len(rec) != len(Columns) {
		return nil, fmt.Errorf("expected %d fields, got %d", len(Columns), len(rec))
	}
	row := make([]any, len(rec))
	for i, v := range rec[:7] {
		row[i] = v
	}
	for i := 7; i < 10; i++ {
		f, err := strconv.ParseFloat(rec[i], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", Columns[i], err)
		}
		row[i] = f
	}
	q, err := strconv.ParseInt(rec[10], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", Columns[10], err)
	}
	row[10] = q
	return row, nil
}

// Load replaces amazon_products in db with the sample rows and returns how
// many rows were written.
func Load(ctx context.Context, db *sql.DB) (int, error) {
	rows, err := Rows()
	if err != nil {
		return 0, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{"DROP TABLE IF EXISTS " + TableName, CreateTableSQL} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return 0, fmt.Errorf("failed to create %s: %w", TableName, err)
		}
	}

	insert, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = insert.Close() }()

	for _, row := range rows {
		if _, err := insert.ExecContext(ctx, row...); err != nil {
			return 0, fmt.Errorf("failed to insert sample row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit sample data: %w", err)
	}
	return len(rows), nil
}

// CreateDuckDB writes the sample dataset to a DuckDB file at path.
func CreateDuckDB(ctx context.Context, path string) (int, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return 0, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = db.Close() }()

	return Load(ctx, db)
}
