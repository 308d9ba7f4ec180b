package core

// Table is a fully materialized query result.
// Rows are stored row-major; every row has len(Columns) cells.
type Table struct {
	Columns  []string
	Rows     [][]any
	RowCount int
}

// NumColumns returns the number of columns in the table.
func (t *Table) NumColumns() int {
	if t == nil {
		return 0
	}
	return len(t.Columns)
}

// Column returns the values of column i in row order.
// It returns nil if i is out of range.
func (t *Table) Column(i int) []any {
	if t == nil || i < 0 || i >= len(t.Columns) {
		return nil
	}
	values := make([]any, len(t.Rows))
	for r, row := range t.Rows {
		if i < len(row) {
			values[r] = row[i]
		}
	}
	return values
}

// Record returns row r as (column, value) pairs in column order.
func (t *Table) Record(r int) []Field {
	if t == nil || r < 0 || r >= len(t.Rows) {
		return nil
	}
	row := t.Rows[r]
	fields := make([]Field, len(t.Columns))
	for i, name := range t.Columns {
		var v any
		if i < len(row) {
			v = row[i]
		}
		fields[i] = Field{Name: name, Value: v}
	}
	return fields
}

// Field is a single named cell of a row.
type Field struct {
	Name  string
	Value any
}
