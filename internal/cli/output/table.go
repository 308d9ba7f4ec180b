package output

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/leapstack-labs/salesdash/pkg/core"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberPrinter = message.NewPrinter(language.English)

// Table renders a query result in the effective mode.
func (r *Renderer) Table(t *core.Table) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.JSON(tableRecords(t))
	case ModeCSV:
		return r.tableCSV(t)
	case ModeMarkdown:
		r.tableMarkdown(t)
		return nil
	default:
		r.tableText(t)
		return nil
	}
}

func (r *Renderer) tableText(t *core.Table) {
	if t.RowCount == 0 {
		r.Println("(0 rows)")
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(r.out)
	tw.SetStyle(table.StyleLight)
	// Column names are shown as the query returned them.
	tw.Style().Format.Header = text.FormatDefault

	header := make(table.Row, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col
	}
	tw.AppendHeader(header)

	for _, row := range t.Rows {
		out := make(table.Row, len(row))
		for i, v := range row {
			out[i] = DisplayCell(v)
		}
		tw.AppendRow(out)
	}

	tw.Render()
	r.Printf("(%s)\n", Plural(t.RowCount, "row", "rows"))
}

func (r *Renderer) tableMarkdown(t *core.Table) {
	if t.RowCount == 0 {
		r.Println("(0 rows)")
		return
	}

	cols := make([]string, len(t.Columns))
	seps := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		cols[i] = escapeMarkdownCell(col)
		seps[i] = "---"
	}
	r.Printf("| %s |\n", strings.Join(cols, " | "))
	r.Printf("| %s |\n", strings.Join(seps, " | "))

	for _, row := range t.Rows {
		values := make([]string, len(row))
		for i, v := range row {
			values[i] = escapeMarkdownCell(core.FormatCell(v))
		}
		r.Printf("| %s |\n", strings.Join(values, " | "))
	}
}

func (r *Renderer) tableCSV(t *core.Table) error {
	w := csv.NewWriter(r.out)
	if err := w.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		values := make([]string, len(row))
		for i, v := range row {
			if v == nil {
				continue
			}
			values[i] = core.FormatCell(v)
		}
		if err := w.Write(values); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// tableRecords converts rows into column-keyed objects.
func tableRecords(t *core.Table) []map[string]any {
	records := make([]map[string]any, 0, len(t.Rows))
	for r := range t.Rows {
		rec := make(map[string]any, len(t.Columns))
		for _, f := range t.Record(r) {
			rec[f.Name] = f.Value
		}
		records = append(records, rec)
	}
	return records
}

// DisplayCell formats a cell for people: floats and decimal strings get two
// decimals and thousands separators, everything else uses core.FormatCell.
func DisplayCell(v any) string {
	switch val := v.(type) {
	case float64:
		return numberPrinter.Sprintf("%.2f", val)
	case string:
		if f, ok := core.ParseDecimal(val); ok {
			return numberPrinter.Sprintf("%.2f", f)
		}
	}
	return core.FormatCell(v)
}

// FormatCount returns n with thousands separators.
func FormatCount(n int) string {
	return numberPrinter.Sprintf("%d", n)
}

// Plural returns "1 row" / "3 rows" style counts.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", singular)
	}
	return fmt.Sprintf("%s %s", FormatCount(n), plural)
}
