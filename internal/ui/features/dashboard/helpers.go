package dashboard

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/leapstack-labs/salesdash/internal/catalog"
	"github.com/leapstack-labs/salesdash/internal/chart"
	"github.com/leapstack-labs/salesdash/internal/runner"
	"github.com/leapstack-labs/salesdash/pkg/core"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// formatValue formats a cell for display. Floats and decimal strings (NUMERIC
// from postgres) get two decimals and thousands separators; integers are left
// alone so years stay readable.
func formatValue(v any) Cell {
	switch val := v.(type) {
	case float64:
		return Cell{Text: printer.Sprintf("%.2f", val), Numeric: true}
	case int64:
		return Cell{Text: core.FormatCell(val), Numeric: true}
	case string:
		if f, ok := core.ParseDecimal(val); ok {
			return Cell{Text: printer.Sprintf("%.2f", f), Numeric: true}
		}
		return Cell{Text: val}
	default:
		return Cell{Text: core.FormatCell(val)}
	}
}

// buildResultView formats t for the results panel. A chart that cannot be
// drawn becomes a warning; the table is always shown.
func buildResultView(label string, t *core.Table) ResultView {
	view := ResultView{
		Label:    label,
		Columns:  t.Columns,
		Rows:     make([][]Cell, len(t.Rows)),
		RowCount: len(t.Rows),
	}
	for i, row := range t.Rows {
		cells := make([]Cell, len(row))
		for j, v := range row {
			cells[j] = formatValue(v)
		}
		view.Rows[i] = cells
	}

	bc, err := chart.Build(t)
	if err != nil {
		view.ChartWarning = "Chart not available: " + err.Error()
		return view
	}
	if len(bc.Bars) == 0 {
		view.ChartWarning = "Chart not available: no rows to chart"
		return view
	}
	view.Chart = buildChartView(bc)
	return view
}

func buildChartView(bc *chart.BarChart) *ChartView {
	peak := bc.Max()
	cv := &ChartView{
		Title: fmt.Sprintf("%s by %s", bc.ValueAxis, bc.CategoryAxis),
		Bars:  make([]BarView, len(bc.Bars)),
	}
	for i, b := range bc.Bars {
		width := 0.0
		if peak > 0 {
			width = math.Abs(b.Value) / peak * 100
		}
		lines := make([]string, len(b.Details))
		for j, d := range b.Details {
			lines[j] = d.Name + ": " + d.Value
		}
		cv.Bars[i] = BarView{
			Category: b.Category,
			Value:    printer.Sprintf("%.2f", b.Value),
			Width:    width,
			Negative: b.Value < 0,
			Tooltip:  strings.Join(lines, "\n"),
		}
	}
	return cv
}

// errorMessage turns a run error into the text shown in the error panel.
func errorMessage(err error) string {
	var connErr *runner.ConnectionError
	if errors.As(err, &connErr) {
		return "Error connecting to the database: " + fmt.Sprint(connErr.Err)
	}
	var queryErr *runner.QueryExecutionError
	if errors.As(err, &queryErr) {
		return "Error executing query: " + fmt.Sprint(queryErr.Err)
	}
	var labelErr *catalog.LabelNotFoundError
	if errors.As(err, &labelErr) {
		return "Unknown query: " + labelErr.Label
	}
	var modeErr *catalog.UnknownModeError
	if errors.As(err, &modeErr) {
		return "Unknown query mode: " + modeErr.Value
	}
	return "Error executing query: " + err.Error()
}
