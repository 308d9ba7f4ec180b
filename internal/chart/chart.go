// Package chart turns a query result into a bar chart.
//
// The first column is the category axis and the second column the value
// axis. Inference is positional: catalog queries always select the
// (category, measure) pair first.
package chart

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/leapstack-labs/salesdash/pkg/core"
)

// Detail is one (column, display value) pair shown on hover.
type Detail struct {
	Name  string
	Value string
}

// Bar is a single category and its value.
type Bar struct {
	Category string
	Value    float64
	Details  []Detail
}

// BarChart is a chart built from a result table.
type BarChart struct {
	CategoryAxis string
	ValueAxis    string
	Bars         []Bar
	// Skipped counts rows whose value was NULL.
	Skipped int
}

// Build builds a bar chart from t, sorted by descending value.
func Build(t *core.Table) (*BarChart, error) {
	if t.NumColumns() < 2 {
		return nil, &RenderError{Kind: TooFewColumns}
	}

	bc := &BarChart{
		CategoryAxis: t.Columns[0],
		ValueAxis:    t.Columns[1],
		Bars:         make([]Bar, 0, len(t.Rows)),
	}

	for r := range t.Rows {
		record := t.Record(r)
		value, ok, err := toFloat(record[1].Value)
		if err != nil {
			return nil, &RenderError{
				Kind:   NonNumericValue,
				Column: bc.ValueAxis,
				Row:    r + 1,
				Value:  core.FormatCell(record[1].Value),
			}
		}
		if !ok {
			bc.Skipped++
			continue
		}

		details := make([]Detail, len(record))
		for i, f := range record {
			details[i] = Detail{Name: f.Name, Value: core.FormatCell(f.Value)}
		}
		bc.Bars = append(bc.Bars, Bar{
			Category: core.FormatCell(record[0].Value),
			Value:    value,
			Details:  details,
		})
	}

	sort.SliceStable(bc.Bars, func(i, j int) bool {
		return bc.Bars[i].Value > bc.Bars[j].Value
	})
	return bc, nil
}

// Categories returns the category of every bar in display order.
func (bc *BarChart) Categories() []string {
	out := make([]string, len(bc.Bars))
	for i, b := range bc.Bars {
		out[i] = b.Category
	}
	return out
}

// Max returns the largest absolute bar value, or 0 for an empty chart.
func (bc *BarChart) Max() float64 {
	var m float64
	for _, b := range bc.Bars {
		m = math.Max(m, math.Abs(b.Value))
	}
	return m
}

// toFloat converts a cell to a float. ok is false for NULL.
func toFloat(v any) (value float64, ok bool, err error) {
	switch val := v.(type) {
	case nil:
		return 0, false, nil
	case int64:
		return float64(val), true, nil
	case int:
		return float64(val), true, nil
	case int32:
		return float64(val), true, nil
	case float64:
		if math.IsNaN(val) {
			return 0, false, nil
		}
		return val, true, nil
	case float32:
		return float64(val), true, nil
	case []byte:
		return parseNumber(string(val))
	case string:
		return parseNumber(val)
	default:
		return 0, false, strconv.ErrSyntax
	}
}

func parseNumber(s string) (float64, bool, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false, err
	}
	return f, true, nil
}
