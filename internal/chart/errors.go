package chart

import "fmt"

// ErrorKind classifies why a result cannot be charted.
type ErrorKind int

// Render error kinds.
const (
	TooFewColumns ErrorKind = iota + 1
	NonNumericValue
	NoData
)

func (k ErrorKind) String() string {
	switch k {
	case TooFewColumns:
		return "too few columns"
	case NonNumericValue:
		return "non-numeric value"
	case NoData:
		return "no data"
	default:
		return "unknown"
	}
}

// RenderError reports a result shape that cannot be charted. It is a
// warning: the table is still displayed.
type RenderError struct {
	Kind   ErrorKind
	Column string
	Row    int
	Value  string
}

func (e *RenderError) Error() string {
	switch e.Kind {
	case TooFewColumns:
		return "chart needs at least two columns"
	case NonNumericValue:
		return fmt.Sprintf("column %q is not numeric (row %d: %q)", e.Column, e.Row, e.Value)
	case NoData:
		return "no rows to chart"
	default:
		return "cannot render chart"
	}
}
