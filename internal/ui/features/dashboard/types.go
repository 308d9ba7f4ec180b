package dashboard

import (
	"context"
	"time"

	"github.com/leapstack-labs/salesdash/internal/catalog"
	"github.com/leapstack-labs/salesdash/pkg/core"
)

// QueryRunner executes one SQL statement and returns the full result.
type QueryRunner interface {
	Run(ctx context.Context, sql string) (*core.Table, error)
}

// Signals is the client state posted by the dashboard.
type Signals struct {
	Mode  string `json:"mode"`
	Label string `json:"label"`
}

// PageData holds everything the dashboard page needs on first render.
type PageData struct {
	Mode   catalog.Mode
	Label  string
	Labels []string
	IsDev  bool
}

// StatusKind styles the status banner.
type StatusKind string

// Status kinds.
const (
	StatusNone    StatusKind = ""
	StatusRunning StatusKind = "running"
	StatusSuccess StatusKind = "success"
	StatusWarning StatusKind = "warning"
	StatusError   StatusKind = "error"
)

// Cell is a formatted table cell.
type Cell struct {
	Text    string
	Numeric bool
}

// ResultView is a rendered query result.
type ResultView struct {
	Label        string
	Columns      []string
	Rows         [][]Cell
	RowCount     int
	Chart        *ChartView
	ChartWarning string
}

// ChartView is a bar chart laid out for HTML.
type ChartView struct {
	Title string
	Bars  []BarView
}

// BarView is one horizontal bar. Width is a percentage of the widest bar.
type BarView struct {
	Category string
	Value    string
	Width    float64
	Negative bool
	Tooltip  string
}

// catalogEntry is one query in the JSON catalog listing.
type catalogEntry struct {
	Mode  catalog.Mode `json:"mode"`
	Label string       `json:"label"`
	SQL   string       `json:"sql"`
}

// historyEntry is the JSON shape of one recorded run.
type historyEntry struct {
	Mode       string    `json:"mode"`
	Label      string    `json:"label"`
	Status     string    `json:"status"`
	Rows       int       `json:"rows"`
	DurationMS int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
}
