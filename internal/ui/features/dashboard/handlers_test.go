package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/salesdash/internal/catalog"
	"github.com/leapstack-labs/salesdash/internal/history"
	"github.com/leapstack-labs/salesdash/internal/runner"
	"github.com/leapstack-labs/salesdash/internal/testutil"
	"github.com/leapstack-labs/salesdash/pkg/core"
)

// =============================================================================
// Test Setup Helpers
// =============================================================================

type fakeRunner struct {
	table *core.Table
	err   error
	calls []string
}

func (f *fakeRunner) Run(_ context.Context, sql string) (*core.Table, error) {
	f.calls = append(f.calls, sql)
	if f.err != nil {
		return nil, f.err
	}
	return f.table, nil
}

func setupTestHandlers(t *testing.T, fr *fakeRunner) *Handlers {
	t.Helper()
	store := sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
	return NewHandlers(fr, nil, store, testutil.NewTestLogger(t), false)
}

func postRun(t *testing.T, h *Handlers, signals Signals) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(signals)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/run", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.RunSSE(rec, req)
	return rec
}

func firstLabel(mode catalog.Mode) string {
	return catalog.For(mode).Queries[0].Label
}

// =============================================================================
// DashboardPage
// =============================================================================

func TestDashboardPage(t *testing.T) {
	h := setupTestHandlers(t, &fakeRunner{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.DashboardPage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	for _, want := range []string{
		"<!doctype html>",
		"Amazon Product",
		"Select a predefined query to execute",
		"Run Query",
		"Guvi Query",
		"My own Query",
		`id="label-select"`,
		`id="status"`,
		`id="results"`,
		"/static/style.css",
		"datastar.js",
	} {
		assert.Contains(t, body, want)
	}

	for _, label := range catalog.For(catalog.ModePrimary).Labels() {
		assert.Contains(t, body, label)
	}
	assert.NotContains(t, body, firstLabel(catalog.ModeSecondary))
	assert.NotContains(t, body, "/reload")
}

func TestDashboardPage_DevIncludesReload(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
	h := NewHandlers(&fakeRunner{}, nil, store, nil, true)

	rec := httptest.NewRecorder()
	h.DashboardPage(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Contains(t, rec.Body.String(), "/reload")
}

func TestDashboardPage_RemembersSelection(t *testing.T) {
	h := setupTestHandlers(t, &fakeRunner{})

	// Switching mode stores it in the session cookie.
	switchReq := httptest.NewRequest(http.MethodGet, "/api/queries?mode=secondary", nil)
	switchRec := httptest.NewRecorder()
	h.QueriesSSE(switchRec, switchReq)
	cookies := switchRec.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.DashboardPage(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, firstLabel(catalog.ModeSecondary))
	assert.NotContains(t, body, firstLabel(catalog.ModePrimary))
}

// =============================================================================
// QueriesSSE
// =============================================================================

func TestQueriesSSE(t *testing.T) {
	tests := []struct {
		name      string
		mode      string
		wantLabel string
		notLabel  string
	}{
		{"primary", "primary", firstLabel(catalog.ModePrimary), firstLabel(catalog.ModeSecondary)},
		{"secondary", "secondary", firstLabel(catalog.ModeSecondary), firstLabel(catalog.ModePrimary)},
		{"title", "My own Query", firstLabel(catalog.ModeSecondary), firstLabel(catalog.ModePrimary)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := setupTestHandlers(t, &fakeRunner{})

			req := httptest.NewRequest(http.MethodGet, "/api/queries?mode="+strings.ReplaceAll(tt.mode, " ", "+"), nil)
			rec := httptest.NewRecorder()
			h.QueriesSSE(rec, req)

			body := rec.Body.String()
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, body, "datastar-patch-elements")
			assert.Contains(t, body, "datastar-patch-signals")
			assert.Contains(t, body, `id="label-select"`)
			assert.Contains(t, body, tt.wantLabel)
			assert.NotContains(t, body, tt.notLabel)
		})
	}
}

func TestQueriesSSE_UnknownMode(t *testing.T) {
	h := setupTestHandlers(t, &fakeRunner{})

	req := httptest.NewRequest(http.MethodGet, "/api/queries?mode=tertiary", nil)
	rec := httptest.NewRecorder()
	h.QueriesSSE(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown mode")
}

// =============================================================================
// RunSSE
// =============================================================================

func TestRunSSE_Success(t *testing.T) {
	fr := &fakeRunner{table: &core.Table{
		Columns: []string{"Product Name", "total_revenue"},
		Rows: [][]any{
			{"Lamp", 1234.5},
			{"Desk", 98765.25},
		},
		RowCount: 2,
	}}
	h := setupTestHandlers(t, fr)
	label := firstLabel(catalog.ModePrimary)

	rec := postRun(t, h, Signals{Mode: "primary", Label: label})

	body := rec.Body.String()
	require.Len(t, fr.calls, 1)
	assert.Equal(t, catalog.For(catalog.ModePrimary).Queries[0].SQL, fr.calls[0])

	assert.Contains(t, body, "Running query...")
	assert.Contains(t, body, "Query executed successfully!")
	assert.Contains(t, body, "Results for: "+label)
	assert.Contains(t, body, "<th>Product Name</th>")
	assert.Contains(t, body, "1,234.50")
	assert.Contains(t, body, "98,765.25")
	assert.Contains(t, body, "2 rows")
	assert.Contains(t, body, "total_revenue by Product Name")
	assert.Contains(t, body, "width: 100.0%")
	assert.NotContains(t, body, "Chart not available")

	// Bars are ordered by descending value.
	assert.Less(t, strings.Index(body, `bar-label">Desk`), strings.Index(body, `bar-label">Lamp`))
}

func TestRunSSE_ChartWarning(t *testing.T) {
	fr := &fakeRunner{table: &core.Table{
		Columns:  []string{"Region"},
		Rows:     [][]any{{"West"}},
		RowCount: 1,
	}}
	h := setupTestHandlers(t, fr)

	rec := postRun(t, h, Signals{Mode: "primary", Label: firstLabel(catalog.ModePrimary)})

	body := rec.Body.String()
	assert.Contains(t, body, "Query executed successfully!")
	assert.Contains(t, body, "West")
	assert.Contains(t, body, "1 row")
	assert.Contains(t, body, "Chart not available: chart needs at least two columns")
}

func TestRunSSE_Errors(t *testing.T) {
	tests := []struct {
		name    string
		signals Signals
		err     error
		want    string
		runs    int
	}{
		{
			name:    "connection error",
			signals: Signals{Mode: "primary", Label: firstLabel(catalog.ModePrimary)},
			err:     &runner.ConnectionError{Target: "postgres://localhost:5432/sales", Err: errors.New("connection refused")},
			want:    "Error connecting to the database: connection refused",
			runs:    1,
		},
		{
			name:    "query error",
			signals: Signals{Mode: "secondary", Label: firstLabel(catalog.ModeSecondary)},
			err:     &runner.QueryExecutionError{Err: errors.New(`relation "amazon_products" does not exist`)},
			want:    "Error executing query: relation",
			runs:    1,
		},
		{
			name:    "label from the other catalog",
			signals: Signals{Mode: "primary", Label: firstLabel(catalog.ModeSecondary)},
			want:    "Unknown query: " + firstLabel(catalog.ModeSecondary),
		},
		{
			name:    "unknown mode",
			signals: Signals{Mode: "tertiary", Label: "1) x"},
			want:    "Unknown query mode: tertiary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fr := &fakeRunner{err: tt.err}
			h := setupTestHandlers(t, fr)

			rec := postRun(t, h, tt.signals)

			body := rec.Body.String()
			assert.Len(t, fr.calls, tt.runs)
			assert.Contains(t, body, "banner error")
			assert.Contains(t, body, tt.want)
			assert.NotContains(t, body, "Query executed successfully!")
			assert.NotContains(t, body, "<table>")
		})
	}
}

func TestRunSSE_BadSignals(t *testing.T) {
	h := setupTestHandlers(t, &fakeRunner{})

	req := httptest.NewRequest(http.MethodPost, "/api/run", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.RunSSE(rec, req)

	assert.Contains(t, rec.Body.String(), "Failed to read signals")
}

// =============================================================================
// CatalogJSON
// =============================================================================

func TestCatalogJSON(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantCount  int
	}{
		{"all", "", http.StatusOK, 20},
		{"primary", "?mode=primary", http.StatusOK, 10},
		{"secondary", "?mode=secondary", http.StatusOK, 10},
		{"invalid", "?mode=nope", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := setupTestHandlers(t, &fakeRunner{})

			rec := httptest.NewRecorder()
			h.CatalogJSON(rec, httptest.NewRequest(http.MethodGet, "/api/catalog"+tt.query, nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var entries []catalogEntry
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
			assert.Len(t, entries, tt.wantCount)
			for _, e := range entries {
				assert.NotEmpty(t, e.Label)
				assert.True(t, strings.HasPrefix(strings.TrimSpace(e.SQL), "SELECT"))
			}
		})
	}
}

// =============================================================================
// Helpers
// =============================================================================

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    string
		numeric bool
	}{
		{"nil", nil, "NULL", false},
		{"string", "West", "West", false},
		{"int64", int64(2023), "2023", true},
		{"float", 1234567.891, "1,234,567.89", true},
		{"small float", 0.5, "0.50", true},
		{"bool", true, "true", false},
		{"numeric string", "1234567.891", "1,234,567.89", true},
		{"negative numeric string", "-30.00", "-30.00", true},
		{"integer string", "2022", "2022", false},
		{"text with dot", "v1.2", "v1.2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatValue(tt.input)
			assert.Equal(t, tt.want, got.Text)
			assert.Equal(t, tt.numeric, got.Numeric)
		})
	}
}

func TestBuildResultView_NoRows(t *testing.T) {
	view := buildResultView("q", &core.Table{Columns: []string{"a", "b"}})

	assert.Equal(t, 0, view.RowCount)
	assert.Nil(t, view.Chart)
	assert.Equal(t, "Chart not available: no rows to chart", view.ChartWarning)
}

func TestBuildChartView_NegativeBars(t *testing.T) {
	view := buildResultView("q", &core.Table{
		Columns: []string{"City", "profit"},
		Rows:    [][]any{{"A", 50.0}, {"B", -100.0}},
	})

	require.NotNil(t, view.Chart)
	require.Len(t, view.Chart.Bars, 2)
	assert.Equal(t, "A", view.Chart.Bars[0].Category)
	assert.InDelta(t, 50.0, view.Chart.Bars[0].Width, 0.001)
	assert.True(t, view.Chart.Bars[1].Negative)
	assert.InDelta(t, 100.0, view.Chart.Bars[1].Width, 0.001)
	assert.Equal(t, "City: B\nprofit: -100", view.Chart.Bars[1].Tooltip)
}

// =============================================================================
// History
// =============================================================================

func setupHistoryHandlers(t *testing.T, fr *fakeRunner) (*Handlers, *history.Store) {
	t.Helper()
	hist, err := history.Open(context.Background(), ":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = hist.Close() })

	store := sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
	return NewHandlers(fr, hist, store, testutil.NewTestLogger(t), false), hist
}

func TestRunSSE_RecordsHistory(t *testing.T) {
	fr := &fakeRunner{table: &core.Table{Columns: []string{"a", "b"}, Rows: [][]any{{"x", 1.0}}, RowCount: 1}}
	h, hist := setupHistoryHandlers(t, fr)

	postRun(t, h, Signals{Mode: "secondary", Label: firstLabel(catalog.ModeSecondary)})

	entries, err := hist.Recent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "secondary", entries[0].Mode)
	assert.Equal(t, firstLabel(catalog.ModeSecondary), entries[0].Label)
	assert.Equal(t, history.StatusSuccess, entries[0].Status)
	assert.Equal(t, 1, entries[0].Rows)
}

func TestHistoryJSON(t *testing.T) {
	h, hist := setupHistoryHandlers(t, &fakeRunner{})
	ctx := context.Background()
	require.NoError(t, hist.Record(ctx, history.Entry{Mode: "primary", Label: "1) a", Status: history.StatusSuccess, Rows: 3}))
	require.NoError(t, hist.Record(ctx, history.Entry{Mode: "primary", Label: "2) b", Status: history.StatusQueryError, Error: "boom"}))

	rec := httptest.NewRecorder()
	h.HistoryJSON(rec, httptest.NewRequest(http.MethodGet, "/api/history?limit=1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var entries []historyEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "2) b", entries[0].Label)
	assert.Equal(t, "query_error", entries[0].Status)
	assert.Equal(t, "boom", entries[0].Error)
}

func TestHistoryJSON_NoStore(t *testing.T) {
	h := setupTestHandlers(t, &fakeRunner{})

	rec := httptest.NewRecorder()
	h.HistoryJSON(rec, httptest.NewRequest(http.MethodGet, "/api/history", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestHistoryJSON_BadLimit(t *testing.T) {
	h := setupTestHandlers(t, &fakeRunner{})

	for _, limit := range []string{"0", "-3", "ten"} {
		rec := httptest.NewRecorder()
		h.HistoryJSON(rec, httptest.NewRequest(http.MethodGet, "/api/history?limit="+limit, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, limit)
	}
}
