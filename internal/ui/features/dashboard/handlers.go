package dashboard

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/salesdash/internal/catalog"
	"github.com/leapstack-labs/salesdash/internal/history"
	"github.com/leapstack-labs/salesdash/pkg/core"
	"github.com/starfederation/datastar-go/datastar"
)

const (
	sessionName     = "salesdash"
	sessionModeKey  = "mode"
	sessionLabelKey = "label"
)

// Handlers provides HTTP handlers for the dashboard.
type Handlers struct {
	runner       QueryRunner
	history      *history.Store
	sessionStore sessions.Store
	logger       *slog.Logger
	isDev        bool
}

// NewHandlers creates a new Handlers instance. hist may be nil.
func NewHandlers(runner QueryRunner, hist *history.Store, sessionStore sessions.Store, logger *slog.Logger, isDev bool) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		runner:       runner,
		history:      hist,
		sessionStore: sessionStore,
		logger:       logger,
		isDev:        isDev,
	}
}

// DashboardPage renders the dashboard with the last selection from the session.
func (h *Handlers) DashboardPage(w http.ResponseWriter, r *http.Request) {
	mode, label := h.selection(r)

	page := PageData{
		Mode:   mode,
		Label:  label,
		Labels: catalog.For(mode).Labels(),
		IsDev:  h.isDev,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := Page(page).Render(w); err != nil {
		h.logger.Error("failed to render dashboard", "error", err)
	}
}

// QueriesSSE swaps the dropdown to the labels of the requested mode.
func (h *Handlers) QueriesSSE(w http.ResponseWriter, r *http.Request) {
	mode, err := catalog.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cat := catalog.For(mode)
	label := cat.Queries[0].Label
	h.saveSelection(w, r, mode, label)

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(component(LabelSelect(cat.Labels(), label))); err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.MarshalAndPatchSignals(Signals{Mode: string(mode), Label: label}); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// RunSSE runs the selected query and patches the status and results panels.
func (h *Handlers) RunSSE(w http.ResponseWriter, r *http.Request) {
	// Read signals BEFORE creating SSE (SSE consumes the request body)
	var signals Signals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.PatchElementTempl(component(Status(StatusError, "Failed to read signals: "+err.Error())))
		return
	}

	mode, err := catalog.ParseMode(signals.Mode)
	if err != nil {
		h.patchError(datastar.NewSSE(w, r), err)
		return
	}
	query, err := catalog.For(mode).Lookup(signals.Label)
	if err != nil {
		h.patchError(datastar.NewSSE(w, r), err)
		return
	}

	h.saveSelection(w, r, mode, query.Label)
	sse := datastar.NewSSE(w, r)

	_ = sse.PatchElementTempl(component(Status(StatusRunning, "Running query...")))
	_ = sse.PatchElementTempl(component(Results(nil)))

	entry := history.Entry{Mode: string(mode), Label: query.Label, Target: targetOf(h.runner)}
	table, err := h.history.Track(r.Context(), entry, func(ctx context.Context) (*core.Table, error) {
		return h.runner.Run(ctx, query.SQL)
	})
	if err != nil {
		h.logger.Error("query failed", "label", query.Label, "error", err)
		h.patchError(sse, err)
		return
	}

	view := buildResultView(query.Label, table)
	if err := sse.PatchElementTempl(component(Status(StatusSuccess, "Query executed successfully!"))); err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.PatchElementTempl(component(Results(&view))); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// CatalogJSON lists the queries of one mode, or of both when mode is empty.
func (h *Handlers) CatalogJSON(w http.ResponseWriter, r *http.Request) {
	modes := catalog.Modes()
	if raw := r.URL.Query().Get("mode"); raw != "" {
		mode, err := catalog.ParseMode(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		modes = []catalog.Mode{mode}
	}

	entries := make([]catalogEntry, 0)
	for _, mode := range modes {
		for _, q := range catalog.For(mode).Queries {
			entries = append(entries, catalogEntry{Mode: mode, Label: q.Label, SQL: q.SQL})
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		h.logger.Error("failed to encode catalog", "error", err)
	}
}

// HistoryJSON lists recent runs, newest first. ?limit caps the count.
func (h *Handlers) HistoryJSON(w http.ResponseWriter, r *http.Request) {
	limit := history.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list runs", "error", err)
		http.Error(w, "failed to list runs", http.StatusInternalServerError)
		return
	}

	out := make([]historyEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyEntry{
			Mode:       e.Mode,
			Label:      e.Label,
			Status:     string(e.Status),
			Rows:       e.Rows,
			DurationMS: e.Duration.Milliseconds(),
			Error:      e.Error,
			StartedAt:  e.StartedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		h.logger.Error("failed to encode history", "error", err)
	}
}

func (h *Handlers) patchError(sse *datastar.ServerSentEventGenerator, err error) {
	_ = sse.PatchElementTempl(component(Status(StatusError, errorMessage(err))))
	_ = sse.PatchElementTempl(component(Results(nil)))
}

// targetOf returns the runner's target description when it has one.
func targetOf(runner QueryRunner) string {
	if t, ok := runner.(interface{ Target() string }); ok {
		return t.Target()
	}
	return ""
}

// selection returns the mode and label remembered in the session, falling
// back to the first primary query.
func (h *Handlers) selection(r *http.Request) (catalog.Mode, string) {
	mode := catalog.ModePrimary
	var label string

	if session, err := h.sessionStore.Get(r, sessionName); err == nil {
		if raw, ok := session.Values[sessionModeKey].(string); ok {
			if m, err := catalog.ParseMode(raw); err == nil {
				mode = m
			}
		}
		label, _ = session.Values[sessionLabelKey].(string)
	}

	cat := catalog.For(mode)
	if _, err := cat.Lookup(label); err != nil {
		label = cat.Queries[0].Label
	}
	return mode, label
}

// saveSelection stores the selection. It must run before any SSE output
// because the cookie goes out in the response headers.
func (h *Handlers) saveSelection(w http.ResponseWriter, r *http.Request, mode catalog.Mode, label string) {
	session, _ := h.sessionStore.Get(r, sessionName)
	if session == nil {
		return
	}
	session.Values[sessionModeKey] = string(mode)
	session.Values[sessionLabelKey] = label
	if err := session.Save(r, w); err != nil {
		h.logger.Warn("failed to save session", "error", err)
	}
}
