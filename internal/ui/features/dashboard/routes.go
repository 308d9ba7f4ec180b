// Package dashboard provides the query dashboard: pick a catalog query, run
// it and see the result as a table and a bar chart.
package dashboard

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/salesdash/internal/history"
)

// SetupRoutes registers the dashboard routes.
func SetupRoutes(
	router chi.Router,
	runner QueryRunner,
	hist *history.Store,
	sessionStore sessions.Store,
	logger *slog.Logger,
	isDev bool,
) error {
	handlers := NewHandlers(runner, hist, sessionStore, logger, isDev)

	router.Get("/", handlers.DashboardPage)

	router.Route("/api", func(r chi.Router) {
		r.Get("/queries", handlers.QueriesSSE)
		r.Post("/run", handlers.RunSSE)
		r.Get("/catalog", handlers.CatalogJSON)
		r.Get("/history", handlers.HistoryJSON)
	})

	return nil
}
