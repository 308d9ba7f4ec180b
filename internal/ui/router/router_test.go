package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/salesdash/internal/ui/notifier"
	"github.com/leapstack-labs/salesdash/pkg/core"
)

type nopRunner struct{}

func (nopRunner) Run(context.Context, string) (*core.Table, error) {
	return &core.Table{}, nil
}

func setupRouter(t *testing.T, isDev bool) (chi.Router, *notifier.Notifier) {
	t.Helper()
	r := chi.NewRouter()
	notify := notifier.New()
	store := sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
	require.NoError(t, SetupRoutes(r, nopRunner{}, nil, store, notify, nil, isDev))
	return r, notify
}

func TestSetupRoutes_ReloadOnlyInDev(t *testing.T) {
	tests := []struct {
		name       string
		isDev      bool
		wantStatus int
	}{
		{"dev", true, http.StatusOK},
		{"prod", false, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupRouter(t, tt.isDev)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hotreload", nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestSetupRoutes_Healthz(t *testing.T) {
	r, _ := setupRouter(t, false)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

// serveReload runs GET /reload until the page is subscribed, then calls
// trigger and waits for the handler to return.
func serveReload(t *testing.T, r chi.Router, notify *notifier.Notifier, trigger func(cancel context.CancelFunc)) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rec := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		defer close(done)
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reload", nil).WithContext(ctx))
	}()

	require.Eventually(t, func() bool { return notify.Len() == 1 }, 2*time.Second, 10*time.Millisecond)
	trigger(cancel)
	<-done

	require.Eventually(t, func() bool { return notify.Len() == 0 }, time.Second, 10*time.Millisecond)
	return rec.Body.String()
}

func TestReload_FirstConnectReloads(t *testing.T) {
	r, notify := setupRouter(t, true)

	first := serveReload(t, r, notify, func(cancel context.CancelFunc) { cancel() })
	assert.Contains(t, first, "window.location.reload()")

	// Later connects wait for a broadcast.
	second := serveReload(t, r, notify, func(cancel context.CancelFunc) { cancel() })
	assert.NotContains(t, second, "window.location.reload()")
}

func TestReload_BroadcastReloads(t *testing.T) {
	r, notify := setupRouter(t, true)

	serveReload(t, r, notify, func(cancel context.CancelFunc) { cancel() })

	body := serveReload(t, r, notify, func(context.CancelFunc) { notify.Broadcast() })
	assert.Contains(t, body, "window.location.reload()")
}
