package ui

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/salesdash/internal/testutil"
	"github.com/leapstack-labs/salesdash/pkg/core"
)

type stubRunner struct{}

func (stubRunner) Run(context.Context, string) (*core.Table, error) {
	return &core.Table{Columns: []string{"a", "b"}, Rows: [][]any{{"x", 1.0}}, RowCount: 1}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := NewServer(Config{
		Runner:        stubRunner{},
		Port:          0,
		SessionSecret: "test-secret-key-32-bytes-long!!",
		Logger:        testutil.NewTestLogger(t),
	})
	handler, err := s.Handler()
	require.NoError(t, err)

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url) //nolint:gosec,noctx // test server URL
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestServerRoutes(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"healthz", "/healthz", http.StatusOK, "ok"},
		{"dashboard", "/", http.StatusOK, "Amazon Product"},
		{"stylesheet", "/static/style.css", http.StatusOK, ":root"},
		{"catalog", "/api/catalog?mode=secondary", http.StatusOK, "11) Find the City"},
		{"missing asset", "/static/nope.css", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, ts.URL+tt.path)
			assert.Equal(t, tt.wantStatus, status)
			assert.Contains(t, body, tt.wantBody)
		})
	}
}

func TestServerCatalogIsJSON(t *testing.T) {
	ts := newTestServer(t)

	_, body := get(t, ts.URL+"/api/catalog")

	var entries []map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &entries))
	assert.Len(t, entries, 20)
}

func TestServeStopsOnCancel(t *testing.T) {
	s := NewServer(Config{Runner: stubRunner{}, Port: freePort(t), SessionSecret: "secret"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestWatchFilesBroadcastsOnChange(t *testing.T) {
	dir := t.TempDir()
	s := NewServer(Config{Runner: stubRunner{}, Logger: testutil.NewTestLogger(t)})
	s.staticDir = dir

	updates, unsubscribe := s.Notifier().Subscribe()
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.watchFiles(ctx) }()

	path := filepath.Join(dir, "style.css")
	deadline := time.After(5 * time.Second)
	// Writes must be spaced wider than the debounce or the timer never fires.
	tick := time.NewTicker(3 * watchDebounce)
	defer tick.Stop()

loop:
	for {
		select {
		case <-updates:
			break loop
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, []byte("body{}"), 0600))
		case <-deadline:
			t.Fatal("no reload broadcast after asset change")
		}
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestIsAssetChange(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"css write", fsnotify.Event{Name: "style.css", Op: fsnotify.Write}, true},
		{"js create", fsnotify.Event{Name: "app.js", Op: fsnotify.Create}, true},
		{"css remove", fsnotify.Event{Name: "style.css", Op: fsnotify.Remove}, false},
		{"other file", fsnotify.Event{Name: "notes.txt", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isAssetChange(tt.event))
		})
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := (&net.ListenConfig{}).Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}
