//go:build dev

package resources

import (
	"net/http"
	"os"
	"path/filepath"
	"runtime"
)

// Dev reports whether assets are served from disk.
const Dev = true

// Dir returns the absolute path of the static directory on disk,
// relative to this source file so the binary can run from anywhere.
func Dir() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return StaticDirectoryPath
	}
	return filepath.Join(filepath.Dir(filename), "static")
}

// Handler serves static files straight from disk so edits show up on reload.
func Handler() http.Handler {
	return http.StripPrefix("/static/", http.FileServer(http.FS(os.DirFS(Dir()))))
}
