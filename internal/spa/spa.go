// Package spa serves the prebuilt single-page-app bundle from a directory
// on disk. Unmatched non-API paths fall back to index.html so client-side
// routing works on hard reloads.
package spa

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// missingBundleNotice is returned when the static directory has no
// index.html, which means the front end was never built and copied in.
const missingBundleNotice = `{"message":"前端未部署。请构建前端并将 dist 复制到 static 目录。"}`

// Handler serves files from dir with an index.html fallback.
type Handler struct {
	dir string
}

// New creates a SPA handler rooted at dir.
func New(dir string) *Handler {
	return &Handler{dir: dir}
}

// ServeHTTP serves the requested file if it exists, otherwise index.html.
// API paths never reach here in the normal router setup, but a 404 is
// returned for them anyway so a misrouted API call can't receive HTML.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") || r.URL.Path == "/api" {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"API 接口不存在"}`))
		return
	}

	// Reject path traversal before touching the filesystem.
	rel := strings.TrimPrefix(filepath.Clean("/"+r.URL.Path), "/")
	if rel != "" {
		path := filepath.Join(h.dir, rel)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
	}

	index := filepath.Join(h.dir, "index.html")
	if info, err := os.Stat(index); err == nil && !info.IsDir() {
		http.ServeFile(w, r, index)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(missingBundleNotice))
}
