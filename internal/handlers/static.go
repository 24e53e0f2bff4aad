package handlers

import (
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/planet-texas-2050/sites-stories/internal/render"
)

// HandleStatic serves the embedded CSS/JS first, then files from the assets
// directory (logos, poster)
func (h *Handler) HandleStatic(w http.ResponseWriter, r *http.Request) {
	filePath := strings.TrimPrefix(r.URL.Path, "/static/")

	// Prevent directory traversal attacks
	if filePath == "" || strings.Contains(filePath, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	static := render.StaticFS()
	if info, err := fs.Stat(static, filePath); err == nil && !info.IsDir() {
		http.ServeFileFS(w, r, static, filePath)
		return
	}

	if h.assetsDir == "" {
		http.NotFound(w, r)
		return
	}
	fullPath := filepath.Join(h.assetsDir, filepath.FromSlash(filePath))
	if info, err := os.Stat(fullPath); err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, fullPath)
}
