package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// SPAHandler serves the static site: real files when they exist, the index
// page otherwise, so deep links into the admin page still load.
type SPAHandler struct {
	staticDir string
	prefix    string
	indexFile string
}

func NewSPAHandler(staticDir, prefix string) *SPAHandler {
	return &SPAHandler{
		staticDir: staticDir,
		prefix:    prefix,
		indexFile: "index.html",
	}
}

func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, h.prefix)
	path = strings.TrimPrefix(path, "/")

	if strings.HasPrefix(path, "api/") {
		http.NotFound(w, r)
		return
	}

	filePath := filepath.Join(h.staticDir, filepath.Clean("/"+path))

	info, err := os.Stat(filePath)
	if err == nil {
		if !info.IsDir() {
			http.ServeFile(w, r, filePath)
			return
		}
		dirIndex := filepath.Join(filePath, h.indexFile)
		if _, err := os.Stat(dirIndex); err == nil {
			http.ServeFile(w, r, dirIndex)
			return
		}
	}

	indexPath := filepath.Join(h.staticDir, h.indexFile)
	if _, err := os.Stat(indexPath); err != nil {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, indexPath)
}

func StaticFileServer(staticDir, prefix string) http.Handler {
	return NewSPAHandler(staticDir, prefix)
}
