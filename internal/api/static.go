package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/skysight-labs/runwaycast/pkg/logger"
)

// StaticFileHandler serves the UI assets, falling back to index.html for
// paths the file system does not know.
type StaticFileHandler struct {
	dir        string
	fileServer http.Handler
	logger     *logger.Logger
}

// NewStaticFileHandler creates a handler serving files from dir.
func NewStaticFileHandler(dir string, log *logger.Logger) *StaticFileHandler {
	return &StaticFileHandler{
		dir:        dir,
		fileServer: http.FileServer(http.Dir(dir)),
		logger:     log.Named("static"),
	}
}

// ServeHTTP implements http.Handler.
func (h *StaticFileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.dir, filepath.Clean(strings.TrimPrefix(r.URL.Path, "/")))

	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		h.fileServer.ServeHTTP(w, r)
		return
	}

	index := filepath.Join(h.dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, index)
}
