package handler

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/project-board/pkg/respond"
)

// mountStatic отдает файлы доски; все неизвестные пути вне /api/
// возвращаются на index.html, чтобы браузерный клиент загрузился
func mountStatic(r chi.Router, fsys fs.FS, logger *zap.Logger) {
	if fsys == nil {
		logger.Warn("no static assets mounted, API only")
		r.NotFound(notFoundJSON)
		return
	}

	fileServer := http.FileServer(http.FS(fsys))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		serveIndex(w, fsys, logger)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			notFoundJSON(w, r)
			return
		}

		name := strings.TrimPrefix(r.URL.Path, "/")
		if f, err := fsys.Open(name); err == nil {
			f.Close()
			fileServer.ServeHTTP(w, r)
			return
		}
		serveIndex(w, fsys, logger)
	})
}

func serveIndex(w http.ResponseWriter, fsys fs.FS, logger *zap.Logger) {
	page, err := fs.ReadFile(fsys, "index.html")
	if err != nil {
		logger.Error("index.html missing from static assets", zap.Error(err))
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func notFoundJSON(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, r, http.StatusNotFound, "endpoint not found")
}
