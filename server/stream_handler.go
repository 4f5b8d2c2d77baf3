package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"streammusic/core/apperr"
	"streammusic/logger"
	"streammusic/storage"
)

// StreamHandler handles GET /api/tracks/{id}/stream. The file is served
// inline through http.ServeContent, which answers Range requests with 206.
func (h *APIHandler) StreamHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	track, err := h.catalog.TrackRow(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	path, err := h.resolver.Resolve(track)
	if err != nil {
		writeError(w, r, err)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		logger.Error("[Stream] open failed", logger.String("file", path), logger.ErrorField(err))
		writeError(w, r, apperr.NotFound("Audio file not found"))
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		writeError(w, r, apperr.Store("stat audio file", err))
		return
	}

	name := filepath.Base(path)
	w.Header().Set("Content-Type", storage.ContentType(name))
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", name))
	w.Header().Set("Accept-Ranges", "bytes")
	logger.Debug("[Stream] serving", logger.Int64("trackId", id), logger.String("file", name))
	http.ServeContent(w, r, name, info.ModTime(), f)
}
