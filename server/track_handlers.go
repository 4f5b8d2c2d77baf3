package server

import (
	"errors"
	"net/http"

	"streammusic/core/apperr"
	"streammusic/logger"
	"streammusic/model"
)

// GetTracksHandler handles GET /api/tracks?page=&limit=.
func (h *APIHandler) GetTracksHandler(w http.ResponseWriter, r *http.Request) {
	page, limit, err := pageParams(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":        apperr.Message(err),
			"tracks":       []model.TrackView{},
			"total":        0,
			"pages":        0,
			"current_page": 1,
		})
		return
	}

	res, err := h.catalog.ListTracks(r.Context(), page, limit, viewerFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetTrackHandler handles GET /api/tracks/{id}.
func (h *APIHandler) GetTrackHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	track, err := h.catalog.GetTrack(r.Context(), id, viewerFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, track)
}

// PopularTracksHandler handles GET /api/tracks/popular?limit=.
func (h *APIHandler) PopularTracksHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	tracks, err := h.catalog.PopularTracks(r.Context(), limit, viewerFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tracks": tracks})
}

// LikeTrackHandler handles POST /api/tracks/{id}/like.
func (h *APIHandler) LikeTrackHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserIDFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.catalog.Like(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// UnlikeTrackHandler handles DELETE /api/tracks/{id}/like.
func (h *APIHandler) UnlikeTrackHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserIDFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.catalog.Unlike(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// UploadTrackHandler handles multipart POST /api/tracks/upload.
func (h *APIHandler) UploadTrackHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserIDFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, apperr.Validation("File too large"))
			return
		}
		writeError(w, r, apperr.Validation("Invalid multipart form"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		logger.Warn("[Upload] no file part", logger.ErrorField(err))
		writeError(w, r, apperr.Validation("No file provided"))
		return
	}
	defer file.Close()

	req := model.UploadRequest{
		Filename:   header.Filename,
		Title:      r.FormValue("title"),
		ArtistName: r.FormValue("artist_name"),
		AlbumTitle: r.FormValue("album_title"),
		Duration:   r.FormValue("duration"),
	}
	track, err := h.catalog.UploadTrack(r.Context(), userID, req, file)
	if err != nil {
		writeError(w, r, err)
		return
	}
	logger.Info("[Upload] track created", logger.Int64("trackId", track.TrackID), logger.Int64("userId", userID))
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Track uploaded successfully",
		"track":   track,
	})
}

// DeleteTrackHandler handles DELETE /api/tracks/{id}.
func (h *APIHandler) DeleteTrackHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserIDFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.catalog.DeleteTrack(r.Context(), userID, id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Track deleted successfully",
		"track_id": id,
	})
}

// UserLikesHandler handles GET /api/tracks/user/{id}/likes.
func (h *APIHandler) UserLikesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	likes, err := h.catalog.UserLikedTracks(r.Context(), id, viewerFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, likes)
}
