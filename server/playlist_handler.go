package server

import (
	"net/http"

	"streammusic/model"
)

// GetMyPlaylistsHandler handles GET /api/playlists for the caller.
func (h *APIHandler) GetMyPlaylistsHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserIDFromContext(r.Context())
	h.writePlaylists(w, r, userID)
}

// GetUserPlaylistsHandler handles GET /api/playlists/user/{id}.
func (h *APIHandler) GetUserPlaylistsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.writePlaylists(w, r, id)
}

func (h *APIHandler) writePlaylists(w http.ResponseWriter, r *http.Request, userID int64) {
	playlists, err := h.catalog.UserPlaylists(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"playlists": playlists})
}

// CreatePlaylistHandler handles POST /api/playlists.
func (h *APIHandler) CreatePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserIDFromContext(r.Context())
	var req model.CreatePlaylistRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	playlist, err := h.catalog.CreatePlaylist(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, model.PlaylistResult{Message: "Playlist created", Playlist: *playlist})
}

// GetPlaylistHandler handles GET /api/playlists/{id}.
func (h *APIHandler) GetPlaylistHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	playlist, err := h.catalog.PlaylistDetail(r.Context(), id, true, viewerFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, playlist)
}

// AddPlaylistTrackHandler handles POST /api/playlists/{id}/tracks.
func (h *APIHandler) AddPlaylistTrackHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserIDFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req model.AddTrackRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	playlist, err := h.catalog.AddToPlaylist(r.Context(), userID, id, req.TrackID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, model.PlaylistResult{Message: "Track added to playlist", Playlist: *playlist})
}

// RemovePlaylistTrackHandler handles DELETE /api/playlists/{id}/tracks/{track_id}.
func (h *APIHandler) RemovePlaylistTrackHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserIDFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	trackID, err := pathID(r, "track_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	playlist, err := h.catalog.RemoveFromPlaylist(r.Context(), userID, id, trackID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.PlaylistResult{Message: "Track removed from playlist", Playlist: *playlist})
}
