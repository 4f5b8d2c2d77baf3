package server

import (
	"net/http"

	"streammusic/core/apperr"
	"streammusic/logger"
)

// GetArtistsHandler handles GET /api/artists?page=&limit=.
func (h *APIHandler) GetArtistsHandler(w http.ResponseWriter, r *http.Request) {
	page, limit, err := pageParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.catalog.ListArtists(r.Context(), page, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetArtistHandler handles GET /api/artists/{id}.
func (h *APIHandler) GetArtistHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	detail, err := h.catalog.ArtistDetail(r.Context(), id, viewerFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// SubscriptionPlansHandler handles GET /api/subscription_plans.
func (h *APIHandler) SubscriptionPlansHandler(w http.ResponseWriter, r *http.Request) {
	plans, err := h.catalog.SubscriptionPlans(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"subscription_plans": plans})
}

// HealthHandler handles GET /api/health.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	health, err := h.catalog.Health(r.Context())
	if err != nil {
		logger.Error("[Health] check failed", logger.ErrorField(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status":   "unhealthy",
			"database": "disconnected",
			"error":    apperr.Message(err),
		})
		return
	}
	writeJSON(w, http.StatusOK, health)
}
