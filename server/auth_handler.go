package server

import (
	"net/http"

	"streammusic/core/apperr"
	"streammusic/logger"
	"streammusic/model"
)

// RegisterHandler handles POST /api/auth/register.
func (h *APIHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.identity.Register(r.Context(), req)
	if err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			logger.Warn("[Register] user already exists", logger.String("username", req.Username))
		}
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// LoginHandler handles POST /api/auth/login.
func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.identity.Login(r.Context(), req)
	if err != nil {
		if apperr.Is(err, apperr.KindAuth) {
			logger.Warn("[Login] invalid credentials", logger.String("email", req.Email))
		}
		writeError(w, r, err)
		return
	}
	logger.Info("[Login] user logged in", logger.Int64("userId", res.User.UserID))
	writeJSON(w, http.StatusOK, res)
}

// CurrentUserHandler handles GET /api/auth/user.
func (h *APIHandler) CurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserIDFromContext(r.Context())
	user, err := h.identity.Profile(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
