package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires every API route onto a gorilla/mux router.
func NewRouter(h *APIHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(Recovery, RequestLogging, CORS(h.cfg.CORSOrigin))

	api := router.PathPrefix("/api").Subrouter()

	// auth
	api.HandleFunc("/auth/register", h.RegisterHandler).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/auth/login", h.LoginHandler).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/auth/user", h.AuthMiddleware(h.CurrentUserHandler)).Methods(http.MethodGet, http.MethodOptions)

	// tracks; fixed segments are registered before {id}
	api.HandleFunc("/tracks", h.OptionalAuth(h.GetTracksHandler)).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/tracks/popular", h.OptionalAuth(h.PopularTracksHandler)).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/tracks/upload", h.AuthMiddleware(h.UploadTrackHandler)).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/tracks/user/{id:[0-9]+}/likes", h.OptionalAuth(h.UserLikesHandler)).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/tracks/{id:[0-9]+}", h.OptionalAuth(h.GetTrackHandler)).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/tracks/{id:[0-9]+}", h.AuthMiddleware(h.DeleteTrackHandler)).Methods(http.MethodDelete)
	api.HandleFunc("/tracks/{id:[0-9]+}/like", h.AuthMiddleware(h.LikeTrackHandler)).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/tracks/{id:[0-9]+}/like", h.AuthMiddleware(h.UnlikeTrackHandler)).Methods(http.MethodDelete)
	api.HandleFunc("/tracks/{id:[0-9]+}/stream", h.StreamHandler).Methods(http.MethodGet, http.MethodHead, http.MethodOptions)

	// playlists
	api.HandleFunc("/playlists", h.AuthMiddleware(h.GetMyPlaylistsHandler)).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/playlists", h.AuthMiddleware(h.CreatePlaylistHandler)).Methods(http.MethodPost)
	api.HandleFunc("/playlists/user/{id:[0-9]+}", h.GetUserPlaylistsHandler).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/playlists/{id:[0-9]+}", h.OptionalAuth(h.GetPlaylistHandler)).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/playlists/{id:[0-9]+}/tracks", h.AuthMiddleware(h.AddPlaylistTrackHandler)).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/playlists/{id:[0-9]+}/tracks/{track_id:[0-9]+}", h.AuthMiddleware(h.RemovePlaylistTrackHandler)).Methods(http.MethodDelete, http.MethodOptions)

	// artists, plans and health
	api.HandleFunc("/artists", h.GetArtistsHandler).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/artists/{id:[0-9]+}", h.OptionalAuth(h.GetArtistHandler)).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/subscription_plans", h.SubscriptionPlansHandler).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet, http.MethodOptions)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
	})
	return router
}
