package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"streammusic/config"
	"streammusic/core/apperr"
	"streammusic/core/catalog"
	"streammusic/core/identity"
	"streammusic/core/media"
	"streammusic/logger"

	"github.com/gorilla/mux"
)

// APIHandler serves the REST API.
type APIHandler struct {
	identity *identity.Service
	catalog  *catalog.Service
	resolver *media.Resolver
	cfg      *config.Config
}

func NewAPIHandler(
	identitySvc *identity.Service,
	catalogSvc *catalog.Service,
	resolver *media.Resolver,
	cfg *config.Config,
) *APIHandler {
	return &APIHandler{
		identity: identitySvc,
		catalog:  catalogSvc,
		resolver: resolver,
		cfg:      cfg,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("failed to encode response", logger.ErrorField(err))
	}
}

// writeError maps err onto a status and {"error": msg}. Store failures are
// logged with their cause and answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			logger.String("requestId", RequestIDFromContext(r.Context())),
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.ErrorField(err))
	}
	writeJSON(w, status, map[string]string{"error": apperr.Message(err)})
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return apperr.Validation("Invalid request body")
	}
	return nil
}

// pathID reads a numeric route variable. Routes constrain the pattern, so
// failure only happens on overflow.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("Invalid %s", name)
	}
	return id, nil
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation("Invalid page or limit parameter")
	}
	return n, nil
}

func pageParams(r *http.Request) (page, limit int, err error) {
	if page, err = queryInt(r, "page", 1); err != nil {
		return 0, 0, err
	}
	if limit, err = queryInt(r, "limit", catalog.DefaultPageSize); err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}
