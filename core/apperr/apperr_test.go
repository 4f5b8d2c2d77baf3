package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusAndMessage(t *testing.T) {
	cause := errors.New("connection refused")
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", Validation("limit must be an integer"), http.StatusBadRequest, "limit must be an integer"},
		{"auth", Auth("Invalid credentials"), http.StatusUnauthorized, "Invalid credentials"},
		{"conflict", Conflict("Already liked"), http.StatusConflict, "Already liked"},
		{"not found", NotFound("Track not found"), http.StatusNotFound, "Track not found"},
		{"store", Store("list tracks", cause), http.StatusInternalServerError, "Internal server error"},
		{"plain", cause, http.StatusInternalServerError, "Internal server error"},
		{"wrapped", fmt.Errorf("like: %w", Conflict("Already liked")), http.StatusConflict, "Already liked"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, Status(tt.err))
			assert.Equal(t, tt.message, Message(tt.err))
		})
	}
}

func TestStoreUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := Store("save track", cause)
	assert.ErrorIs(t, err, cause)
	assert.True(t, Is(err, KindStore))
	assert.False(t, Is(err, KindNotFound))
}
