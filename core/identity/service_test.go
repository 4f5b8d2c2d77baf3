package identity

import (
	"context"
	"strings"
	"testing"
	"time"

	"streammusic/core/apperr"
	"streammusic/core/auth"
	"streammusic/db/dbtest"
	"streammusic/model"
	"streammusic/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *Service {
	t.Helper()
	store := repository.NewStore(dbtest.Open(t))
	return NewService(store, auth.NewTokenManager("test-secret", "test", time.Hour), 1)
}

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	res, err := s.Register(ctx, model.RegisterRequest{Username: "ann", Email: "ann@example.com", Password: "Secret123"})
	require.NoError(t, err)
	assert.Equal(t, "ann", res.User.Username)
	require.NotNil(t, res.User.SubscriptionPlanID)
	assert.Equal(t, int64(1), *res.User.SubscriptionPlanID)

	id, err := s.CurrentUser(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.UserID, id)

	login, err := s.Login(ctx, model.LoginRequest{Email: "ann@example.com", Password: "Secret123"})
	require.NoError(t, err)
	assert.Equal(t, res.User.UserID, login.User.UserID)

	_, err = s.Login(ctx, model.LoginRequest{Email: "ann@example.com", Password: "Wrong1234"})
	assert.True(t, apperr.Is(err, apperr.KindAuth))

	_, err = s.Login(ctx, model.LoginRequest{Email: "nobody@example.com", Password: "Secret123"})
	assert.True(t, apperr.Is(err, apperr.KindAuth))
}

func TestRegisterRejects(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	_, err := s.Register(ctx, model.RegisterRequest{Username: "ann", Email: "ann@example.com", Password: "Secret123"})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  model.RegisterRequest
		kind apperr.Kind
	}{
		{"missing username", model.RegisterRequest{Email: "b@example.com", Password: "Secret123"}, apperr.KindValidation},
		{"bad email", model.RegisterRequest{Username: "b", Email: "b@example", Password: "Secret123"}, apperr.KindValidation},
		{"weak password", model.RegisterRequest{Username: "b", Email: "b@example.com", Password: "secret12"}, apperr.KindValidation},
		{"password over bcrypt limit", model.RegisterRequest{Username: "b", Email: "b@example.com", Password: "Secret123" + strings.Repeat("x", 80)}, apperr.KindValidation},
		{"duplicate email", model.RegisterRequest{Username: "other", Email: "ann@example.com", Password: "Secret123"}, apperr.KindConflict},
		{"duplicate username", model.RegisterRequest{Username: "ann", Email: "x@example.com", Password: "Secret123"}, apperr.KindConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(ctx, tt.req)
			assert.True(t, apperr.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestCurrentUserRejectsBadTokens(t *testing.T) {
	s := newService(t)
	_, err := s.CurrentUser("")
	assert.True(t, apperr.Is(err, apperr.KindAuth))
	_, err = s.CurrentUser("abc.def.ghi")
	assert.True(t, apperr.Is(err, apperr.KindAuth))
}

func TestProfileMissingUser(t *testing.T) {
	s := newService(t)
	_, err := s.Profile(context.Background(), 999)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestRegisterAcceptsPasswordAtBcryptLimit(t *testing.T) {
	s := newService(t)
	pw := "Secret123" + strings.Repeat("x", auth.MaxPasswordBytes-9)
	require.Len(t, pw, auth.MaxPasswordBytes)

	res, err := s.Register(context.Background(), model.RegisterRequest{Username: "long", Email: "long@example.com", Password: pw})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = s.Login(context.Background(), model.LoginRequest{Email: "long@example.com", Password: pw})
	assert.NoError(t, err)
}
