// Package identity registers users, verifies credentials and issues tokens.
package identity

import (
	"context"
	"errors"
	"strings"

	"streammusic/core/apperr"
	"streammusic/core/auth"
	"streammusic/logger"
	"streammusic/model"
	"streammusic/repository"
)

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Message string         `json:"message"`
	User    model.UserView `json:"user"`
	Token   string         `json:"token"`
}

type Service struct {
	store         repository.Store
	tokens        *auth.TokenManager
	defaultPlanID int64
}

func NewService(store repository.Store, tokens *auth.TokenManager, defaultPlanID int64) *Service {
	return &Service{store: store, tokens: tokens, defaultPlanID: defaultPlanID}
}

// Register creates an account and signs the user in.
func (s *Service) Register(ctx context.Context, req model.RegisterRequest) (*AuthResult, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || req.Password == "" {
		return nil, apperr.Validation("Missing required fields")
	}
	if !auth.ValidEmail(email) {
		return nil, apperr.Validation("Invalid email format")
	}
	if len(req.Password) > auth.MaxPasswordBytes {
		return nil, apperr.Validation("Password must be at most %d bytes", auth.MaxPasswordBytes)
	}
	if !auth.ValidPassword(req.Password) {
		return nil, apperr.Validation("Password must be at least %d characters with uppercase and number", auth.MinPasswordLength)
	}

	exists, err := s.store.Users().ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, apperr.Store("check existing user", err)
	}
	if exists {
		return nil, apperr.Conflict("User already exists")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Store("hash password", err)
	}

	user := &model.User{Username: username, Email: email, PasswordHash: hash}
	plan, err := s.store.Plans().GetByID(ctx, s.defaultPlanID)
	if err != nil {
		return nil, apperr.Store("load default plan", err)
	}
	if plan != nil {
		user.SubscriptionPlanID = &plan.ID
	}

	if err := s.store.Users().Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("User already exists")
		}
		return nil, apperr.Store("create user", err)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, apperr.Store("issue token", err)
	}
	logger.Info("user registered", logger.Int64("userId", user.ID), logger.String("username", user.Username))
	return &AuthResult{Message: "User registered successfully", User: user.ToResponse(), Token: token}, nil
}

// Login verifies email and password and issues a token.
func (s *Service) Login(ctx context.Context, req model.LoginRequest) (*AuthResult, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, apperr.Validation("Email and password required")
	}

	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Store("load user", err)
	}
	if user == nil {
		auth.BurnCompare(req.Password)
		return nil, apperr.Auth("Invalid credentials")
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperr.Auth("Invalid credentials")
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, apperr.Store("issue token", err)
	}
	return &AuthResult{Message: "Login successful", User: user.ToResponse(), Token: token}, nil
}

// CurrentUser resolves a bearer token to a user id.
func (s *Service) CurrentUser(token string) (int64, error) {
	if token == "" {
		return 0, apperr.Auth("Missing authorization token")
	}
	id, err := s.tokens.Parse(token)
	if err != nil {
		return 0, apperr.Auth("Invalid or expired token")
	}
	return id, nil
}

// Profile loads the signed-in user.
func (s *Service) Profile(ctx context.Context, userID int64) (*model.UserView, error) {
	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, apperr.Store("load user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}
	v := user.ToResponse()
	return &v, nil
}
