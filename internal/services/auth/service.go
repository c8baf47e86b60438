package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/torosvacas/internal/dependencies/clock"
	"github.com/mcoot/torosvacas/internal/dependencies/random"
	"github.com/mcoot/torosvacas/internal/model"
	"github.com/mcoot/torosvacas/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// MinPasswordLength is the shortest password accepted at registration
const MinPasswordLength = 8

// Service handles accounts, login and session management
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, random random.Random, cfg Config, logger *slog.Logger) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		random:          random,
		logger:          logger,
		sessionDuration: cfg.SessionDuration,
	}
}

// Register creates a login account
func (s *Service) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	email = normalizeEmail(email)

	verr := model.NewValidationError()
	if strings.TrimSpace(name) == "" {
		verr.Add("name", "The name field is required.")
	}
	validateEmail(verr, email)
	switch {
	case password == "":
		verr.Add("password", "The password field is required.")
	case len(password) < MinPasswordLength:
		verr.Add("password", "The password field must be at least 8 characters.")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	_, err := s.storage.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, model.ErrEmailExists
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &model.User{
		ID:           model.UserID("u_" + s.random.Token(12)),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		slog.String("user_id", string(user.ID)),
	)

	return user, nil
}

// EnsureUser registers an account unless one with the email already exists
func (s *Service) EnsureUser(ctx context.Context, name, email, password string) (*model.User, error) {
	existing, err := s.storage.GetUserByEmail(ctx, normalizeEmail(email))
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}
	return s.Register(ctx, name, email, password)
}

// Login authenticates by email and password and opens a session
func (s *Service) Login(ctx context.Context, email, password string) (*model.AuthSession, error) {
	email = normalizeEmail(email)

	verr := model.NewValidationError()
	validateEmail(verr, email)
	if password == "" {
		verr.Add("password", "The password field is required.")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("login failed", slog.String("user_id", string(user.ID)))
		return nil, ErrInvalidCredentials
	}

	return s.createSession(ctx, user)
}

// ValidateSession checks a token and returns the session's user
func (s *Service) ValidateSession(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	session, err := s.storage.GetAuthSession(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	if s.clock.Now().After(session.ExpiresAt) {
		_ = s.storage.DeleteAuthSession(ctx, token)
		return nil, ErrInvalidSession
	}

	user, err := s.storage.GetUser(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	return user, nil
}

// Logout ends a session
func (s *Service) Logout(ctx context.Context, token string) error {
	if _, err := s.ValidateSession(ctx, token); err != nil {
		return err
	}
	return s.storage.DeleteAuthSession(ctx, token)
}

// createSession creates a new session for a user
func (s *Service) createSession(ctx context.Context, user *model.User) (*model.AuthSession, error) {
	now := s.clock.Now()
	session := &model.AuthSession{
		Token:     "sess_" + s.random.Token(32),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	if err := s.storage.SaveAuthSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("session created", slog.String("user_id", string(user.ID)))
	return session, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(verr *model.ValidationError, email string) {
	if email == "" {
		verr.Add("email", "The email field is required.")
		return
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		verr.Add("email", "The email field must be a valid email address.")
	}
}
