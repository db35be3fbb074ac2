package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/woodmart/storefront/internal/core/domain"
	"github.com/woodmart/storefront/internal/core/ports"
)

// AuthService implements login, registration and logout on top of the user
// store and the session store.
//
// Credentials are compared as stored plaintext. That is the behaviour the
// storefront's existing accounts rely on and is a known security defect.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, log: log}
}

// Login verifies the credentials and attaches the user to sess. On failure
// the session is left untouched.
func (s *AuthService) Login(ctx context.Context, sess *domain.Session, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Info().Str("username", username).Msg("login rejected")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	sess.SignIn(user)
	s.log.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("user logged in")
	return user, nil
}

// Register creates a regular user. Uniqueness is enforced by the store.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" {
		return nil, domain.NewValidationError("username", "is required")
	}
	if password == "" {
		return nil, domain.NewValidationError("password", "is required")
	}

	user, err := s.users.Create(ctx, username, password, domain.RoleUser)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("username", user.Username).Int64("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Logout drops the whole session, cart included.
func (s *AuthService) Logout(ctx context.Context, sess *domain.Session) error {
	if err := s.sessions.Delete(ctx, sess.ID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	sess.Destroy()
	return nil
}
