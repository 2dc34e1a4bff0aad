package services

import (
	"errors"
	"time"

	"github.com/hamdi-4u/TaskManagerAPI/internal/auth"
	"github.com/hamdi-4u/TaskManagerAPI/internal/models"
	"github.com/hamdi-4u/TaskManagerAPI/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// ErrAuthenticationFailed is returned for both an unknown username and a
// wrong password, so callers cannot probe which usernames exist.
var ErrAuthenticationFailed = errors.New("authentication failed")

// LoginResult is the session descriptor issued on successful login.
type LoginResult struct {
	Token     string         `json:"token"`
	TokenType string         `json:"tokenType"`
	ExpiresAt time.Time      `json:"expiresAt"`
	User      models.UserDto `json:"user"`
}

// AuthServiceProvider defines the interface for authentication services.
type AuthServiceProvider interface {
	Authenticate(username, password string) (LoginResult, error)
}

// AuthService verifies credentials and issues signed session tokens.
type AuthService struct {
	users    store.UserStore
	tokenTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users store.UserStore, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, tokenTTL: tokenTTL}
}

// Authenticate verifies a user's credentials and returns a session
// descriptor with a JWT valid for the configured window.
func (s *AuthService) Authenticate(username, password string) (LoginResult, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		return LoginResult{}, err
	}
	if user == nil {
		return LoginResult{}, ErrAuthenticationFailed
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return LoginResult{}, ErrAuthenticationFailed
	}

	token, expiresAt, err := auth.GenerateJWT(*user, s.tokenTTL)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
		User:      user.ToDto(),
	}, nil
}
