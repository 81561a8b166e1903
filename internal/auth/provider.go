package auth

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")
	ErrSessionRevoked     = errors.New("session revoked")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// User is the authenticated principal
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is an authenticated session as issued by a Provider
type Session struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        User      `json:"user"`
}

// Provider is the authentication backend the dashboard delegates to.
// Implementations must be safe for concurrent use.
type Provider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, accessToken string) error
	GetSession(ctx context.Context, accessToken string) (*Session, error)
	// ResetPasswordForEmail starts the recovery flow. It must not reveal
	// whether the account exists.
	ResetPasswordForEmail(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, recoveryToken, newPassword string) (*User, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header value
func BearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
