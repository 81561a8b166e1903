package auth

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// AuthEvent names an auth state transition
type AuthEvent string

const (
	EventSignedIn         AuthEvent = "SIGNED_IN"
	EventSignedOut        AuthEvent = "SIGNED_OUT"
	EventPasswordRecovery AuthEvent = "PASSWORD_RECOVERY"
	EventUserUpdated      AuthEvent = "USER_UPDATED"
)

// StateChange is delivered to auth state listeners. Session is only set
// for EventSignedIn.
type StateChange struct {
	Event      AuthEvent `json:"event"`
	Email      string    `json:"email"`
	UserID     string    `json:"user_id,omitempty"`
	Session    *Session  `json:"-"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Listener receives auth state changes
type Listener func(StateChange)

// Client is the application's entry point to authentication. It delegates
// every call to its Provider and notifies listeners of state changes.
type Client struct {
	provider Provider
	logger   *zap.Logger

	mu        sync.RWMutex
	listeners map[uint64]Listener
	nextID    uint64
}

// NewClient creates a client backed by the given provider
func NewClient(provider Provider, logger *zap.Logger) *Client {
	return &Client{
		provider:  provider,
		logger:    logger,
		listeners: make(map[uint64]Listener),
	}
}

// SignIn authenticates with email and password
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	session, err := c.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		c.logger.Warn("Sign in failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	c.logger.Info("User signed in",
		zap.String("user_id", session.User.ID),
		zap.Time("expires_at", session.ExpiresAt),
	)
	c.emit(StateChange{
		Event:   EventSignedIn,
		Email:   session.User.Email,
		UserID:  session.User.ID,
		Session: session,
	})
	return session, nil
}

// SignOut ends the session identified by accessToken
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	// Resolve the user first so listeners know who signed out
	session, _ := c.provider.GetSession(ctx, accessToken)

	if err := c.provider.SignOut(ctx, accessToken); err != nil {
		c.logger.Warn("Sign out failed", zap.Error(err))
		return err
	}

	change := StateChange{Event: EventSignedOut}
	if session != nil {
		change.Email = session.User.Email
		change.UserID = session.User.ID
	}
	c.logger.Info("User signed out", zap.String("user_id", change.UserID))
	c.emit(change)
	return nil
}

// GetSession returns the session for an access token
func (c *Client) GetSession(ctx context.Context, accessToken string) (*Session, error) {
	return c.provider.GetSession(ctx, accessToken)
}

// RequestPasswordReset starts the password recovery flow for email
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if err := c.provider.ResetPasswordForEmail(ctx, email); err != nil {
		c.logger.Error("Password reset request failed", zap.String("email", email), zap.Error(err))
		return err
	}

	c.logger.Info("Password reset requested", zap.String("email", email))
	c.emit(StateChange{Event: EventPasswordRecovery, Email: email})
	return nil
}

// UpdatePassword sets a new password using a recovery token
func (c *Client) UpdatePassword(ctx context.Context, recoveryToken, newPassword string) (*User, error) {
	user, err := c.provider.UpdatePassword(ctx, recoveryToken, newPassword)
	if err != nil {
		c.logger.Warn("Password update failed", zap.Error(err))
		return nil, err
	}

	c.logger.Info("Password updated", zap.String("user_id", user.ID))
	c.emit(StateChange{Event: EventUserUpdated, Email: user.Email, UserID: user.ID})
	return user, nil
}

// OnAuthStateChange registers a listener and returns a function that
// removes it. Listeners run synchronously on the calling goroutine.
func (c *Client) OnAuthStateChange(fn Listener) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}

func (c *Client) emit(change StateChange) {
	change.OccurredAt = time.Now().UTC()

	c.mu.RLock()
	listeners := make([]Listener, 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.RUnlock()

	for _, fn := range listeners {
		fn(change)
	}
}
