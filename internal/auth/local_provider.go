package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// RecoveryNotifier delivers password recovery tokens to users
type RecoveryNotifier interface {
	SendRecovery(ctx context.Context, email, token string) error
}

// LogNotifier writes recovery tokens to the log. Meant for development.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) SendRecovery(ctx context.Context, email, token string) error {
	n.Logger.Info("Password recovery token issued",
		zap.String("email", email),
		zap.String("token", token),
	)
	return nil
}

// LocalProviderConfig configures a LocalProvider
type LocalProviderConfig struct {
	TokenTTL    time.Duration
	RecoveryTTL time.Duration
	Notifier    RecoveryNotifier
}

// localUser is replaced, never mutated, so lookups can read it unlocked
type localUser struct {
	id              string
	email           string
	passwordHash    []byte
	passwordVersion int
}

// LocalProvider is a self-contained Provider: users live in memory with
// bcrypt hashes, sessions are JWTs and sign-out revokes the token id.
type LocalProvider struct {
	jwt         *JWTManager
	logger      *zap.Logger
	tokenTTL    time.Duration
	recoveryTTL time.Duration
	notifier    RecoveryNotifier

	mu      sync.RWMutex
	users   map[string]*localUser // by normalized email
	revoked map[string]time.Time  // token id -> token expiry
}

// NewLocalProvider creates a provider seeded with email -> password pairs
func NewLocalProvider(jwtManager *JWTManager, users map[string]string, cfg LocalProviderConfig, logger *zap.Logger) (*LocalProvider, error) {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 10 * time.Minute
	}
	if cfg.RecoveryTTL <= 0 {
		cfg.RecoveryTTL = 30 * time.Minute
	}
	if cfg.Notifier == nil {
		cfg.Notifier = LogNotifier{Logger: logger}
	}

	p := &LocalProvider{
		jwt:         jwtManager,
		logger:      logger,
		tokenTTL:    cfg.TokenTTL,
		recoveryTTL: cfg.RecoveryTTL,
		notifier:    cfg.Notifier,
		users:       make(map[string]*localUser),
		revoked:     make(map[string]time.Time),
	}

	for email, password := range users {
		if err := p.AddUser(email, password); err != nil {
			return nil, fmt.Errorf("failed to seed user %s: %w", email, err)
		}
	}

	return p, nil
}

// AddUser registers a user. Replacing an existing user counts as a
// password change and ends its sessions.
func (p *LocalProvider) AddUser(email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	email = normalizeEmail(email)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setPasswordLocked(email, hash)
	return nil
}

func (p *LocalProvider) setPasswordLocked(email string, hash []byte) *localUser {
	version := 0
	if existing, ok := p.users[email]; ok {
		version = existing.passwordVersion + 1
	}
	user := &localUser{
		id:              uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+email)).String(),
		email:           email,
		passwordHash:    hash,
		passwordVersion: version,
	}
	p.users[email] = user
	return user
}

func (p *LocalProvider) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	user := p.lookup(normalizeEmail(email))
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(user.passwordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, claims, err := p.jwt.GenerateToken(user.id, user.email, PurposeAccess, user.passwordVersion, p.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}

	return newSession(token, claims), nil
}

func (p *LocalProvider) SignOut(ctx context.Context, accessToken string) error {
	claims, err := p.jwt.ValidateToken(accessToken)
	if errors.Is(err, ErrExpiredToken) {
		// already unusable
		return nil
	}
	if err != nil {
		return err
	}

	p.revoke(claims)
	return nil
}

func (p *LocalProvider) GetSession(ctx context.Context, accessToken string) (*Session, error) {
	claims, err := p.validate(accessToken, PurposeAccess)
	if err != nil {
		return nil, err
	}
	return newSession(accessToken, claims), nil
}

func (p *LocalProvider) ResetPasswordForEmail(ctx context.Context, email string) error {
	user := p.lookup(normalizeEmail(email))
	if user == nil {
		p.logger.Debug("Password reset for unknown email", zap.String("email", email))
		return nil
	}

	token, _, err := p.jwt.GenerateToken(user.id, user.email, PurposeRecovery, user.passwordVersion, p.recoveryTTL)
	if err != nil {
		return fmt.Errorf("failed to issue recovery token: %w", err)
	}

	if err := p.notifier.SendRecovery(ctx, user.email, token); err != nil {
		return fmt.Errorf("failed to deliver recovery token: %w", err)
	}
	return nil
}

func (p *LocalProvider) UpdatePassword(ctx context.Context, recoveryToken, newPassword string) (*User, error) {
	if len(newPassword) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	claims, err := p.validate(recoveryToken, PurposeRecovery)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}

	// Recovery tokens are single use: consuming the token and storing the
	// password happen under one lock.
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.checkLocked(claims); err != nil {
		return nil, err
	}
	p.revokeLocked(claims, time.Now())
	user := p.setPasswordLocked(claims.Email, hash)

	return &User{ID: user.id, Email: user.email}, nil
}

func (p *LocalProvider) validate(token, purpose string) (*JWTClaims, error) {
	claims, err := p.jwt.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != purpose {
		return nil, ErrInvalidToken
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if err := p.checkLocked(claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// checkLocked rejects revoked tokens and tokens issued before the user's
// last password change
func (p *LocalProvider) checkLocked(claims *JWTClaims) error {
	if _, revoked := p.revoked[claims.ID]; revoked {
		return ErrSessionRevoked
	}
	user, ok := p.users[claims.Email]
	if !ok {
		return ErrInvalidToken
	}
	if claims.PasswordVersion != user.passwordVersion {
		return ErrSessionRevoked
	}
	return nil
}

func (p *LocalProvider) lookup(email string) *localUser {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.users[email]
}

func (p *LocalProvider) revoke(claims *JWTClaims) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.revokeLocked(claims, time.Now())
}

// revokeLocked records the token id and drops entries whose tokens have expired
func (p *LocalProvider) revokeLocked(claims *JWTClaims, now time.Time) {
	for id, expiresAt := range p.revoked {
		if now.After(expiresAt) {
			delete(p.revoked, id)
		}
	}
	p.revoked[claims.ID] = claims.ExpiresAt.Time
}

func newSession(token string, claims *JWTClaims) *Session {
	expiresAt := claims.ExpiresAt.Time
	expiresIn := int(time.Until(expiresAt).Seconds())
	if expiresIn < 0 {
		expiresIn = 0
	}

	return &Session{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		ExpiresAt:   expiresAt,
		User: User{
			ID:    claims.Subject,
			Email: claims.Email,
		},
	}
}
