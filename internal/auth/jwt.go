package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const issuer = "dashboard-service"

// Token purposes
const (
	PurposeAccess   = "access"
	PurposeRecovery = "recovery"
)

// JWTClaims represents the JWT claims
type JWTClaims struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`

	// Tokens issued before the user's last password change are rejected
	PasswordVersion int `json:"pwv"`
	jwt.RegisteredClaims
}

// JWTManager handles JWT token generation and validation
type JWTManager struct {
	secretKey []byte
	logger    *zap.Logger
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secretKey string, logger *zap.Logger) *JWTManager {
	return &JWTManager{
		secretKey: []byte(secretKey),
		logger:    logger,
	}
}

// GenerateToken signs a token for the given user and purpose. The returned
// claims carry the token id used for revocation.
func (j *JWTManager) GenerateToken(userID, email, purpose string, passwordVersion int, ttl time.Duration) (string, *JWTClaims, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := &JWTClaims{
		Email:           email,
		Purpose:         purpose,
		PasswordVersion: passwordVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		j.logger.Error("Failed to generate token", zap.Error(err))
		return "", nil, err
	}

	j.logger.Debug("Token generated",
		zap.String("email", email),
		zap.String("purpose", purpose),
		zap.Time("expires_at", expiresAt),
	)

	return tokenString, claims, nil
}

// ValidateToken validates a JWT token and returns the claims
func (j *JWTManager) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return j.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			j.logger.Debug("Token expired", zap.Error(err))
			return nil, ErrExpiredToken
		}
		j.logger.Debug("Invalid token", zap.Error(err))
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid || claims.Issuer != issuer {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
