package auth

import (
	"errors"
	"net/http"

	apperrors "dashboard-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Gin context keys set by the auth middleware
const (
	ContextUserID      = "user_id"
	ContextUserEmail   = "user_email"
	ContextAccessToken = "access_token"
	ContextSession     = "session"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	client *Client
	logger *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(client *Client, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		client: client,
		logger: logger,
	}
}

// LoginRequest represents the login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@example.com"`
	Password string `json:"password" binding:"required" example:"admin123"`
}

// RecoverRequest represents a password recovery request
type RecoverRequest struct {
	Email string `json:"email" binding:"required,email" example:"admin@example.com"`
}

// UpdatePasswordRequest represents the new password submitted with a recovery token
type UpdatePasswordRequest struct {
	Password string `json:"password" binding:"required" example:"n3w-passw0rd"`
}

// Login handles POST /api/v1/auth/login
// @Summary      Sign in
// @Description  Authenticates with email and password and returns a bearer session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Login credentials"
// @Success      200      {object}  Session
// @Failure      400      {object}  errors.StandardError
// @Failure      401      {object}  errors.StandardError
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid login request", zap.Error(err))
		c.Error(apperrors.NewValidationError("invalid request", "email or password"))
		c.Abort()
		return
	}

	session, err := h.client.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.abortWithAuthError(c, "sign in", err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// Logout handles POST /api/v1/auth/logout
// @Summary      Sign out
// @Description  Revokes the current bearer session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  errors.StandardError
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString(ContextAccessToken)
	if err := h.client.SignOut(c.Request.Context(), token); err != nil {
		h.abortWithAuthError(c, "sign out", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

// Session handles GET /api/v1/auth/session
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Session
// @Failure      401  {object}  errors.StandardError
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	value, exists := c.Get(ContextSession)
	session, ok := value.(*Session)
	if !exists || !ok {
		c.Error(apperrors.NewUnauthorized("no active session", "Header: Authorization"))
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, session)
}

// Recover handles POST /api/v1/auth/recover
// @Summary      Request password reset
// @Description  Sends a recovery token when the account exists. The response does not reveal whether it does.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      RecoverRequest  true  "Account email"
// @Success      202      {object}  map[string]string
// @Failure      400      {object}  errors.StandardError
// @Router       /auth/recover [post]
func (h *AuthHandler) Recover(c *gin.Context) {
	var req RecoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidationError("invalid request", "email"))
		c.Abort()
		return
	}

	if err := h.client.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.abortWithAuthError(c, "password reset", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "if the account exists, a recovery link has been sent"})
}

// UpdatePassword handles POST /api/v1/auth/password
// @Summary      Set a new password
// @Description  Completes password recovery. The recovery token goes in the Authorization header.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      UpdatePasswordRequest  true  "New password"
// @Success      200      {object}  User
// @Failure      400      {object}  errors.StandardError
// @Failure      401      {object}  errors.StandardError
// @Router       /auth/password [post]
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	token, ok := BearerToken(c.GetHeader("Authorization"))
	if !ok {
		c.Error(apperrors.NewUnauthorized("missing recovery token", "Expected: Bearer <token>"))
		c.Abort()
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidationError("invalid request", "password"))
		c.Abort()
		return
	}

	user, err := h.client.UpdatePassword(c.Request.Context(), token, req.Password)
	if err != nil {
		h.abortWithAuthError(c, "password update", err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) abortWithAuthError(c *gin.Context, operation string, err error) {
	c.Error(AsStandardError(operation, err))
	c.Abort()
}

// AsStandardError maps auth errors to API errors
func AsStandardError(operation string, err error) *apperrors.StandardError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return apperrors.NewUnauthorized("invalid credentials", "email or password incorrect")
	case errors.Is(err, ErrExpiredToken):
		return apperrors.NewUnauthorized("token expired", "Token has expired, please login again")
	case errors.Is(err, ErrSessionRevoked):
		return apperrors.NewUnauthorized("session revoked", "Token is no longer valid, please login again")
	case errors.Is(err, ErrInvalidToken):
		return apperrors.NewUnauthorized("invalid token", err.Error())
	case errors.Is(err, ErrWeakPassword):
		return apperrors.NewValidationError(err.Error(), "password")
	default:
		return apperrors.NewAuthProviderError(operation, err)
	}
}
