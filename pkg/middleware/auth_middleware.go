package middleware

import (
	"dashboard-service/internal/auth"
	"dashboard-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware resolves the bearer token to a session through the auth client
func AuthMiddleware(client *auth.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Missing authorization header",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			c.Error(errors.NewUnauthorized("missing authorization header", "Header: Authorization"))
			c.Abort()
			return
		}

		token, ok := auth.BearerToken(authHeader)
		if !ok {
			logger.Warn("Invalid authorization header format",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			c.Error(errors.NewUnauthorized("invalid authorization header format", "Expected: Bearer <token>"))
			c.Abort()
			return
		}

		session, err := client.GetSession(c.Request.Context(), token)
		if err != nil {
			logger.Warn("Session rejected",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Error(err),
			)
			c.Error(auth.AsStandardError("session lookup", err))
			c.Abort()
			return
		}

		c.Set(auth.ContextUserID, session.User.ID)
		c.Set(auth.ContextUserEmail, session.User.Email)
		c.Set(auth.ContextAccessToken, token)
		c.Set(auth.ContextSession, session)

		logger.Debug("Session validated",
			zap.String("user_id", session.User.ID),
			zap.String("path", c.Request.URL.Path),
		)

		c.Next()
	}
}
