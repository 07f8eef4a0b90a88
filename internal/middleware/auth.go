package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/constants"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/logger"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/services"
	"go.uber.org/zap"
)

const notAuthorizedMessage = "Not authorized to access this route"

// TokenVerifier resolves a bearer credential to a user id.
type TokenVerifier interface {
	Verify(raw string) (uint64, error)
}

// UserLoader loads the user record behind a verified credential.
type UserLoader interface {
	GetUser(id uint64) (*models.User, error)
}

// RequireAuth checks the bearer token and stores the caller in the context.
// A valid token whose user no longer exists still passes with a nil user.
func RequireAuth(verifier TokenVerifier, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, constants.BearerPrefix) {
			apierrors.Unauthorized(c, notAuthorizedMessage)
			c.Abort()
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(header, constants.BearerPrefix))
		if raw == "" {
			apierrors.Unauthorized(c, notAuthorizedMessage)
			c.Abort()
			return
		}

		userID, err := verifier.Verify(raw)
		if err != nil {
			apierrors.Unauthorized(c, notAuthorizedMessage)
			c.Abort()
			return
		}

		user, err := users.GetUser(userID)
		switch {
		case err == nil:
		case errors.Is(err, services.ErrUserNotFound):
			user = nil
		default:
			logger.Log.Error("failed to load authenticated user", zap.Uint64("user_id", userID), zap.Error(err))
			apierrors.InternalError(c, "Server error")
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetCurrentUser returns the user record loaded by RequireAuth. It is nil
// when the token is valid but the user has been removed.
func GetCurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}
