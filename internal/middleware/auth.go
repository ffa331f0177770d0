package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recipe-be/internal/entities"
	"recipe-be/internal/service"
)

// UserIDKey is the gin context key holding the authenticated user's ID
const UserIDKey = "user_id"

// TokenAuthenticator resolves a bearer token to the user it was issued to
type TokenAuthenticator interface {
	ResolveToken(ctx context.Context, token string) (*entities.User, error)
}

// AuthMiddleware rejects requests without a valid "Authorization: Bearer <token>"
// header and stores the caller's ID under UserIDKey
func AuthMiddleware(auth TokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication credentials were not provided",
			})
			return
		}

		scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization header format",
			})
			return
		}

		user, err := auth.ResolveToken(c.Request.Context(), token)
		if errors.Is(err, service.ErrUnauthorized) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Next()
	}
}

// CurrentUserID returns the ID stored by AuthMiddleware
func CurrentUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}
