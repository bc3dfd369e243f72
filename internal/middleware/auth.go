package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/hyno-health-api/internal/utils"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
)

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		claims, err := tokens.Validate(bearer(authHeader))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		// Set user info in the context for handlers to use
		c.Set(userIDKey, claims.UserID)
		c.Set(userRoleKey, claims.Role)

		c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid token is sent and
// lets anonymous requests through.
func OptionalAuth(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			if claims, err := tokens.Validate(bearer(authHeader)); err == nil {
				c.Set(userIDKey, claims.UserID)
				c.Set(userRoleKey, claims.Role)
			}
		}
		c.Next()
	}
}

// RequireRole runs after AuthMiddleware and lets only the given role through.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if Role(c) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Permission denied."})
			return
		}
		c.Next()
	}
}

// UserID is the authenticated user's id, or "" for anonymous requests.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func Role(c *gin.Context) string {
	return c.GetString(userRoleKey)
}

func bearer(header string) string {
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
