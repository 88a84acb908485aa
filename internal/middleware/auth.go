package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/docuvault/internal/auth"
)

// ContextKeyIdentity is where the middleware stores the verified
// identity for handlers to read back.
const ContextKeyIdentity = "identity"

// AuthMiddleware validates the Bearer token and stores the resulting
// identity (id, username, role) in the request context. Invalid or
// missing tokens abort with 401 before any handler runs.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing authorization header",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid authorization format, expected: Bearer <token>",
			})
			return
		}

		claims, err := auth.ParseToken(parts[1], secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		c.Set(ContextKeyIdentity, claims.Identity())
		c.Next()
	}
}

// GetIdentity returns the authenticated identity, or a zero identity if
// the middleware did not run. A zero UserID fails every ownership check
// downstream.
func GetIdentity(c *gin.Context) auth.Identity {
	val, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return auth.Identity{}
	}
	identity, ok := val.(auth.Identity)
	if !ok {
		return auth.Identity{}
	}
	return identity
}
