package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joanie-store/storefront/services"
)

const (
	// SessionCookie carries the session token for browser clients.
	SessionCookie = "token"

	userIDKey = "userID"
	emailKey  = "email"
)

// TokenValidator resolves a session token to the identity it was issued for.
type TokenValidator interface {
	ValidateToken(tokenStr string) (*services.Identity, error)
}

// Session resolves the caller's identity from a Bearer header or the session
// cookie. A missing or invalid token leaves the request anonymous; routes that
// need a user add RequireUser.
func Session(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c.GetHeader("Authorization"))
		if tokenStr == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				tokenStr = cookie
			}
		}

		if tokenStr != "" {
			if identity, err := tokens.ValidateToken(tokenStr); err == nil {
				c.Set(userIDKey, identity.UserID)
				c.Set(emailKey, identity.Email)
			}
		}
		c.Next()
	}
}

// RequireUser rejects anonymous requests with 401.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user's id, or "" for anonymous callers.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
