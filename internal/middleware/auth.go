package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/forkful/recipebook/backend/internal/types"
)

const principalKey = "principal"

// TokenVerifier validates session tokens.
type TokenVerifier interface {
	Verify(token string) (*types.TokenClaims, error)
}

// Authenticate resolves the caller's identity from the session cookie, or
// from a bearer header for cookie-less API clients, and stores the
// verified principal in the request context. A missing or invalid token is
// 401, never 403: unauthenticated and forbidden stay distinguishable.
func Authenticate(verifier TokenVerifier, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c, cookieName)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}

		c.Set(principalKey, claims)
		c.Next()
	}
}

// RequireRoles guards an operation with an explicit required-role set. The
// caller must hold at least one of the named roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := Principal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			return
		}
		if !principal.HasAnyRole(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "insufficient role"})
			return
		}
		c.Next()
	}
}

// Principal returns the verified identity stored by Authenticate.
func Principal(c *gin.Context) (*types.TokenClaims, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*types.TokenClaims)
	return claims, ok
}

func extractToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if parts := strings.Split(authHeader, " "); len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
