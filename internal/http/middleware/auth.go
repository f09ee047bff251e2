// README: Firebase bearer-token auth middleware.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"journey360/internal/infra"
)

const (
	uidKey   = "auth.uid"
	emailKey = "auth.email"
)

// Auth verifies the Authorization bearer token and stores the caller's
// identity on the request context. Requests without a valid token are
// rejected before any handler runs.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		token, err := verifier.VerifyIDToken(c.Request.Context(), raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(uidKey, token.UID)
		c.Set(emailKey, token.Email)
		c.Next()
	}
}

// CallerUID returns the authenticated user ID set by Auth, or "" when the
// request was not authenticated.
func CallerUID(c *gin.Context) string {
	uid, _ := c.Get(uidKey)
	s, _ := uid.(string)
	return s
}

// CallerEmail returns the authenticated user's email, if the token carried one.
func CallerEmail(c *gin.Context) string {
	email, _ := c.Get(emailKey)
	s, _ := email.(string)
	return s
}
