// README: Bearer-session auth middleware; resolves the token to a rider and
// stashes it on the request context.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"guardian/internal/modules/rider"
)

const riderKey = "rider"

type SessionStore interface {
	Lookup(ctx context.Context, token string) (string, error)
}

type RiderFinder interface {
	FindByUUID(ctx context.Context, uuid string) (*rider.Rider, error)
}

func Auth(sessions SessionStore, riders RiderFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		uuid, err := sessions.Lookup(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}
		r, err := riders.FindByUUID(c.Request.Context(), uuid)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown rider"})
			return
		}
		c.Set(riderKey, r)
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// RiderFrom returns the authenticated rider set by Auth.
func RiderFrom(c *gin.Context) (*rider.Rider, bool) {
	v, ok := c.Get(riderKey)
	if !ok {
		return nil, false
	}
	r, ok := v.(*rider.Rider)
	return r, ok
}
