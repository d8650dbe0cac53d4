package auth

import (
	"net/http"
	"strings"

	"chat-relay/domain"

	"github.com/gin-gonic/gin"
)

const (
	identityKey = "chat-relay/identity"
	tokenKey    = "chat-relay/token"
)

// Middleware rejects requests without a valid bearer credential and binds
// the verified Identity to the request context. Downstream handlers read
// it back through IdentityFrom; the identity is an explicit typed value,
// never an untyped side channel.
func Middleware(verifier *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": "missing or malformed Authorization header"})
			return
		}

		credential := strings.TrimPrefix(header, "Bearer ")
		identity, err := verifier.Verify(credential)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": "invalid token"})
			return
		}

		c.Set(identityKey, identity)
		c.Set(tokenKey, credential)
		c.Next()
	}
}

// IdentityFrom returns the identity bound by Middleware.
func IdentityFrom(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	identity, ok := v.(domain.Identity)
	return identity, ok
}

// TokenFrom returns the raw verified credential, forwarded on store calls
// so the external store can apply its own access rules.
func TokenFrom(c *gin.Context) string {
	return c.GetString(tokenKey)
}
