package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserIdKey is where the resolved user id lives in the gin context.
const UserIdKey = "sub"

// ResolveUser copies the authenticated user id from the "sub" request header
// into the gin context. The header is set by the authentication layer in
// front of this service; an absent header just means an anonymous request,
// individual handlers decide whether that's acceptable.
func ResolveUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sub := c.GetHeader("sub"); sub != "" {
			c.Set(UserIdKey, sub)
		}
		c.Next()
	}
}

// RequireUser aborts with 401 when no user id was resolved.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(UserIdKey); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"msg": "authentication required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserId returns the resolved user id, empty for anonymous requests.
func CurrentUserId(c *gin.Context) string {
	return c.GetString(UserIdKey)
}
