package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"blogql/internal/app"
	"blogql/internal/pkg/jwtutil"
)

const ContextUserIDKey = "user_id"

// Identity decodes the bearer token into a request-scoped identity. It never
// rejects: a missing, malformed or expired token leaves the request anonymous
// and each operation decides whether that is acceptable.
func Identity(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			c.Next()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		claims, err := jwtutil.ParseToken(secret, token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)

		ident := app.Identity{UserID: claims.UserID, Email: claims.Email}
		c.Request = c.Request.WithContext(app.WithIdentity(c.Request.Context(), ident))
		c.Next()
	}
}

// UserID reports the authenticated caller, if any.
func UserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}
