package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tickify/gateway/internal/helpers"
	"github.com/tickify/gateway/internal/session"
)

// AuthRequired verifies the gateway JWT and loads the referenced session
// into the request context.
func AuthRequired(sessions *session.Store, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Missing bearer token.")
			c.Abort()
			return
		}

		sid, err := session.ParseToken(secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token.")
			c.Abort()
			return
		}

		sess, err := sessions.Get(c.Request.Context(), sid)
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Session expired. Please sign in again.")
			c.Abort()
			return
		}

		c.Set("session", sess)
		c.Next()
	}
}

// AdminRequired must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("session")
		if !exists {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Session not found in context.")
			c.Abort()
			return
		}
		sess := value.(session.Session)
		if !sess.User.IsAdmin() {
			helpers.RespondWithError(c, http.StatusForbidden, "Admin access required.")
			c.Abort()
			return
		}
		c.Next()
	}
}
