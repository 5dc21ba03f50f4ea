package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/tickify/gateway/internal/catalog"
	"github.com/tickify/gateway/internal/session"
	"github.com/tickify/gateway/internal/upstream"
)

func CatalogMiddleware(store *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("catalog", store)
		c.Next()
	}
}

func SessionMiddleware(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("sessions", store)
		c.Next()
	}
}

func UpstreamMiddleware(client *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("upstream", client)
		c.Next()
	}
}

func JWTSecretMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("jwt_secret", secret)
		c.Next()
	}
}
