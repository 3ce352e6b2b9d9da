package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS returns a middleware that sets CORS headers on every response and
// answers preflight requests with 204. A "*" entry allows any origin; a
// request origin on the list is echoed back; anything else gets the first
// listed origin. An empty list behaves like "*".
func CORS(allowedOrigins []string) gin.HandlerFunc {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}
	fallback := "*"
	if len(allowedOrigins) > 0 && !origins["*"] {
		fallback = allowedOrigins[0]
	}
	return func(c *gin.Context) {
		allowOrigin := fallback
		if origin := c.GetHeader("Origin"); fallback != "*" && origins[origin] {
			allowOrigin = origin
		}
		c.Header("Access-Control-Allow-Origin", allowOrigin)
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		c.Header("Access-Control-Allow-Credentials", "true")
		if allowOrigin != "*" {
			c.Header("Vary", "Origin")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
