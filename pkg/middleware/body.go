package middleware

import (
	"bitwise74/game-api/internal/render"
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodySizeLimiter rejects requests whose body is larger than maxBytes
func BodySizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Fast reject for legit requests
		if c.Request.ContentLength > maxBytes {
			render.Error(c, http.StatusRequestEntityTooLarge, "Request body size exceeds limit")
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
