// Package render writes response documents and error bodies
package render

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error aborts the request with status and a body carrying msg
func Error(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":     msg,
		"requestID": c.GetString("requestID"),
	})
}

// Invalid aborts with 422 and every validation message
func Invalid(c *gin.Context, msgs []string) {
	msg := "validation failed"
	if len(msgs) > 0 {
		msg = msgs[0]
	}

	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
		"error":     msg,
		"errors":    msgs,
		"requestID": c.GetString("requestID"),
	})
}

// Internal logs err and aborts with a generic 500
func Internal(c *gin.Context, err error, logMsg string) {
	requestID := c.GetString("requestID")

	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error":     "Internal server error",
		"requestID": requestID,
	})

	zap.L().Error(logMsg, zap.Error(err), zap.String("requestID", requestID))
}
