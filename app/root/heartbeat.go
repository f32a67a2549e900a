// Package root holds endpoints which are not tied to a resource
package root

import (
	"bitwise74/game-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Heartbeat answers 200 while the database is reachable and 503 otherwise
func Heartbeat(c *gin.Context, d *internal.Deps) {
	sqlDB, err := d.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}

	if err != nil {
		zap.L().Error("Heartbeat failed", zap.Error(err))
		c.Status(http.StatusServiceUnavailable)
		return
	}

	c.Status(http.StatusOK)
}
