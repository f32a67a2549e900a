package session

import (
	"bitwise74/game-api/internal"
	"bitwise74/game-api/internal/render"
	"bitwise74/game-api/pkg/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionDelete logs out by clearing the token. The session row stays.
func SessionDelete(c *gin.Context, d *internal.Deps) {
	identity := middleware.Identity(c)

	session := findOwnedSession(c, d, identity, "cannot logout another user")
	if session == nil {
		return
	}

	if err := d.Auth.RevokeToken(c.Request.Context(), session); err != nil {
		render.Internal(c, err, "Failed to revoke token")
		return
	}

	zap.L().Info("User logged out", zap.Uint("userID", identity.ID), zap.String("requestID", c.GetString("requestID")))
	c.Status(http.StatusNoContent)
}
