package session

import (
	"bitwise74/game-api/internal"
	"bitwise74/game-api/internal/render"
	"bitwise74/game-api/pkg/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionCreate logs the user resolved by the credentials guard in and
// rotates their token
func SessionCreate(c *gin.Context, d *internal.Deps) {
	identity := middleware.Identity(c)

	session, _, err := d.Auth.IssueToken(c.Request.Context(), identity)
	if err != nil {
		render.Internal(c, err, "Failed to issue token")
		return
	}

	zap.L().Info("User logged in", zap.Uint("userID", identity.ID), zap.String("requestID", c.GetString("requestID")))
	c.JSON(http.StatusCreated, render.SessionDocument(session))
}
