package session

import (
	"bitwise74/game-api/internal"
	"bitwise74/game-api/internal/render"
	"bitwise74/game-api/pkg/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SessionFetch(c *gin.Context, d *internal.Deps) {
	session := findOwnedSession(c, d, middleware.Identity(c), "cannot fetch another user session")
	if session == nil {
		return
	}

	c.JSON(http.StatusOK, render.SessionDocument(session))
}
