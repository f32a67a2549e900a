package game

import (
	"bitwise74/game-api/internal"
	"bitwise74/game-api/internal/render"
	"bitwise74/game-api/pkg/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
)

func GameList(c *gin.Context, d *internal.Deps) {
	games, err := d.Games.ListGames(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		render.Internal(c, err, "Failed to list games")
		return
	}

	c.JSON(http.StatusOK, render.GamesDocument(games))
}
