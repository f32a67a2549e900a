// Package game holds the game endpoints
package game

import (
	"bitwise74/game-api/internal"
	"bitwise74/game-api/internal/render"
	"bitwise74/game-api/internal/service"
	"bitwise74/game-api/pkg/middleware"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type createBody struct {
	Name string `json:"name"`
}

func GameCreate(c *gin.Context, d *internal.Deps) {
	requestID := c.GetString("requestID")
	identity := middleware.Identity(c)

	// The body is optional
	var data createBody
	if err := c.ShouldBindJSON(&data); err != nil && !errors.Is(err, io.EOF) {
		render.Error(c, http.StatusBadRequest, "Invalid request body")

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	game, err := d.Games.CreateGame(c.Request.Context(), identity, data.Name)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			render.Invalid(c, verr.Messages)
			return
		}

		render.Internal(c, err, "Failed to create game")
		return
	}

	zap.L().Info("Game created", zap.Uint("gameID", game.ID), zap.Uint("userID", identity.ID), zap.String("requestID", requestID))
	c.JSON(http.StatusCreated, render.GameDocument(game))
}
