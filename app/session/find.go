// Package session holds the login, session lookup and logout endpoints
package session

import (
	"bitwise74/game-api/internal"
	"bitwise74/game-api/internal/model"
	"bitwise74/game-api/internal/render"
	"bitwise74/game-api/internal/service"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const msgSessionNotFound = "session not found"

// findOwnedSession loads the session named by the :id param and checks that
// identity owns it. It writes the error response itself and returns nil on
// failure.
func findOwnedSession(c *gin.Context, d *internal.Deps, identity *model.User, forbiddenMsg string) *model.Session {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil {
		render.Error(c, http.StatusUnprocessableEntity, msgSessionNotFound)
		return nil
	}

	session, err := d.Auth.FindSession(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			render.Error(c, http.StatusUnprocessableEntity, msgSessionNotFound)
			return nil
		}

		render.Internal(c, err, "Failed to find session")
		return nil
	}

	if err := service.AuthorizeSession(identity, session); err != nil {
		render.Error(c, http.StatusForbidden, forbiddenMsg)
		return nil
	}

	return session
}
