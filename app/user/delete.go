package user

import (
	"bitwise74/game-api/internal"
	"bitwise74/game-api/internal/render"
	"bitwise74/game-api/internal/service"
	"bitwise74/game-api/pkg/middleware"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func UserDelete(c *gin.Context, d *internal.Deps) {
	identity := middleware.Identity(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil {
		render.Error(c, http.StatusUnprocessableEntity, "user not found")
		return
	}

	target, err := d.Users.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			render.Error(c, http.StatusUnprocessableEntity, "user not found")
			return
		}

		render.Internal(c, err, "Failed to find user")
		return
	}

	if target.ID != identity.ID {
		render.Error(c, http.StatusForbidden, "cannot delete another user")
		return
	}

	if err := d.Users.DeleteUser(c.Request.Context(), target); err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			render.Invalid(c, verr.Messages)
		case errors.Is(err, service.ErrUserNotFound):
			render.Error(c, http.StatusUnprocessableEntity, "user not found")
		default:
			render.Internal(c, err, "Failed to delete user")
		}
		return
	}

	zap.L().Info("User deleted", zap.Uint("userID", target.ID), zap.String("requestID", c.GetString("requestID")))
	c.Status(http.StatusNoContent)
}
