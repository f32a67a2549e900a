package user

import (
	"bitwise74/game-api/internal"
	"bitwise74/game-api/internal/render"
	"bitwise74/game-api/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func UserRegister(c *gin.Context, d *internal.Deps) {
	requestID := c.GetString("requestID")

	var data registerBody
	if err := c.ShouldBindJSON(&data); err != nil {
		render.Error(c, http.StatusBadRequest, "Invalid request body")

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user, err := d.Users.Signup(c.Request.Context(), data.Email, data.Password)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			render.Invalid(c, verr.Messages)
			return
		}

		render.Internal(c, err, "Failed to sign up user")
		return
	}

	c.JSON(http.StatusCreated, render.UserDocument(user))
}
