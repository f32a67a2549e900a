package middleware

import (
	"bitwise74/game-api/internal/model"
	"bitwise74/game-api/internal/render"
	"bitwise74/game-api/internal/service"
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

const (
	MsgTokenAuthFailed      = "token authentication failed"
	MsgInvalidCredentials   = "invalid email or password"
	MsgAuthorizationMissing = "authorization header is missing"
)

// Authenticator is the part of the auth service the guards depend on
type Authenticator interface {
	AuthenticateByToken(ctx context.Context, token string) (*model.User, error)
	AuthenticateByCredentials(ctx context.Context, email, password string) (*model.User, error)
}

// NewTokenMiddleware guards routes that need a bearer token. The header may
// be "Bearer <token>" or `Token token="<token>"`.
func NewTokenMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := tokenFromHeader(c.GetHeader("Authorization"))
		if !ok {
			render.Error(c, http.StatusUnauthorized, MsgTokenAuthFailed)
			return
		}

		user, err := auth.AuthenticateByToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrTokenAuthFailed) {
				render.Error(c, http.StatusUnauthorized, MsgTokenAuthFailed)
				return
			}

			render.Internal(c, err, "Failed to authenticate token")
			return
		}

		setIdentity(c, user)
		c.Next()
	}
}

// NewCredentialsMiddleware guards routes that need an email and password
// sent through HTTP basic auth. Tokens are not accepted here.
func NewCredentialsMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.TrimSpace(c.GetHeader("Authorization")) == "" {
			render.Error(c, http.StatusUnprocessableEntity, MsgAuthorizationMissing)
			return
		}

		email, password, ok := c.Request.BasicAuth()
		if !ok {
			render.Error(c, http.StatusUnauthorized, MsgInvalidCredentials)
			return
		}

		user, err := auth.AuthenticateByCredentials(c.Request.Context(), email, password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				render.Error(c, http.StatusUnauthorized, MsgInvalidCredentials)
				return
			}

			render.Internal(c, err, "Failed to authenticate credentials")
			return
		}

		setIdentity(c, user)
		c.Next()
	}
}

func setIdentity(c *gin.Context, u *model.User) {
	c.Set(identityKey, u)
	c.Set("userID", u.ID)
}

// Identity returns the user bound by one of the guards. Handlers read it
// once and pass it on explicitly.
func Identity(c *gin.Context) *model.User {
	return c.MustGet(identityKey).(*model.User)
}

func tokenFromHeader(h string) (string, bool) {
	scheme, rest, found := strings.Cut(strings.TrimSpace(h), " ")
	if !found {
		return "", false
	}

	rest = strings.TrimSpace(rest)

	switch strings.ToLower(scheme) {
	case "bearer":
		return rest, rest != ""
	case "token":
		// Token token="abc", other params after a comma are ignored
		param, _, _ := strings.Cut(rest, ",")
		key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || strings.TrimSpace(key) != "token" {
			return "", false
		}

		value = strings.Trim(strings.TrimSpace(value), `"`)
		return value, value != ""
	default:
		return "", false
	}
}
