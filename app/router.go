package app

import (
	"bitwise74/game-api/app/game"
	"bitwise74/game-api/app/root"
	"bitwise74/game-api/app/session"
	"bitwise74/game-api/app/user"
	"bitwise74/game-api/internal"
	"bitwise74/game-api/pkg/middleware"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RouterConfig holds the knobs the router reads from config
type RouterConfig struct {
	CORSOrigins []string
	MaxBodySize int64
}

func NewRouter(d *internal.Deps, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"http://localhost:5173"}
	}

	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = 1 << 20
	}

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		ginzap.RecoveryWithZap(zap.L(), true),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v, ok := c.Get("userID"); ok {
					fields = append(fields, zap.String("userID", fmt.Sprint(v)))
				}

				return fields
			},
		}),
		middleware.BodySizeLimiter(cfg.MaxBodySize),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	token := middleware.NewTokenMiddleware(d.Auth)
	credentials := middleware.NewCredentialsMiddleware(d.Auth)

	m := router.Group("/api/v1")
	{
		// HEAD /api/v1/heartbeat 	-> Used to check if the server is alive
		m.HEAD("/heartbeat", func(c *gin.Context) { root.Heartbeat(c, d) })
	}

	u := m.Group("/users")
	{
		// POST /api/v1/users 		-> Signs up a new user
		u.POST("", func(c *gin.Context) { user.UserRegister(c, d) })

		// DELETE /api/v1/users/:id	-> Deletes the caller's own account
		u.DELETE("/:id", token, func(c *gin.Context) { user.UserDelete(c, d) })
	}

	s := m.Group("/sessions")
	{
		// POST /api/v1/sessions	-> Logs in with basic auth and rotates the token
		s.POST("", credentials, func(c *gin.Context) { session.SessionCreate(c, d) })

		// GET /api/v1/sessions/:id	-> Returns the caller's own session
		s.GET("/:id", token, func(c *gin.Context) { session.SessionFetch(c, d) })

		// DELETE /api/v1/sessions/:id	-> Logs out by clearing the token
		s.DELETE("/:id", token, func(c *gin.Context) { session.SessionDelete(c, d) })
	}

	g := m.Group("/games", token)
	{
		// GET /api/v1/games		-> Lists games the caller created or plays in
		g.GET("", func(c *gin.Context) { game.GameList(c, d) })

		// POST /api/v1/games		-> Creates a game with the caller as first player
		g.POST("", func(c *gin.Context) { game.GameCreate(c, d) })
	}

	return router
}
