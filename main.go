package main

import (
	"bitwise74/game-api/app"
	"bitwise74/game-api/config"
	"bitwise74/game-api/db"
	"bitwise74/game-api/internal"
	"bitwise74/game-api/pkg/security"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	if err := app.MakeLogger(viper.GetString("app.log_level")); err != nil {
		panic(err)
	}
	defer zap.L().Sync()

	conn, err := db.New(viper.GetString("db.driver"), viper.GetString("db.dsn"))
	if err != nil {
		zap.L().Fatal("Failed to initialize database", zap.Error(err))
	}

	d, err := internal.NewDeps(conn, security.New())
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}

	router := app.NewRouter(d, app.RouterConfig{
		CORSOrigins: viper.GetStringSlice("host.cors"),
		MaxBodySize: viper.GetInt64("body.max_size"),
	})

	addr := fmt.Sprintf(":%d", viper.GetInt("host.port"))
	zap.L().Info("Server starting", zap.String("addr", addr), zap.String("driver", viper.GetString("db.driver")))

	err = router.Run(addr)
	if err != nil {
		panic(err)
	}
}
