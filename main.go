package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"artconsole/config"
	"artconsole/internal/logger"
	"artconsole/internal/stubapi"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	logger.Init(config.ENV)

	r := gin.Default()

	// CORS goes on before routes so preflights hit it too.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	srv := stubapi.New([]byte(config.JWT_SECRET), config.ADMIN_EMAIL, config.ADMIN_PASSWORD)
	srv.Store().Seed()
	srv.Register(r)

	logger.Info("listening on :" + config.PORT)
	r.Run(":" + config.PORT)
}
