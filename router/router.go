package router

import (
	"linetranslate/config"
	"linetranslate/controllers"
	"linetranslate/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Initialize wires all routes and middlewares.
func Initialize(r *gin.Engine, cfg config.Configuration, webhook *controllers.WebhookController) {
	r.Use(gin.Recovery())

	r.GET("/health", controllers.Health)

	// LINE webhook: signature first, then dispatch
	r.POST("/callback", Logger(), middleware.LineSignature(cfg.Line.ChannelSecret), webhook.Callback)

	log.Info().Msg("Routes initialized")
}
