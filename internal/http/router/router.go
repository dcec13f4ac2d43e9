package router

import (
	"github.com/gin-gonic/gin"

	"tickethawk.app/ingest/internal/http/handler"
	"tickethawk.app/ingest/internal/http/handler/webhook"
	"tickethawk.app/ingest/internal/service"
)

type RouterConfig struct {
	VerifyToken string
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	webhookHandler := webhook.NewWhatsAppWebhookHandler(services.Ingest, cfg.VerifyToken)
	WebhookRouter(router, webhookHandler)

	v1 := router.Group("/api/v1")
	{
		messageHandler := handler.NewMessageHandler(services.Query)
		v1.GET("/messages", messageHandler.List)

		ticketHandler := handler.NewTicketHandler(services.Query)
		v1.GET("/tickets", ticketHandler.List)

		statsHandler := handler.NewStatsHandler(services.Query)
		v1.GET("/stats", statsHandler.Get)

		adminHandler := handler.NewAdminHandler(services.Query)
		v1.GET("/admins", adminHandler.List)

		keywordHandler := handler.NewKeywordHandler(services.Registry, services.Suggest)
		KeywordRouter(v1.Group("/keywords"), keywordHandler)
	}
}
