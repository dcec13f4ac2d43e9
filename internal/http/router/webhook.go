package router

import (
	"github.com/gin-gonic/gin"

	"tickethawk.app/ingest/internal/http/handler/webhook"
)

func WebhookRouter(router *gin.Engine, handler *webhook.WhatsAppWebhookHandler) {
	router.GET("/webhook", handler.Verify)
	router.POST("/webhook", handler.Receive)
}
