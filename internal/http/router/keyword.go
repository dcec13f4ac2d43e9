package router

import (
	"github.com/gin-gonic/gin"

	"tickethawk.app/ingest/internal/http/handler"
)

func KeywordRouter(router *gin.RouterGroup, handler *handler.KeywordHandler) {
	router.GET("", handler.List)
	router.POST("", handler.Create)
	router.DELETE("/:id", handler.Delete)
	router.POST("/suggest", handler.Suggest)
}
