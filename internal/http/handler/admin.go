package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tickethawk.app/ingest/internal/http/dto"
	"tickethawk.app/ingest/internal/service"
)

type AdminHandler struct {
	query service.QueryService
}

func NewAdminHandler(query service.QueryService) *AdminHandler {
	return &AdminHandler{query: query}
}

func (h *AdminHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	admins, err := h.query.ListAdmins(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list admins", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list admins"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"admins": dto.ToAdminResponses(admins)})
}
