package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tickethawk.app/ingest/internal/http/dto"
	"tickethawk.app/ingest/internal/service"
)

type TicketHandler struct {
	query service.QueryService
}

func NewTicketHandler(query service.QueryService) *TicketHandler {
	return &TicketHandler{query: query}
}

func (h *TicketHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	tickets, err := h.query.ListTickets(ctx, parseLimit(c))
	if err != nil {
		slog.ErrorContext(ctx, "failed to list tickets", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tickets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tickets": dto.ToTicketResponses(tickets)})
}
