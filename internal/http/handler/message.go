package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tickethawk.app/ingest/internal/http/dto"
	"tickethawk.app/ingest/internal/service"
)

type MessageHandler struct {
	query service.QueryService
}

func NewMessageHandler(query service.QueryService) *MessageHandler {
	return &MessageHandler{query: query}
}

// List returns stored messages newest first. An absent, zero or unparsable
// limit falls back to the default; oversized limits are capped, not rejected.
func (h *MessageHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	messages, err := h.query.ListMessages(ctx, parseLimit(c))
	if err != nil {
		slog.ErrorContext(ctx, "failed to list messages", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": dto.ToMessageResponses(messages)})
}

func parseLimit(c *gin.Context) int32 {
	raw := c.Query("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0
	}
	return int32(limit)
}
