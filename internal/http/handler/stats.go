package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tickethawk.app/ingest/internal/service"
)

type StatsHandler struct {
	query service.QueryService
}

func NewStatsHandler(query service.QueryService) *StatsHandler {
	return &StatsHandler{query: query}
}

func (h *StatsHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.query.Stats(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to compute stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
