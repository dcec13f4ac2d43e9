package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"

	"tickethawk.app/ingest/internal/http/dto"
	"tickethawk.app/ingest/internal/model"
	"tickethawk.app/ingest/internal/service"
	"tickethawk.app/ingest/internal/store"
)

type KeywordHandler struct {
	registry service.RegistryService
	suggest  service.SuggestService
}

func NewKeywordHandler(registry service.RegistryService, suggest service.SuggestService) *KeywordHandler {
	return &KeywordHandler{registry: registry, suggest: suggest}
}

func (h *KeywordHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	keywords, err := h.registry.ListKeywords(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list keywords", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list keywords"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"keywords": dto.ToKeywordResponses(keywords)})
}

func (h *KeywordHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateKeywordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid keyword request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kw, err := h.registry.CreateKeyword(ctx, req.Term, model.TicketCategory(req.Category), req.AssignedAdminID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyTerm), errors.Is(err, service.ErrInvalidCategory):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUnknownAdmin):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				c.JSON(http.StatusConflict, gin.H{"error": "keyword term already registered"})
				return
			}
			slog.ErrorContext(ctx, "failed to create keyword", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create keyword"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToKeywordResponse(kw))
}

func (h *KeywordHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	keywordID := c.Param("id")
	if err := h.registry.DeleteKeyword(ctx, keywordID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "keyword not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to delete keyword", "error", err, "keyword_id", keywordID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete keyword"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Suggest proposes registry entries for a described support scenario.
// Advisory only: the operator decides what to actually register.
func (h *KeywordHandler) Suggest(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SuggestKeywordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := h.registry.ListKeywords(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load registry for suggestions", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load keywords"})
		return
	}

	suggestions, err := h.suggest.Suggest(ctx, req.Description, existing)
	if err != nil {
		if errors.Is(err, service.ErrSuggestDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "keyword suggestion is not configured"})
			return
		}
		slog.ErrorContext(ctx, "keyword suggestion failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "keyword suggestion failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": dto.ToKeywordSuggestionResponses(suggestions)})
}
