package webhook

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tickethawk.app/ingest/internal/service"
)

// Acknowledgement body WhatsApp expects on every processed delivery.
const ackBody = "EVENT_RECEIVED"

// WhatsAppWebhookHandler terminates the WhatsApp Business webhook: the GET
// subscription handshake and POST event deliveries. Deliveries are always
// acknowledged with 200 unless storage is completely down, because a non-2xx
// makes the provider re-deliver and a payload that failed once would fail
// identically forever.
type WhatsAppWebhookHandler struct {
	ingest      service.IngestService
	verifyToken string
}

func NewWhatsAppWebhookHandler(ingest service.IngestService, verifyToken string) *WhatsAppWebhookHandler {
	return &WhatsAppWebhookHandler{
		ingest:      ingest,
		verifyToken: verifyToken,
	}
}

// Verify handles the subscription handshake. The challenge must be echoed
// verbatim as plain text; a wrong token, wrong mode or missing challenge is
// a 403.
func (h *WhatsAppWebhookHandler) Verify(c *gin.Context) {
	ctx := c.Request.Context()

	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == h.verifyToken && challenge != "" {
		slog.InfoContext(ctx, "webhook subscription verified")
		c.String(http.StatusOK, challenge)
		return
	}

	slog.WarnContext(ctx, "webhook verification rejected", "mode", mode)
	c.String(http.StatusForbidden, "Forbidden")
}

// Receive handles one event delivery.
func (h *WhatsAppWebhookHandler) Receive(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		slog.WarnContext(ctx, "failed to read webhook body", "error", err)
		c.String(http.StatusOK, ackBody)
		return
	}

	result, err := h.ingest.ProcessEvent(ctx, body)
	if err != nil {
		slog.ErrorContext(ctx, "webhook delivery could not be persisted", "error", err)
		c.String(http.StatusInternalServerError, "storage unavailable")
		return
	}

	slog.InfoContext(ctx, "webhook delivery processed",
		"messages", result.Messages,
		"tickets", result.Tickets,
		"failed", result.Failed,
	)
	c.String(http.StatusOK, ackBody)
}
