package model

import (
	"encoding/json"
	"time"
)

const (
	AuditKindWebhookEvent = "webhook_event"
	AuditKindEmptyEvent   = "empty_event"
)

// AuditEvent retains a raw webhook payload for later inspection. Append-only:
// audit events are never merged or updated.
type AuditEvent struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
