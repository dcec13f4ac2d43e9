package mapper

import (
	"time"

	"tickethawk.app/ingest/internal/model"
)

// MessageMapper extracts zero or more normalized messages from a raw provider
// webhook body, in payload order. Implementations must tolerate arbitrary
// missing or malformed nesting: absent optional fields degrade to documented
// defaults, never to an error. A body with no extractable messages yields an
// empty slice, which the caller records as a plain audit event.
type MessageMapper interface {
	Map(body []byte, receivedAt time.Time) ([]model.Message, error)
}
