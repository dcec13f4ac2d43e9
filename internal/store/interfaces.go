package store

import (
	"context"
	"errors"

	"tickethawk.app/ingest/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// MessageStore defines the contract for normalized message data access.
// Upsert is the merge primitive the idempotency guarantee rests on: it must be
// atomic per message id.
type MessageStore interface {
	GetByID(ctx context.Context, id string) (*model.Message, error)
	Upsert(ctx context.Context, msg *model.Message) (*model.Message, error)
	List(ctx context.Context, limit int32) ([]model.Message, error)
	Count(ctx context.Context) (int64, error)
}

// TicketStore defines the contract for ticket data access. Tickets are keyed
// by source message id; Upsert converges repeat deliveries onto one row.
type TicketStore interface {
	GetBySourceMessageID(ctx context.Context, messageID string) (*model.Ticket, error)
	Upsert(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error)
	List(ctx context.Context, limit int32) ([]model.Ticket, error)
	Count(ctx context.Context) (int64, error)
}

// AuditStore is append-only; audit events are never merged or deleted.
type AuditStore interface {
	Create(ctx context.Context, event *model.AuditEvent) error
}

// KeywordStore defines the contract for the detection registry. List returns
// keywords in registry (creation) order, which breaks ties between duplicate
// terms during matching.
type KeywordStore interface {
	List(ctx context.Context) ([]model.Keyword, error)
	Create(ctx context.Context, kw *model.Keyword) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// AdminStore is read-mostly from the pipeline's perspective.
type AdminStore interface {
	GetByID(ctx context.Context, id string) (*model.Admin, error)
	List(ctx context.Context) ([]model.Admin, error)
	Create(ctx context.Context, admin *model.Admin) error
}
