package service

import (
	"context"

	"tickethawk.app/ingest/core/db"
	"tickethawk.app/ingest/internal/store"
)

// StoreProvider exposes the stores a transactional operation needs.
type StoreProvider interface {
	Messages() store.MessageStore
	Tickets() store.TicketStore
	AuditEvents() store.AuditStore
	Keywords() store.KeywordStore
	Admins() store.AdminStore
}

// TxRunner runs functions within a transaction and provides stores bound to
// that transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(sp StoreProvider) error) error
}

type dbTxRunner struct {
	db *db.DB
}

// NewTxRunner builds a TxRunner backed by the core DB.
func NewTxRunner(database *db.DB) TxRunner {
	return &dbTxRunner{db: database}
}

func (r *dbTxRunner) WithTx(ctx context.Context, fn func(sp StoreProvider) error) error {
	return r.db.WithTx(ctx, func(q db.Querier) error {
		return fn(store.NewStores(q))
	})
}
