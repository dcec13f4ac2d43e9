package store

import (
	"tickethawk.app/ingest/core/db"
)

// Stores provides typed accessors over a querier. The querier may be a pool
// or a transaction; the same stores work in both contexts.
type Stores struct {
	q db.Querier
}

func NewStores(q db.Querier) *Stores {
	return &Stores{q: q}
}

func (s *Stores) Messages() MessageStore {
	return &messageStore{q: s.q}
}

func (s *Stores) Tickets() TicketStore {
	return &ticketStore{q: s.q}
}

func (s *Stores) AuditEvents() AuditStore {
	return &auditStore{q: s.q}
}

func (s *Stores) Keywords() KeywordStore {
	return &keywordStore{q: s.q}
}

func (s *Stores) Admins() AdminStore {
	return &adminStore{q: s.q}
}
