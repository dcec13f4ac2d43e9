package service_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"tickethawk.app/ingest/internal/model"
	"tickethawk.app/ingest/internal/queue"
	"tickethawk.app/ingest/internal/service"
	"tickethawk.app/ingest/internal/store"
)

var errFakeStoreDown = errors.New("store unavailable")

// fakeStores is an in-memory StoreProvider with the same per-key merge
// semantics as the SQL stores, safe for concurrent use.
type fakeStores struct {
	mu sync.Mutex

	messages map[string]*model.Message
	tickets  map[string]*model.Ticket
	audits   []*model.AuditEvent
	keywords []model.Keyword
	admins   map[string]*model.Admin

	messageUpsertErr error
	failMessageID    string // fail upserts for this id only
	ticketUpsertErr  error
	keywordListErr   error
	auditCreateErr   error

	messageUpserts int
	ticketUpserts  int
}

func newFakeStores() *fakeStores {
	return &fakeStores{
		messages: make(map[string]*model.Message),
		tickets:  make(map[string]*model.Ticket),
		admins:   make(map[string]*model.Admin),
	}
}

func (f *fakeStores) Messages() store.MessageStore  { return (*fakeMessageStore)(f) }
func (f *fakeStores) Tickets() store.TicketStore    { return (*fakeTicketStore)(f) }
func (f *fakeStores) AuditEvents() store.AuditStore { return (*fakeAuditStore)(f) }
func (f *fakeStores) Keywords() store.KeywordStore  { return (*fakeKeywordStore)(f) }
func (f *fakeStores) Admins() store.AdminStore      { return (*fakeAdminStore)(f) }

func (f *fakeStores) addAdmin(a model.Admin) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.admins[a.ID] = &a
}

func (f *fakeStores) addKeyword(kw model.Keyword) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keywords = append(f.keywords, kw)
}

func (f *fakeStores) messageCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

func (f *fakeStores) ticketCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tickets)
}

func (f *fakeStores) ticketFor(messageID string) *model.Ticket {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.tickets[messageID]; ok {
		copied := *t
		return &copied
	}
	return nil
}

func (f *fakeStores) auditKinds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	kinds := make([]string, 0, len(f.audits))
	for _, e := range f.audits {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

type fakeMessageStore fakeStores

func (f *fakeMessageStore) Upsert(_ context.Context, msg *model.Message) (*model.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messageUpserts++
	if f.messageUpsertErr != nil {
		return nil, f.messageUpsertErr
	}
	if f.failMessageID != "" && msg.ID == f.failMessageID {
		return nil, errFakeStoreDown
	}
	stored := *msg
	if existing, ok := f.messages[msg.ID]; ok {
		if stored.SenderName == nil {
			stored.SenderName = existing.SenderName
		}
		if stored.RawPayload == nil {
			stored.RawPayload = existing.RawPayload
		}
	}
	stored.ReceivedAt = time.Now().UTC()
	f.messages[msg.ID] = &stored
	copied := stored
	return &copied, nil
}

func (f *fakeMessageStore) GetByID(_ context.Context, id string) (*model.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.messages[id]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeMessageStore) List(context.Context, int32) ([]model.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Message, 0, len(f.messages))
	for _, m := range f.messages {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeMessageStore) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.messages)), nil
}

type fakeTicketStore fakeStores

func (f *fakeTicketStore) Upsert(_ context.Context, ticket *model.Ticket) (*model.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ticketUpserts++
	if f.ticketUpsertErr != nil {
		return nil, f.ticketUpsertErr
	}
	now := time.Now().UTC()
	stored := *ticket
	if existing, ok := f.tickets[ticket.SourceMessageID]; ok {
		stored.DisplayID = existing.DisplayID
		stored.Status = existing.Status
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	f.tickets[ticket.SourceMessageID] = &stored
	copied := stored
	return &copied, nil
}

func (f *fakeTicketStore) GetBySourceMessageID(_ context.Context, messageID string) (*model.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.tickets[messageID]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeTicketStore) List(context.Context, int32) ([]model.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Ticket, 0, len(f.tickets))
	for _, t := range f.tickets {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTicketStore) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.tickets)), nil
}

type fakeAuditStore fakeStores

func (f *fakeAuditStore) Create(_ context.Context, event *model.AuditEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.auditCreateErr != nil {
		return f.auditCreateErr
	}
	copied := *event
	f.audits = append(f.audits, &copied)
	return nil
}

type fakeKeywordStore fakeStores

func (f *fakeKeywordStore) List(context.Context) ([]model.Keyword, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.keywordListErr != nil {
		return nil, f.keywordListErr
	}
	out := make([]model.Keyword, len(f.keywords))
	copy(out, f.keywords)
	return out, nil
}

func (f *fakeKeywordStore) Create(_ context.Context, kw *model.Keyword) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keywords = append(f.keywords, *kw)
	return nil
}

func (f *fakeKeywordStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, kw := range f.keywords {
		if kw.ID == id {
			f.keywords = append(f.keywords[:i], f.keywords[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeKeywordStore) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.keywords)), nil
}

type fakeAdminStore fakeStores

func (f *fakeAdminStore) GetByID(_ context.Context, id string) (*model.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.admins[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeAdminStore) List(context.Context) ([]model.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Admin, 0, len(f.admins))
	for _, a := range f.admins {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAdminStore) Create(_ context.Context, admin *model.Admin) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.admins[admin.ID] = admin
	return nil
}

// fakeTxRunner passes the shared fake stores straight through; the fakes'
// upserts are already atomic per key, matching what a real transaction plus
// ON CONFLICT provides.
type fakeTxRunner struct {
	stores *fakeStores
	err    error
}

func (r *fakeTxRunner) WithTx(_ context.Context, fn func(sp service.StoreProvider) error) error {
	if r.err != nil {
		return r.err
	}
	return fn(r.stores)
}

// fakeFeed records published live feed entries.
type fakeFeed struct {
	mu      sync.Mutex
	entries []queue.FeedEntry
}

func (f *fakeFeed) Publish(_ context.Context, entry queue.FeedEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeFeed) Close() error { return nil }

func (f *fakeFeed) published() []queue.FeedEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]queue.FeedEntry, len(f.entries))
	copy(out, f.entries)
	return out
}
