package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tickethawk.app/ingest/common"
	"tickethawk.app/ingest/common/id"
	"tickethawk.app/ingest/common/logger"
	"tickethawk.app/ingest/internal/mapper"
	"tickethawk.app/ingest/internal/match"
	"tickethawk.app/ingest/internal/model"
	"tickethawk.app/ingest/internal/queue"
)

// EventResult summarizes what one webhook delivery produced.
type EventResult struct {
	Messages int // messages upserted
	Tickets  int // tickets upserted (created or merged)
	Failed   int // messages that could not be persisted
}

// IngestService is the idempotent persistence coordinator: it upserts
// normalized messages keyed by provider message id and conditionally upserts
// tickets keyed by the same id. Duplicate and concurrent deliveries of one
// message converge to one stored message and at most one ticket, by virtue of
// the store's per-key upsert atomicity.
type IngestService interface {
	ProcessEvent(ctx context.Context, body []byte) (*EventResult, error)
	UpsertMessage(ctx context.Context, msg *model.Message) (*model.Message, error)
	UpsertTicketIfMatched(ctx context.Context, msg *model.Message, registry []model.Keyword) (*model.Ticket, error)
}

type ingestService struct {
	stores   StoreProvider
	txRunner TxRunner
	mapper   mapper.MessageMapper
	feed     queue.Producer
	logger   *slog.Logger
}

func NewIngestService(stores StoreProvider, txRunner TxRunner, msgMapper mapper.MessageMapper, feed queue.Producer, log *slog.Logger) IngestService {
	if log == nil {
		log = slog.Default()
	}
	if feed == nil {
		feed = queue.NopProducer{}
	}
	return &ingestService{
		stores:   stores,
		txRunner: txRunner,
		mapper:   msgMapper,
		feed:     feed,
		logger:   log,
	}
}

// ProcessEvent handles one webhook delivery end to end: audit the raw
// payload, normalize, then persist each message independently. A failure on
// one message never aborts the rest of the batch; an error is returned only
// when every message in a non-empty batch failed, which indicates the storage
// layer itself is down.
func (s *ingestService) ProcessEvent(ctx context.Context, body []byte) (*EventResult, error) {
	receivedAt := time.Now().UTC()

	messages, mapErr := s.mapper.Map(body, receivedAt)

	// One audit record per delivery; a zero-message delivery is tagged with
	// the empty-event kind instead of getting a second row.
	kind := model.AuditKindWebhookEvent
	if mapErr == nil && len(messages) == 0 {
		kind = model.AuditKindEmptyEvent
	}
	s.auditRaw(ctx, kind, body)

	if mapErr != nil {
		// Undecodable after the handler's own parse check — degrade to an
		// audit-only outcome rather than failing the delivery.
		s.logger.WarnContext(ctx, "webhook payload not normalizable", "error", mapErr)
		return &EventResult{}, nil
	}

	if len(messages) == 0 {
		return &EventResult{}, nil
	}

	registry, err := s.stores.Keywords().List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "loading keyword registry", "error", err)
		registry = nil // messages are still stored; matching is skipped
	}

	result := &EventResult{}
	for i := range messages {
		msg := &messages[i]
		mctx := logger.WithLogFields(ctx, logger.LogFields{
			MessageID: logger.Ptr(msg.ID),
			ChannelID: logger.Ptr(msg.ChannelID),
			EventType: logger.Ptr(string(msg.Type)),
		})

		ticket, err := s.ingestOne(mctx, msg, registry)
		if err != nil {
			s.logger.ErrorContext(mctx, "failed to persist message", "error", err)
			result.Failed++
			continue
		}

		result.Messages++
		if ticket != nil {
			result.Tickets++
			s.logger.InfoContext(mctx, "ticket upserted",
				"ticket_id", ticket.DisplayID,
				"keyword", ticket.Keyword,
				"assigned_admin", ticket.AssignedAdminName,
			)
		}

		s.publishFeedEntry(mctx, msg, ticket != nil)
	}

	if result.Messages == 0 && result.Failed > 0 {
		return result, fmt.Errorf("all %d messages failed to persist", result.Failed)
	}
	return result, nil
}

// ingestOne upserts one message and, on a keyword hit, its ticket, inside a
// single transaction so the pair lands atomically.
func (s *ingestService) ingestOne(ctx context.Context, msg *model.Message, registry []model.Keyword) (*model.Ticket, error) {
	var ticket *model.Ticket

	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		stored, err := sp.Messages().Upsert(ctx, msg)
		if err != nil {
			return fmt.Errorf("upserting message: %w", err)
		}
		*msg = *stored

		ticket, err = s.upsertTicketIfMatched(ctx, sp, msg, registry)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *ingestService) UpsertMessage(ctx context.Context, msg *model.Message) (*model.Message, error) {
	return s.stores.Messages().Upsert(ctx, msg)
}

func (s *ingestService) UpsertTicketIfMatched(ctx context.Context, msg *model.Message, registry []model.Keyword) (*model.Ticket, error) {
	return s.upsertTicketIfMatched(ctx, s.stores, msg, registry)
}

func (s *ingestService) upsertTicketIfMatched(ctx context.Context, sp StoreProvider, msg *model.Message, registry []model.Keyword) (*model.Ticket, error) {
	// Synthesized non-message events are stored for audit but never scanned.
	if msg.Type == model.TypeEvent {
		return nil, nil
	}

	kw, ok := match.First(msg.Text, registry)
	if !ok {
		return nil, nil
	}

	adminName := "Unknown"
	admin, err := sp.Admins().GetByID(ctx, kw.AssignedAdminID)
	if err == nil {
		adminName = admin.Name
	} else {
		s.logger.WarnContext(ctx, "assigned admin not found, ticket keeps placeholder name",
			"admin_id", kw.AssignedAdminID, "error", err)
	}

	ticket := &model.Ticket{
		DisplayID:         common.TicketDisplayID(msg.ID),
		SourceMessageID:   msg.ID,
		Status:            model.TicketStatusNew,
		Keyword:           kw.Term,
		ChannelName:       msg.ChannelName,
		SenderName:        msg.SenderName,
		SenderID:          msg.SenderID,
		Text:              msg.Text,
		MessageTimestamp:  msg.Timestamp,
		AssignedAdminID:   kw.AssignedAdminID,
		AssignedAdminName: adminName,
	}

	stored, err := sp.Tickets().Upsert(ctx, ticket)
	if err != nil {
		return nil, fmt.Errorf("upserting ticket: %w", err)
	}
	return stored, nil
}

// auditRaw records the raw payload. Fire-and-forget: an audit failure is
// logged and never blocks message or ticket persistence.
func (s *ingestService) auditRaw(ctx context.Context, kind string, body []byte) {
	event := &model.AuditEvent{
		ID:      id.NewString(),
		Kind:    kind,
		Payload: body,
	}
	if err := s.stores.AuditEvents().Create(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to store audit event", "kind", kind, "error", err)
	}
}

func (s *ingestService) publishFeedEntry(ctx context.Context, msg *model.Message, ticketed bool) {
	senderName := ""
	if msg.SenderName != nil {
		senderName = *msg.SenderName
	}
	entry := queue.FeedEntry{
		MessageID:   msg.ID,
		SenderName:  senderName,
		ChannelName: msg.ChannelName,
		Text:        msg.Text,
		Timestamp:   msg.BestTimestamp(),
		Ticketed:    ticketed,
	}
	if err := s.feed.Publish(ctx, entry); err != nil {
		s.logger.WarnContext(ctx, "failed to publish live feed entry", "error", err)
	}
}
