package service

import (
	"context"
	"fmt"

	"tickethawk.app/ingest/internal/model"
)

const (
	defaultMessageLimit int32 = 50
	maxMessageLimit     int32 = 200

	defaultTicketLimit int32 = 10
	maxTicketLimit     int32 = 50
)

// Stats are dashboard counters over the stored pipeline output.
type Stats struct {
	Messages int64 `json:"messages"`
	Tickets  int64 `json:"tickets"`
	Keywords int64 `json:"keywords"`
}

// QueryService serves the read side of the pipeline: newest-first listings
// and aggregate counters for the dashboard.
type QueryService interface {
	ListMessages(ctx context.Context, limit int32) ([]model.Message, error)
	ListTickets(ctx context.Context, limit int32) ([]model.Ticket, error)
	ListAdmins(ctx context.Context) ([]model.Admin, error)
	Stats(ctx context.Context) (*Stats, error)
}

type queryService struct {
	stores StoreProvider
}

func NewQueryService(stores StoreProvider) QueryService {
	return &queryService{stores: stores}
}

func (s *queryService) ListMessages(ctx context.Context, limit int32) ([]model.Message, error) {
	return s.stores.Messages().List(ctx, clampLimit(limit, defaultMessageLimit, maxMessageLimit))
}

func (s *queryService) ListTickets(ctx context.Context, limit int32) ([]model.Ticket, error) {
	return s.stores.Tickets().List(ctx, clampLimit(limit, defaultTicketLimit, maxTicketLimit))
}

func (s *queryService) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	return s.stores.Admins().List(ctx)
}

func (s *queryService) Stats(ctx context.Context) (*Stats, error) {
	messages, err := s.stores.Messages().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting messages: %w", err)
	}
	tickets, err := s.stores.Tickets().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting tickets: %w", err)
	}
	keywords, err := s.stores.Keywords().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting keywords: %w", err)
	}
	return &Stats{Messages: messages, Tickets: tickets, Keywords: keywords}, nil
}

func clampLimit(limit, fallback, max int32) int32 {
	if limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}
