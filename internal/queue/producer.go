package queue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// FeedEntry is one normalized message published to the dashboard live feed.
type FeedEntry struct {
	MessageID   string
	SenderName  string
	ChannelName string
	Text        string
	Timestamp   time.Time
	Ticketed    bool
}

// Producer publishes feed entries. Publishing is best-effort: the ingest
// pipeline treats failures as log-and-continue.
type Producer interface {
	Publish(ctx context.Context, entry FeedEntry) error
	Close() error
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *redisProducer) Publish(ctx context.Context, entry FeedEntry) error {
	fields := map[string]any{
		"message_id":   entry.MessageID,
		"sender_name":  entry.SenderName,
		"channel_name": entry.ChannelName,
		"text":         entry.Text,
		"timestamp":    entry.Timestamp.Format(time.RFC3339),
		"ticketed":     entry.Ticketed,
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: 1000,
		Approx: true,
		Values: fields,
	}).Err(); err != nil {
		return fmt.Errorf("publish feed entry: %w", err)
	}

	p.logger.DebugContext(ctx, "published feed entry", "message_id", entry.MessageID, "ticketed", entry.Ticketed)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}

// NopProducer is used when no live feed is configured.
type NopProducer struct{}

func (NopProducer) Publish(context.Context, FeedEntry) error { return nil }
func (NopProducer) Close() error                             { return nil }
