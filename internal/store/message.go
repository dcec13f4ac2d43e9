package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tickethawk.app/ingest/core/db"
	"tickethawk.app/ingest/internal/model"
)

type messageStore struct {
	q db.Querier
}

const messageColumns = `id, sender_id, sender_name, text, type, event_timestamp, channel_id, channel_name, raw_payload, received_at`

// Upsert merges msg into the row keyed by msg.ID. Fields present in the new
// write replace stored values; sender_name only when the new write carries
// one. received_at is stamped server-side on every delivery, so ingestion
// ordering stays well-defined regardless of client clocks.
func (s *messageStore) Upsert(ctx context.Context, msg *model.Message) (*model.Message, error) {
	row := s.q.QueryRow(ctx, `
		INSERT INTO messages (id, sender_id, sender_name, text, type, event_timestamp, channel_id, channel_name, raw_payload, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		ON CONFLICT (id) DO UPDATE SET
			sender_id       = EXCLUDED.sender_id,
			sender_name     = COALESCE(EXCLUDED.sender_name, messages.sender_name),
			text            = EXCLUDED.text,
			type            = EXCLUDED.type,
			event_timestamp = EXCLUDED.event_timestamp,
			channel_id      = EXCLUDED.channel_id,
			channel_name    = EXCLUDED.channel_name,
			raw_payload     = COALESCE(EXCLUDED.raw_payload, messages.raw_payload),
			received_at     = now()
		RETURNING `+messageColumns,
		msg.ID, msg.SenderID, msg.SenderName, msg.Text, msg.Type,
		msg.Timestamp, msg.ChannelID, msg.ChannelName, msg.RawPayload,
	)

	stored, err := scanMessage(row)
	if err != nil {
		return nil, fmt.Errorf("upserting message: %w", err)
	}
	return stored, nil
}

func (s *messageStore) GetByID(ctx context.Context, id string) (*model.Message, error) {
	row := s.q.QueryRow(ctx, `SELECT `+messageColumns+` FROM messages WHERE id = $1`, id)
	msg, err := scanMessage(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return msg, nil
}

// List returns messages newest-first by best-available timestamp: event time
// first, ingestion time as the tiebreak.
func (s *messageStore) List(ctx context.Context, limit int32) ([]model.Message, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+messageColumns+`
		FROM messages
		ORDER BY event_timestamp DESC, received_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	var result []model.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *msg)
	}
	return result, rows.Err()
}

func (s *messageStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.q.QueryRow(ctx, `SELECT count(*) FROM messages`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting messages: %w", err)
	}
	return count, nil
}

func scanMessage(row pgx.Row) (*model.Message, error) {
	var msg model.Message
	err := row.Scan(
		&msg.ID,
		&msg.SenderID,
		&msg.SenderName,
		&msg.Text,
		&msg.Type,
		&msg.Timestamp,
		&msg.ChannelID,
		&msg.ChannelName,
		&msg.RawPayload,
		&msg.ReceivedAt,
	)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}
