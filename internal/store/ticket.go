package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tickethawk.app/ingest/core/db"
	"tickethawk.app/ingest/internal/model"
)

type ticketStore struct {
	q db.Querier
}

const ticketColumns = `source_message_id, display_id, status, keyword, channel_name, sender_name, sender_id, text, message_timestamp, assigned_admin_id, assigned_admin_name, created_at, updated_at`

// Upsert merges the ticket keyed by its source message id. The conflict arm
// refreshes the message-derived fields but preserves display_id, status and
// created_at: the label stays stable, and operator status transitions are not
// clobbered by webhook retries. One row per source message, enforced by the
// primary key.
func (s *ticketStore) Upsert(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error) {
	row := s.q.QueryRow(ctx, `
		INSERT INTO tickets (source_message_id, display_id, status, keyword, channel_name, sender_name, sender_id, text, message_timestamp, assigned_admin_id, assigned_admin_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
		ON CONFLICT (source_message_id) DO UPDATE SET
			keyword             = EXCLUDED.keyword,
			channel_name        = EXCLUDED.channel_name,
			sender_name         = COALESCE(EXCLUDED.sender_name, tickets.sender_name),
			sender_id           = EXCLUDED.sender_id,
			text                = EXCLUDED.text,
			message_timestamp   = EXCLUDED.message_timestamp,
			assigned_admin_id   = EXCLUDED.assigned_admin_id,
			assigned_admin_name = EXCLUDED.assigned_admin_name,
			updated_at          = now()
		RETURNING `+ticketColumns,
		ticket.SourceMessageID, ticket.DisplayID, ticket.Status, ticket.Keyword,
		ticket.ChannelName, ticket.SenderName, ticket.SenderID, ticket.Text,
		ticket.MessageTimestamp, ticket.AssignedAdminID, ticket.AssignedAdminName,
	)

	stored, err := scanTicket(row)
	if err != nil {
		return nil, fmt.Errorf("upserting ticket: %w", err)
	}
	return stored, nil
}

func (s *ticketStore) GetBySourceMessageID(ctx context.Context, messageID string) (*model.Ticket, error) {
	row := s.q.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE source_message_id = $1`, messageID)
	ticket, err := scanTicket(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ticket, nil
}

func (s *ticketStore) List(ctx context.Context, limit int32) ([]model.Ticket, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+ticketColumns+`
		FROM tickets
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}
	defer rows.Close()

	var result []model.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}

func (s *ticketStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.q.QueryRow(ctx, `SELECT count(*) FROM tickets`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting tickets: %w", err)
	}
	return count, nil
}

func scanTicket(row pgx.Row) (*model.Ticket, error) {
	var ticket model.Ticket
	err := row.Scan(
		&ticket.SourceMessageID,
		&ticket.DisplayID,
		&ticket.Status,
		&ticket.Keyword,
		&ticket.ChannelName,
		&ticket.SenderName,
		&ticket.SenderID,
		&ticket.Text,
		&ticket.MessageTimestamp,
		&ticket.AssignedAdminID,
		&ticket.AssignedAdminName,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}
