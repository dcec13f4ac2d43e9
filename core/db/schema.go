package db

import (
	"context"
	"fmt"
)

// Messages and tickets share the provider message id as their primary key;
// that key is what makes duplicate webhook deliveries converge instead of
// duplicating rows. Audit events are append-only and never merged.
const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id                TEXT PRIMARY KEY,
	sender_id         TEXT NOT NULL,
	sender_name       TEXT,
	text              TEXT NOT NULL,
	type              TEXT NOT NULL,
	event_timestamp   TIMESTAMPTZ NOT NULL,
	channel_id        TEXT NOT NULL,
	channel_name      TEXT NOT NULL,
	raw_payload       JSONB,
	received_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS tickets (
	source_message_id TEXT PRIMARY KEY,
	display_id        TEXT NOT NULL,
	status            TEXT NOT NULL DEFAULT 'new',
	keyword           TEXT NOT NULL,
	channel_name      TEXT NOT NULL,
	sender_name       TEXT,
	sender_id         TEXT NOT NULL,
	text              TEXT NOT NULL,
	message_timestamp TIMESTAMPTZ NOT NULL,
	assigned_admin_id TEXT NOT NULL,
	assigned_admin_name TEXT NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS audit_events (
	id         TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	payload    JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS admins (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL UNIQUE,
	role       TEXT NOT NULL,
	avatar_url TEXT
);

CREATE TABLE IF NOT EXISTS keywords (
	id                TEXT PRIMARY KEY,
	term              TEXT NOT NULL UNIQUE,
	category          TEXT NOT NULL,
	assigned_admin_id TEXT NOT NULL REFERENCES admins(id),
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_messages_event_timestamp ON messages (event_timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_tickets_created_at ON tickets (created_at DESC);
`

// Bootstrap applies the schema. Statements are idempotent, so running at
// every startup is safe.
func (db *DB) Bootstrap(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("bootstrapping schema: %w", err)
	}
	return nil
}
