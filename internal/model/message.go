package model

import (
	"encoding/json"
	"time"
)

// MessageType classifies what the provider delivered. Anything that is not a
// real inbound chat message (status updates, system notifications) is stored
// as TypeEvent and never scanned for keywords.
type MessageType string

const (
	TypeText  MessageType = "text"
	TypeEvent MessageType = "event"
)

// Message is the schema-stable internal form of one inbound chat message,
// independent of the provider's payload shape. ID is the provider-assigned
// message id and is the idempotency key: re-delivery of the same id merges
// into the existing record.
type Message struct {
	ID          string          `json:"id"`
	SenderID    string          `json:"sender_id"`
	SenderName  *string         `json:"sender_name,omitempty"`
	Text        string          `json:"text"`
	Type        MessageType     `json:"type"`
	Timestamp   time.Time       `json:"timestamp"` // event time, provider-declared
	ChannelID   string          `json:"channel_id"`
	ChannelName string          `json:"channel_name"`
	RawPayload  json.RawMessage `json:"raw_payload,omitempty"`
	ReceivedAt  time.Time       `json:"received_at"` // server-stamped ingestion time
}

// BestTimestamp is the ordering key for newest-first listings: event time when
// the provider declared one, ingestion time otherwise.
func (m Message) BestTimestamp() time.Time {
	if !m.Timestamp.IsZero() {
		return m.Timestamp
	}
	return m.ReceivedAt
}
