package model

import "time"

type TicketStatus string

const (
	TicketStatusNew        TicketStatus = "new"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusClosed     TicketStatus = "closed"
)

// Ticket is created when a message matches a configured keyword. It is keyed
// in storage by SourceMessageID, never by DisplayID: the display id is a
// human-facing label and may be non-deterministic for degenerate message ids.
// At most one ticket exists per source message.
type Ticket struct {
	DisplayID        string       `json:"id"`
	SourceMessageID  string       `json:"source_message_id"`
	Status           TicketStatus `json:"status"`
	Keyword          string       `json:"keyword"`
	ChannelName      string       `json:"channel_name"`
	SenderName       *string      `json:"sender_name,omitempty"`
	SenderID         string       `json:"sender_id"`
	Text             string       `json:"text"`
	MessageTimestamp time.Time    `json:"message_timestamp"`

	// Assignment snapshot taken at creation time; later admin edits do not
	// rewrite existing tickets.
	AssignedAdminID   string `json:"assigned_admin_id"`
	AssignedAdminName string `json:"assigned_admin_name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
