package dto

import (
	"time"

	"tickethawk.app/ingest/internal/model"
)

type TicketResponse struct {
	ID                string    `json:"id"`
	SourceMessageID   string    `json:"source_message_id"`
	Status            string    `json:"status"`
	Keyword           string    `json:"keyword"`
	ChannelName       string    `json:"channel_name"`
	SenderName        *string   `json:"sender_name,omitempty"`
	SenderID          string    `json:"sender_id"`
	Text              string    `json:"text"`
	MessageTimestamp  time.Time `json:"message_timestamp"`
	AssignedAdminID   string    `json:"assigned_admin_id"`
	AssignedAdminName string    `json:"assigned_admin_name"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func ToTicketResponse(t *model.Ticket) *TicketResponse {
	return &TicketResponse{
		ID:                t.DisplayID,
		SourceMessageID:   t.SourceMessageID,
		Status:            string(t.Status),
		Keyword:           t.Keyword,
		ChannelName:       t.ChannelName,
		SenderName:        t.SenderName,
		SenderID:          t.SenderID,
		Text:              t.Text,
		MessageTimestamp:  t.MessageTimestamp,
		AssignedAdminID:   t.AssignedAdminID,
		AssignedAdminName: t.AssignedAdminName,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

func ToTicketResponses(tickets []model.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, *ToTicketResponse(&tickets[i]))
	}
	return out
}
