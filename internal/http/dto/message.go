package dto

import (
	"time"

	"tickethawk.app/ingest/internal/model"
)

type MessageResponse struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"sender_id"`
	SenderName  *string   `json:"sender_name,omitempty"`
	Text        string    `json:"text"`
	Type        string    `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	ChannelID   string    `json:"channel_id"`
	ChannelName string    `json:"channel_name"`
	ReceivedAt  time.Time `json:"received_at"`
}

func ToMessageResponse(m *model.Message) *MessageResponse {
	return &MessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		SenderName:  m.SenderName,
		Text:        m.Text,
		Type:        string(m.Type),
		Timestamp:   m.Timestamp,
		ChannelID:   m.ChannelID,
		ChannelName: m.ChannelName,
		ReceivedAt:  m.ReceivedAt,
	}
}

func ToMessageResponses(messages []model.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, *ToMessageResponse(&messages[i]))
	}
	return out
}
