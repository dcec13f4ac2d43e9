package mapper

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tickethawk.app/ingest/common/id"
	"tickethawk.app/ingest/internal/model"
)

const (
	// UnknownSender is the sender display name used when the payload carries
	// neither a contact profile nor a wa_id.
	UnknownSender = "Unknown"

	// DefaultChannelName labels messages whose metadata lacks a display
	// phone number.
	DefaultChannelName = "WhatsApp"
)

// WhatsAppMapper normalizes WhatsApp Business webhook payloads
// (entry → changes → value → {metadata, contacts, messages}).
type WhatsAppMapper struct{}

func NewWhatsAppMapper() *WhatsAppMapper {
	return &WhatsAppMapper{}
}

func (m *WhatsAppMapper) Map(body []byte, receivedAt time.Time) ([]model.Message, error) {
	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decoding webhook payload: %w", err)
	}

	messages := make([]model.Message, 0)
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			value := change.Value
			for _, raw := range value.Messages {
				messages = append(messages, m.normalize(raw, value, receivedAt))
			}
		}
	}
	return messages, nil
}

func (m *WhatsAppMapper) normalize(raw json.RawMessage, value changeValue, receivedAt time.Time) model.Message {
	var in incomingMessage
	// A malformed entry still yields a stored event record; the zero struct
	// routes through the synthesized-id branch below.
	_ = json.Unmarshal(raw, &in)

	msg := model.Message{
		SenderID:    in.From,
		Type:        model.MessageType(in.Type),
		ChannelID:   value.Metadata.PhoneNumberID,
		ChannelName: value.Metadata.DisplayPhoneNumber,
		RawPayload:  raw,
		ReceivedAt:  receivedAt,
	}

	msg.ID = in.ID
	if msg.ID == "" {
		// Non-message/system events carry no provider id. Synthesize one and
		// tag the record so it is stored but never keyword-scanned.
		msg.ID = "evt-" + id.NewString()
		msg.Type = model.TypeEvent
	}

	if msg.Type == "" {
		msg.Type = model.TypeText
	}

	if in.Text != nil && in.Text.Body != "" {
		msg.Text = in.Text.Body
	} else {
		msg.Text = "[" + string(msg.Type) + "]"
	}

	if name := senderName(value.Contacts, in.From); name != "" {
		msg.SenderName = &name
	} else {
		unknown := UnknownSender
		msg.SenderName = &unknown
	}

	if msg.ChannelName == "" {
		msg.ChannelName = DefaultChannelName
	}

	if ts, ok := in.Timestamp.Time(); ok {
		msg.Timestamp = ts
	} else {
		msg.Timestamp = receivedAt
	}

	return msg
}

// senderName resolves the display name for a sender: the contact profile name
// when present, the wa_id otherwise. Returns "" when neither exists.
func senderName(contacts []contact, from string) string {
	for _, c := range contacts {
		if c.WaID != "" && c.WaID != from {
			continue
		}
		if c.Profile.Name != "" {
			return c.Profile.Name
		}
	}
	return from
}

// epochSeconds tolerates the provider sending timestamps as either a JSON
// string or a number.
type epochSeconds struct {
	value string
}

func (e *epochSeconds) UnmarshalJSON(data []byte) error {
	e.value = strings.Trim(string(data), `"`)
	return nil
}

func (e epochSeconds) Time() (time.Time, bool) {
	if e.value == "" || e.value == "null" {
		return time.Time{}, false
	}
	secs, err := strconv.ParseInt(e.value, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(secs, 0).UTC(), true
}

// Webhook payload structures, per the WhatsApp Business webhook schema.
type webhookPayload struct {
	Object string  `json:"object"`
	Entry  []entry `json:"entry"`
}

type entry struct {
	ID      string   `json:"id"`
	Changes []change `json:"changes"`
}

type change struct {
	Field string      `json:"field"`
	Value changeValue `json:"value"`
}

type changeValue struct {
	MessagingProduct string `json:"messaging_product"`
	Metadata         struct {
		DisplayPhoneNumber string `json:"display_phone_number"`
		PhoneNumberID      string `json:"phone_number_id"`
	} `json:"metadata"`
	Contacts []contact `json:"contacts,omitempty"`

	// Messages stay raw so each one can be retained verbatim for audit.
	Messages []json.RawMessage `json:"messages,omitempty"`
}

type contact struct {
	WaID    string `json:"wa_id"`
	Profile struct {
		Name string `json:"name"`
	} `json:"profile"`
}

type incomingMessage struct {
	ID        string       `json:"id"`
	From      string       `json:"from"`
	Timestamp epochSeconds `json:"timestamp"`
	Type      string       `json:"type"`
	Text      *struct {
		Body string `json:"body"`
	} `json:"text,omitempty"`
}
