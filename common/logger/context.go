package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields holds structured fields that flow through the context and are
// attached to every log record emitted while handling a request. Setting them
// once at the top of the pipeline means downstream code never has to repeat
// message_id etc. on each log call.
type LogFields struct {
	MessageID *string // provider message id being processed
	TicketID  *string // derived ticket display id, once known
	ChannelID *string // source phone-number-id
	EventType *string // webhook field / message type
	Component string  // component name, e.g. "ingest.mapper"
}

// WithLogFields enriches ctx with structured log fields. Repeated calls merge,
// newer non-nil/non-empty values winning.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	merged := mergeFields(GetLogFields(ctx), fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from ctx, zero value if unset.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, update LogFields) LogFields {
	result := existing
	if update.MessageID != nil {
		result.MessageID = update.MessageID
	}
	if update.TicketID != nil {
		result.TicketID = update.TicketID
	}
	if update.ChannelID != nil {
		result.ChannelID = update.ChannelID
	}
	if update.EventType != nil {
		result.EventType = update.EventType
	}
	if update.Component != "" {
		result.Component = update.Component
	}
	return result
}

// Ptr returns a pointer to v, for inline LogFields construction.
func Ptr[T any](v T) *T {
	return &v
}
