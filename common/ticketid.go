package common

import (
	"crypto/rand"
	"regexp"
	"strings"
)

const (
	ticketIDPrefix = "TKT-"
	ticketIDLen    = 6
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// TicketDisplayID derives a human-readable ticket label from a provider
// message id: the last 6 alphanumeric characters, uppercased, prefixed with
// "TKT-". Provider ids like "wamid.HBgLMTU1NTUxMjM0NTY=" carry enough entropy
// in their tail to make these labels practically unique.
//
// If the id yields fewer than 6 alphanumeric characters the tail is padded
// with random characters, so the label is NOT deterministic for degenerate
// ids. That is acceptable: this is a display label only — the idempotency key
// for ticket storage is always the raw source message id.
func TicketDisplayID(messageID string) string {
	stripped := nonAlphanumeric.ReplaceAllString(messageID, "")
	tail := strings.ToUpper(stripped)
	if len(tail) > ticketIDLen {
		tail = tail[len(tail)-ticketIDLen:]
	}
	for len(tail) < ticketIDLen {
		tail += randomAlphanumeric()
	}
	return ticketIDPrefix + tail
}

const alphanumerics = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomAlphanumeric() string {
	var b [1]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "0"
	}
	return string(alphanumerics[int(b[0])%len(alphanumerics)])
}
