package model

type TicketCategory string

const (
	CategoryUrgent   TicketCategory = "Urgent"
	CategorySupport  TicketCategory = "Support"
	CategoryFeedback TicketCategory = "Feedback"
	CategoryGeneral  TicketCategory = "General"
)

// Keyword is one entry in the externally-managed detection registry. Term
// matching is case-insensitive exact-token, not substring.
type Keyword struct {
	ID              string         `json:"id"`
	Term            string         `json:"term"`
	Category        TicketCategory `json:"category"`
	AssignedAdminID string         `json:"assigned_admin_id"`
}
