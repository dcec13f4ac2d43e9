package model

type AdminRole string

const (
	RoleAdmin  AdminRole = "Admin"
	RoleEditor AdminRole = "Editor"
	RoleViewer AdminRole = "Viewer"
)

// Admin is read-only from the ingest pipeline's perspective; keywords
// reference admins for ticket assignment.
type Admin struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      AdminRole `json:"role"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
}
