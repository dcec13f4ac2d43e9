package dto

import "tickethawk.app/ingest/internal/model"

type AdminResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

func ToAdminResponse(a *model.Admin) *AdminResponse {
	return &AdminResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      string(a.Role),
		AvatarURL: a.AvatarURL,
	}
}

func ToAdminResponses(admins []model.Admin) []AdminResponse {
	out := make([]AdminResponse, 0, len(admins))
	for i := range admins {
		out = append(out, *ToAdminResponse(&admins[i]))
	}
	return out
}
