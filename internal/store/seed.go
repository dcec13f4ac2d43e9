package store

import (
	"context"
	"fmt"

	"tickethawk.app/ingest/internal/model"
)

// Starter keyword→admin assignment table, inserted once when the registry is
// empty. It lives here as seed data rather than in the ingestion path, so the
// live registry can be managed through the API without touching pipeline code.
var seedAdmins = []model.Admin{
	{ID: "admin-1", Name: "Alex Johnson", Email: "alex@example.com", Role: model.RoleAdmin},
	{ID: "admin-2", Name: "Maria Garcia", Email: "maria@example.com", Role: model.RoleEditor},
	{ID: "admin-3", Name: "Dev Team", Email: "devteam@example.com", Role: model.RoleEditor},
	{ID: "admin-4", Name: "Support Team", Email: "support@example.com", Role: model.RoleViewer},
}

var seedKeywords = []model.Keyword{
	{ID: "kw-1", Term: "urgent", Category: model.CategoryUrgent, AssignedAdminID: "admin-1"},
	{ID: "kw-2", Term: "help", Category: model.CategorySupport, AssignedAdminID: "admin-4"},
	{ID: "kw-3", Term: "broken", Category: model.CategoryUrgent, AssignedAdminID: "admin-3"},
	{ID: "kw-4", Term: "feedback", Category: model.CategoryFeedback, AssignedAdminID: "admin-2"},
	{ID: "kw-5", Term: "issue", Category: model.CategorySupport, AssignedAdminID: "admin-4"},
	{ID: "kw-6", Term: "request", Category: model.CategoryGeneral, AssignedAdminID: "admin-2"},
}

// SeedRegistry inserts the default admins and keywords when the registry is
// empty. No-op otherwise.
func (s *Stores) SeedRegistry(ctx context.Context) error {
	count, err := s.Keywords().Count(ctx)
	if err != nil {
		return fmt.Errorf("checking registry: %w", err)
	}
	if count > 0 {
		return nil
	}

	admins := s.Admins()
	for i := range seedAdmins {
		if err := admins.Create(ctx, &seedAdmins[i]); err != nil {
			return fmt.Errorf("seeding admins: %w", err)
		}
	}

	keywords := s.Keywords()
	for i := range seedKeywords {
		if err := keywords.Create(ctx, &seedKeywords[i]); err != nil {
			return fmt.Errorf("seeding keywords: %w", err)
		}
	}

	return nil
}
