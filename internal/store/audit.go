package store

import (
	"context"
	"fmt"

	"tickethawk.app/ingest/core/db"
	"tickethawk.app/ingest/internal/model"
)

type auditStore struct {
	q db.Querier
}

func (s *auditStore) Create(ctx context.Context, event *model.AuditEvent) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO audit_events (id, kind, payload, created_at)
		VALUES ($1, $2, $3, now())`,
		event.ID, event.Kind, event.Payload,
	)
	if err != nil {
		return fmt.Errorf("creating audit event: %w", err)
	}
	return nil
}
