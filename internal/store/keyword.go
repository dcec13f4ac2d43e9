package store

import (
	"context"
	"fmt"

	"tickethawk.app/ingest/core/db"
	"tickethawk.app/ingest/internal/model"
)

type keywordStore struct {
	q db.Querier
}

// List returns the registry in creation order; the matcher relies on this
// order to break ties between duplicate terms.
func (s *keywordStore) List(ctx context.Context) ([]model.Keyword, error) {
	rows, err := s.q.Query(ctx, `
		SELECT id, term, category, assigned_admin_id
		FROM keywords
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing keywords: %w", err)
	}
	defer rows.Close()

	var result []model.Keyword
	for rows.Next() {
		var kw model.Keyword
		if err := rows.Scan(&kw.ID, &kw.Term, &kw.Category, &kw.AssignedAdminID); err != nil {
			return nil, err
		}
		result = append(result, kw)
	}
	return result, rows.Err()
}

func (s *keywordStore) Create(ctx context.Context, kw *model.Keyword) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO keywords (id, term, category, assigned_admin_id)
		VALUES ($1, $2, $3, $4)`,
		kw.ID, kw.Term, kw.Category, kw.AssignedAdminID,
	)
	if err != nil {
		return fmt.Errorf("creating keyword: %w", err)
	}
	return nil
}

func (s *keywordStore) Delete(ctx context.Context, id string) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM keywords WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting keyword: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *keywordStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.q.QueryRow(ctx, `SELECT count(*) FROM keywords`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting keywords: %w", err)
	}
	return count, nil
}
