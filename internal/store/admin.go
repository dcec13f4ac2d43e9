package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tickethawk.app/ingest/core/db"
	"tickethawk.app/ingest/internal/model"
)

type adminStore struct {
	q db.Querier
}

func (s *adminStore) GetByID(ctx context.Context, id string) (*model.Admin, error) {
	var admin model.Admin
	err := s.q.QueryRow(ctx, `
		SELECT id, name, email, role, avatar_url
		FROM admins WHERE id = $1`, id).Scan(
		&admin.ID, &admin.Name, &admin.Email, &admin.Role, &admin.AvatarURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (s *adminStore) List(ctx context.Context) ([]model.Admin, error) {
	rows, err := s.q.Query(ctx, `
		SELECT id, name, email, role, avatar_url
		FROM admins
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing admins: %w", err)
	}
	defer rows.Close()

	var result []model.Admin
	for rows.Next() {
		var admin model.Admin
		if err := rows.Scan(&admin.ID, &admin.Name, &admin.Email, &admin.Role, &admin.AvatarURL); err != nil {
			return nil, err
		}
		result = append(result, admin)
	}
	return result, rows.Err()
}

func (s *adminStore) Create(ctx context.Context, admin *model.Admin) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO admins (id, name, email, role, avatar_url)
		VALUES ($1, $2, $3, $4, $5)`,
		admin.ID, admin.Name, admin.Email, admin.Role, admin.AvatarURL,
	)
	if err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}
	return nil
}
