package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tickethawk.app/ingest/common/id"
	"tickethawk.app/ingest/internal/model"
	"tickethawk.app/ingest/internal/store"
)

var (
	ErrEmptyTerm       = errors.New("keyword term must not be empty")
	ErrInvalidCategory = errors.New("invalid ticket category")
	ErrUnknownAdmin    = errors.New("assigned admin does not exist")
)

// RegistryService manages the keyword detection registry. Registry edits take
// effect on the next delivery; already-created tickets are never rescanned.
type RegistryService interface {
	ListKeywords(ctx context.Context) ([]model.Keyword, error)
	CreateKeyword(ctx context.Context, term string, category model.TicketCategory, adminID string) (*model.Keyword, error)
	DeleteKeyword(ctx context.Context, keywordID string) error
}

type registryService struct {
	stores StoreProvider
}

func NewRegistryService(stores StoreProvider) RegistryService {
	return &registryService{stores: stores}
}

func (s *registryService) ListKeywords(ctx context.Context) ([]model.Keyword, error) {
	return s.stores.Keywords().List(ctx)
}

func (s *registryService) CreateKeyword(ctx context.Context, term string, category model.TicketCategory, adminID string) (*model.Keyword, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrEmptyTerm
	}

	switch category {
	case model.CategoryUrgent, model.CategorySupport, model.CategoryFeedback, model.CategoryGeneral:
	default:
		return nil, ErrInvalidCategory
	}

	if _, err := s.stores.Admins().GetByID(ctx, adminID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUnknownAdmin
		}
		return nil, fmt.Errorf("resolving admin %s: %w", adminID, err)
	}

	kw := &model.Keyword{
		ID:              "kw-" + id.NewString(),
		Term:            term,
		Category:        category,
		AssignedAdminID: adminID,
	}
	if err := s.stores.Keywords().Create(ctx, kw); err != nil {
		return nil, fmt.Errorf("creating keyword: %w", err)
	}
	return kw, nil
}

func (s *registryService) DeleteKeyword(ctx context.Context, keywordID string) error {
	return s.stores.Keywords().Delete(ctx, keywordID)
}
