package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/medvault/records-api/internal/model"
	"github.com/medvault/records-api/internal/repository"
	apperrors "github.com/medvault/records-api/pkg/errors"
)

// Service manages one reference catalog (fields, medications, record types,
// specializations, purposes). One instance per catalog kind.
type Service struct {
	kind    model.CatalogKind
	entries repository.CatalogRepository
}

func NewService(kind model.CatalogKind, entries repository.CatalogRepository) *Service {
	return &Service{kind: kind, entries: entries}
}

func (s *Service) Kind() model.CatalogKind { return s.kind }

func (s *Service) Create(ctx context.Context, req *model.CreateCatalogEntryRequest) (*model.CatalogEntry, error) {
	if existing, _ := s.entries.GetByName(ctx, req.Name); existing != nil {
		return nil, apperrors.Conflict("name already in use")
	}

	entry := &model.CatalogEntry{Name: req.Name}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.CatalogEntry, error) {
	return s.entries.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filters map[string]string) ([]*model.CatalogEntry, error) {
	return s.entries.List(ctx, filters)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateCatalogEntryRequest) (*model.CatalogEntry, error) {
	entry, err := s.entries.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != entry.Name {
		if existing, _ := s.entries.GetByName(ctx, *req.Name); existing != nil {
			return nil, apperrors.Conflict("name already in use")
		}
		entry.Name = *req.Name
	}

	if err := s.entries.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.entries.Delete(ctx, id)
}
