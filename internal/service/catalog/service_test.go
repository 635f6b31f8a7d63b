package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medvault/records-api/internal/model"
	apperrors "github.com/medvault/records-api/pkg/errors"
)

type fakeEntries struct {
	items map[uuid.UUID]*model.CatalogEntry
}

func newFakeEntries() *fakeEntries {
	return &fakeEntries{items: make(map[uuid.UUID]*model.CatalogEntry)}
}

func (f *fakeEntries) Create(_ context.Context, e *model.CatalogEntry) error {
	e.ID = uuid.New()
	f.items[e.ID] = e
	return nil
}

func (f *fakeEntries) Get(_ context.Context, id uuid.UUID) (*model.CatalogEntry, error) {
	e, ok := f.items[id]
	if !ok {
		return nil, apperrors.NotFound("entry")
	}
	return e, nil
}

func (f *fakeEntries) GetByName(_ context.Context, name string) (*model.CatalogEntry, error) {
	for _, e := range f.items {
		if e.Name == name {
			return e, nil
		}
	}
	return nil, apperrors.NotFound("entry")
}

func (f *fakeEntries) Update(_ context.Context, e *model.CatalogEntry) error {
	f.items[e.ID] = e
	return nil
}

func (f *fakeEntries) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

func (f *fakeEntries) List(_ context.Context, _ map[string]string) ([]*model.CatalogEntry, error) {
	out := make([]*model.CatalogEntry, 0, len(f.items))
	for _, e := range f.items {
		out = append(out, e)
	}
	return out, nil
}

func TestCreateEnforcesUniqueName(t *testing.T) {
	svc := NewService(model.CatalogMedication, newFakeEntries())
	ctx := context.Background()

	first, err := svc.Create(ctx, &model.CreateCatalogEntryRequest{Name: "Ibuprofen"})
	require.NoError(t, err)
	assert.Equal(t, "Ibuprofen", first.Name)

	_, err = svc.Create(ctx, &model.CreateCatalogEntryRequest{Name: "Ibuprofen"})
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestUpdateEnforcesUniqueName(t *testing.T) {
	entries := newFakeEntries()
	svc := NewService(model.CatalogField, entries)
	ctx := context.Background()

	a, err := svc.Create(ctx, &model.CreateCatalogEntryRequest{Name: "Cardiology"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &model.CreateCatalogEntryRequest{Name: "Neurology"})
	require.NoError(t, err)

	taken := "Neurology"
	_, err = svc.Update(ctx, a.ID, &model.UpdateCatalogEntryRequest{Name: &taken})
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))

	fresh := "Oncology"
	updated, err := svc.Update(ctx, a.ID, &model.UpdateCatalogEntryRequest{Name: &fresh})
	require.NoError(t, err)
	assert.Equal(t, "Oncology", updated.Name)
}
