package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medvault/records-api/internal/model"
	"github.com/medvault/records-api/internal/repository"
)

// catalogRepository serves one lookup table; the five catalog kinds share the
// same shape so a single implementation is parameterized by table name.
type catalogRepository struct {
	BaseRepository
	table    string
	resource string
}

func NewCatalogRepository(db *sqlx.DB, kind model.CatalogKind) repository.CatalogRepository {
	return &catalogRepository{
		BaseRepository: NewBaseRepository(db),
		table:          string(kind) + "s",
		resource:       string(kind),
	}
}

func (r *catalogRepository) Create(ctx context.Context, entry *model.CatalogEntry) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`, r.table)
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt

	_, err := r.db.ExecContext(ctx, query, entry.ID, entry.Name, entry.CreatedAt, entry.UpdatedAt)
	if err := translateErr(err, r.resource); err != nil {
		return err
	}
	return nil
}

func (r *catalogRepository) Get(ctx context.Context, id uuid.UUID) (*model.CatalogEntry, error) {
	var entry model.CatalogEntry
	query := fmt.Sprintf(`SELECT id, name, created_at, updated_at FROM %s WHERE id = $1`, r.table)
	err := r.db.GetContext(ctx, &entry, query, id)
	if err := translateErr(err, r.resource); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *catalogRepository) GetByName(ctx context.Context, name string) (*model.CatalogEntry, error) {
	var entry model.CatalogEntry
	query := fmt.Sprintf(`SELECT id, name, created_at, updated_at FROM %s WHERE name = $1`, r.table)
	err := r.db.GetContext(ctx, &entry, query, name)
	if err := translateErr(err, r.resource); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *catalogRepository) Update(ctx context.Context, entry *model.CatalogEntry) error {
	query := fmt.Sprintf(`UPDATE %s SET name = $1, updated_at = $2 WHERE id = $3`, r.table)
	entry.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query, entry.Name, entry.UpdatedAt, entry.ID)
	if err := translateErr(err, r.resource); err != nil {
		return err
	}
	return checkAffected(result, r.resource)
}

func (r *catalogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", r.resource, err)
	}
	return checkAffected(result, r.resource)
}

var catalogFilterColumns = map[string]bool{
	"name":       true,
	"created_at": true,
}

func (r *catalogRepository) List(ctx context.Context, filters map[string]string) ([]*model.CatalogEntry, error) {
	query := fmt.Sprintf(`SELECT id, name, created_at, updated_at FROM %s WHERE 1=1`, r.table)

	clause, args, err := buildFilterClause(filters, catalogFilterColumns, 1)
	if err != nil {
		return nil, err
	}
	query += clause + " ORDER BY name ASC"

	var entries []*model.CatalogEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list %s entries: %w", r.resource, err)
	}
	return entries, nil
}
