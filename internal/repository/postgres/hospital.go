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

type hospitalRepository struct {
	BaseRepository
}

func NewHospitalRepository(db *sqlx.DB) repository.HospitalRepository {
	return &hospitalRepository{NewBaseRepository(db)}
}

const hospitalColumns = `id, name, doctor_ids, created_at, updated_at`

func (r *hospitalRepository) Create(ctx context.Context, hospital *model.Hospital) error {
	query := `
		INSERT INTO hospitals (id, name, doctor_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if hospital.ID == uuid.Nil {
		hospital.ID = uuid.New()
	}
	hospital.CreatedAt = time.Now()
	hospital.UpdatedAt = hospital.CreatedAt
	if hospital.DoctorIDs == nil {
		hospital.DoctorIDs = model.UUIDList{}
	}

	_, err := r.db.ExecContext(ctx, query,
		hospital.ID,
		hospital.Name,
		hospital.DoctorIDs,
		hospital.CreatedAt,
		hospital.UpdatedAt,
	)
	if err := translateErr(err, "hospital"); err != nil {
		return err
	}
	return nil
}

func (r *hospitalRepository) Get(ctx context.Context, id uuid.UUID) (*model.Hospital, error) {
	var hospital model.Hospital
	err := r.db.GetContext(ctx, &hospital,
		`SELECT `+hospitalColumns+` FROM hospitals WHERE id = $1`, id)
	if err := translateErr(err, "hospital"); err != nil {
		return nil, err
	}
	return &hospital, nil
}

func (r *hospitalRepository) GetByName(ctx context.Context, name string) (*model.Hospital, error) {
	var hospital model.Hospital
	err := r.db.GetContext(ctx, &hospital,
		`SELECT `+hospitalColumns+` FROM hospitals WHERE name = $1`, name)
	if err := translateErr(err, "hospital"); err != nil {
		return nil, err
	}
	return &hospital, nil
}

func (r *hospitalRepository) Update(ctx context.Context, hospital *model.Hospital) error {
	query := `UPDATE hospitals SET name = $1, updated_at = $2 WHERE id = $3`
	hospital.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query, hospital.Name, hospital.UpdatedAt, hospital.ID)
	if err := translateErr(err, "hospital"); err != nil {
		return err
	}
	return checkAffected(result, "hospital")
}

func (r *hospitalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM hospitals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete hospital: %w", err)
	}
	return checkAffected(result, "hospital")
}

var hospitalFilterColumns = map[string]bool{
	"name":       true,
	"created_at": true,
}

func (r *hospitalRepository) List(ctx context.Context, filters map[string]string) ([]*model.Hospital, error) {
	query := `SELECT ` + hospitalColumns + ` FROM hospitals WHERE 1=1`

	clause, args, err := buildFilterClause(filters, hospitalFilterColumns, 1)
	if err != nil {
		return nil, err
	}
	query += clause + " ORDER BY name ASC"

	var hospitals []*model.Hospital
	if err := r.db.SelectContext(ctx, &hospitals, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}
	return hospitals, nil
}

func (r *hospitalRepository) AppendDoctor(ctx context.Context, hospitalID, doctorID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE hospitals SET doctor_ids = array_append(doctor_ids, $2::uuid), updated_at = $3 WHERE id = $1`,
		hospitalID, doctorID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to append doctor reference: %w", err)
	}
	return checkAffected(result, "hospital")
}

func (r *hospitalRepository) RemoveDoctor(ctx context.Context, hospitalID, doctorID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE hospitals SET doctor_ids = array_remove(doctor_ids, $2::uuid), updated_at = $3 WHERE id = $1`,
		hospitalID, doctorID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to remove doctor reference: %w", err)
	}
	return checkAffected(result, "hospital")
}
