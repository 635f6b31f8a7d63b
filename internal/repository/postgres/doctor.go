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

type doctorRepository struct {
	BaseRepository
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{NewBaseRepository(db)}
}

const doctorColumns = `id, name, qualifications, practicing_since, hospital_id, specialization_id, created_at, updated_at`

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (id, name, qualifications, practicing_since, hospital_id, specialization_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if doctor.ID == uuid.Nil {
		doctor.ID = uuid.New()
	}
	doctor.CreatedAt = time.Now()
	doctor.UpdatedAt = doctor.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		doctor.ID,
		doctor.Name,
		doctor.Qualifications,
		doctor.PracticingSince,
		doctor.HospitalID,
		doctor.SpecializationID,
		doctor.CreatedAt,
		doctor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor,
		`SELECT `+doctorColumns+` FROM doctors WHERE id = $1`, id)
	if err := translateErr(err, "doctor"); err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	query := `
		UPDATE doctors
		SET name = $1, qualifications = $2, practicing_since = $3, hospital_id = $4, specialization_id = $5, updated_at = $6
		WHERE id = $7
	`
	doctor.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		doctor.Name,
		doctor.Qualifications,
		doctor.PracticingSince,
		doctor.HospitalID,
		doctor.SpecializationID,
		doctor.UpdatedAt,
		doctor.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}
	return checkAffected(result, "doctor")
}

func (r *doctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	return checkAffected(result, "doctor")
}

var doctorFilterColumns = map[string]bool{
	"name":              true,
	"practicing_since":  true,
	"specialization_id": true,
	"created_at":        true,
}

func (r *doctorRepository) List(ctx context.Context, hospitalID *uuid.UUID, filters map[string]string) ([]*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE 1=1`
	args := []interface{}{}
	arg := 1

	if hospitalID != nil {
		query += fmt.Sprintf(" AND hospital_id = $%d", arg)
		args = append(args, *hospitalID)
		arg++
	}

	clause, filterArgs, err := buildFilterClause(filters, doctorFilterColumns, arg)
	if err != nil {
		return nil, err
	}
	query += clause + " ORDER BY name ASC"
	args = append(args, filterArgs...)

	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}
