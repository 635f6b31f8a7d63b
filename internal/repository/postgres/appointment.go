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

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{NewBaseRepository(db)}
}

const appointmentColumns = `id, time_slot, account_id, profile_id, hospital_id, hospital_name, cancelled, created_at, updated_at`

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (id, time_slot, account_id, profile_id, hospital_id, hospital_name, cancelled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = appointment.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.TimeSlot,
		appointment.AccountID,
		appointment.ProfileID,
		appointment.HospitalID,
		appointment.HospitalName,
		appointment.Cancelled,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) CreateBatch(ctx context.Context, appointments []*model.Appointment) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO appointments (id, time_slot, account_id, profile_id, hospital_id, hospital_name, cancelled, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		now := time.Now()
		for _, apt := range appointments {
			if apt.ID == uuid.Nil {
				apt.ID = uuid.New()
			}
			apt.CreatedAt = now
			apt.UpdatedAt = now
			if _, err := tx.ExecContext(ctx, query,
				apt.ID, apt.TimeSlot, apt.AccountID, apt.ProfileID,
				apt.HospitalID, apt.HospitalName, apt.Cancelled,
				apt.CreatedAt, apt.UpdatedAt,
			); err != nil {
				return fmt.Errorf("failed to create appointment slot: %w", err)
			}
		}
		return nil
	})
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var appointment model.Appointment
	err := r.db.GetContext(ctx, &appointment,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
	if err := translateErr(err, "appointment"); err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments
		SET time_slot = $1, profile_id = $2, hospital_id = $3, hospital_name = $4, cancelled = $5, updated_at = $6
		WHERE id = $7
	`
	appointment.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		appointment.TimeSlot,
		appointment.ProfileID,
		appointment.HospitalID,
		appointment.HospitalName,
		appointment.Cancelled,
		appointment.UpdatedAt,
		appointment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	return checkAffected(result, "appointment")
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return checkAffected(result, "appointment")
}

var appointmentFilterColumns = map[string]bool{
	"time_slot":   true,
	"profile_id":  true,
	"hospital_id": true,
	"cancelled":   true,
	"created_at":  true,
}

func (r *appointmentRepository) List(ctx context.Context, accountID *uuid.UUID, filters map[string]string) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE 1=1`
	args := []interface{}{}
	arg := 1

	if accountID != nil {
		query += fmt.Sprintf(" AND account_id = $%d", arg)
		args = append(args, *accountID)
		arg++
	}

	clause, filterArgs, err := buildFilterClause(filters, appointmentFilterColumns, arg)
	if err != nil {
		return nil, err
	}
	query += clause + " ORDER BY time_slot ASC"
	args = append(args, filterArgs...)

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}
