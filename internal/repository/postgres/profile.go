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

type profileRepository struct {
	BaseRepository
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{NewBaseRepository(db)}
}

const profileColumns = `id, name, gender, date_of_birth, phone, account_id, appointment_ids, record_ids, prescription_ids, created_at, updated_at`

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) error {
	query := `
		INSERT INTO profiles (id, name, gender, date_of_birth, phone, account_id, appointment_ids, record_ids, prescription_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	for _, l := range []*model.UUIDList{&profile.AppointmentIDs, &profile.RecordIDs, &profile.PrescriptionIDs} {
		if *l == nil {
			*l = model.UUIDList{}
		}
	}

	_, err := r.db.ExecContext(ctx, query,
		profile.ID,
		profile.Name,
		profile.Gender,
		profile.DateOfBirth,
		profile.Phone,
		profile.AccountID,
		profile.AppointmentIDs,
		profile.RecordIDs,
		profile.PrescriptionIDs,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (r *profileRepository) Get(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.GetContext(ctx, &profile,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	if err := translateErr(err, "profile"); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *model.Profile) error {
	query := `
		UPDATE profiles
		SET name = $1, gender = $2, date_of_birth = $3, phone = $4, updated_at = $5
		WHERE id = $6
	`
	profile.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		profile.Name,
		profile.Gender,
		profile.DateOfBirth,
		profile.Phone,
		profile.UpdatedAt,
		profile.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return checkAffected(result, "profile")
}

func (r *profileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return checkAffected(result, "profile")
}

var profileFilterColumns = map[string]bool{
	"name":          true,
	"gender":        true,
	"date_of_birth": true,
	"created_at":    true,
}

func (r *profileRepository) List(ctx context.Context, accountID *uuid.UUID, filters map[string]string) ([]*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE 1=1`
	args := []interface{}{}
	arg := 1

	if accountID != nil {
		query += fmt.Sprintf(" AND account_id = $%d", arg)
		args = append(args, *accountID)
		arg++
	}

	clause, filterArgs, err := buildFilterClause(filters, profileFilterColumns, arg)
	if err != nil {
		return nil, err
	}
	query += clause + " ORDER BY created_at DESC"
	args = append(args, filterArgs...)

	var profiles []*model.Profile
	if err := r.db.SelectContext(ctx, &profiles, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

func (r *profileRepository) AppendAppointment(ctx context.Context, profileID, appointmentID uuid.UUID) error {
	return r.listOp(ctx, profileID, `appointment_ids = array_append(appointment_ids, $2::uuid)`, appointmentID)
}

func (r *profileRepository) RemoveAppointment(ctx context.Context, profileID, appointmentID uuid.UUID) error {
	return r.listOp(ctx, profileID, `appointment_ids = array_remove(appointment_ids, $2::uuid)`, appointmentID)
}

// ReplaceAppointment swaps oldID for newID in place so other entries keep
// their position.
func (r *profileRepository) ReplaceAppointment(ctx context.Context, profileID, oldID, newID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET appointment_ids = array_replace(appointment_ids, $2::uuid, $3::uuid), updated_at = $4 WHERE id = $1`,
		profileID, oldID, newID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to replace appointment reference: %w", err)
	}
	return checkAffected(result, "profile")
}

func (r *profileRepository) AppendRecord(ctx context.Context, profileID, recordID uuid.UUID) error {
	return r.listOp(ctx, profileID, `record_ids = array_append(record_ids, $2::uuid)`, recordID)
}

func (r *profileRepository) RemoveRecord(ctx context.Context, profileID, recordID uuid.UUID) error {
	return r.listOp(ctx, profileID, `record_ids = array_remove(record_ids, $2::uuid)`, recordID)
}

func (r *profileRepository) AppendPrescription(ctx context.Context, profileID, prescriptionID uuid.UUID) error {
	return r.listOp(ctx, profileID, `prescription_ids = array_append(prescription_ids, $2::uuid)`, prescriptionID)
}

func (r *profileRepository) RemovePrescription(ctx context.Context, profileID, prescriptionID uuid.UUID) error {
	return r.listOp(ctx, profileID, `prescription_ids = array_remove(prescription_ids, $2::uuid)`, prescriptionID)
}

func (r *profileRepository) listOp(ctx context.Context, profileID uuid.UUID, setClause string, refID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET `+setClause+`, updated_at = $3 WHERE id = $1`,
		profileID, refID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update profile references: %w", err)
	}
	return checkAffected(result, "profile")
}
