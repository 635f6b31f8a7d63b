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

type prescriptionRepository struct {
	BaseRepository
}

func NewPrescriptionRepository(db *sqlx.DB) repository.PrescriptionRepository {
	return &prescriptionRepository{NewBaseRepository(db)}
}

const prescriptionColumns = `id, profile_id, account_id, content, files, specialization_snapshot, medications, folder_path, date_on_document, created_at, updated_at`

func (r *prescriptionRepository) Create(ctx context.Context, prescription *model.Prescription) error {
	query := `
		INSERT INTO prescriptions (id, profile_id, account_id, content, files, specialization_snapshot, medications, folder_path, date_on_document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	if prescription.ID == uuid.Nil {
		prescription.ID = uuid.New()
	}
	prescription.CreatedAt = time.Now()
	prescription.UpdatedAt = prescription.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		prescription.ID,
		prescription.ProfileID,
		prescription.AccountID,
		prescription.Content,
		prescription.Files,
		prescription.Specialization,
		prescription.Medications,
		prescription.FolderPath,
		prescription.DateOnDocument,
		prescription.CreatedAt,
		prescription.UpdatedAt,
	)
	if err := translateErr(err, "prescription"); err != nil {
		return err
	}
	return nil
}

func (r *prescriptionRepository) Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error) {
	var prescription model.Prescription
	err := r.db.GetContext(ctx, &prescription,
		`SELECT `+prescriptionColumns+` FROM prescriptions WHERE id = $1`, id)
	if err := translateErr(err, "prescription"); err != nil {
		return nil, err
	}
	return &prescription, nil
}

func (r *prescriptionRepository) GetByFolderPath(ctx context.Context, path string) (*model.Prescription, error) {
	var prescription model.Prescription
	err := r.db.GetContext(ctx, &prescription,
		`SELECT `+prescriptionColumns+` FROM prescriptions WHERE folder_path = $1`, path)
	if err := translateErr(err, "prescription"); err != nil {
		return nil, err
	}
	return &prescription, nil
}

func (r *prescriptionRepository) Update(ctx context.Context, prescription *model.Prescription) error {
	query := `
		UPDATE prescriptions
		SET content = $1, files = $2, medications = $3, date_on_document = $4, updated_at = $5
		WHERE id = $6
	`
	prescription.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		prescription.Content,
		prescription.Files,
		prescription.Medications,
		prescription.DateOnDocument,
		prescription.UpdatedAt,
		prescription.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update prescription: %w", err)
	}
	return checkAffected(result, "prescription")
}

func (r *prescriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM prescriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete prescription: %w", err)
	}
	return checkAffected(result, "prescription")
}

var prescriptionFilterColumns = map[string]bool{
	"account_id":       true,
	"folder_path":      true,
	"date_on_document": true,
	"created_at":       true,
}

func (r *prescriptionRepository) List(ctx context.Context, profileID *uuid.UUID, filters map[string]string) ([]*model.Prescription, error) {
	query := `SELECT ` + prescriptionColumns + ` FROM prescriptions WHERE 1=1`
	args := []interface{}{}
	arg := 1

	if profileID != nil {
		query += fmt.Sprintf(" AND profile_id = $%d", arg)
		args = append(args, *profileID)
		arg++
	}

	clause, filterArgs, err := buildFilterClause(filters, prescriptionFilterColumns, arg)
	if err != nil {
		return nil, err
	}
	query += clause + " ORDER BY date_on_document DESC"
	args = append(args, filterArgs...)

	var prescriptions []*model.Prescription
	if err := r.db.SelectContext(ctx, &prescriptions, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}
