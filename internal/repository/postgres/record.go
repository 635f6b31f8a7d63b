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

type medicalRecordRepository struct {
	BaseRepository
}

func NewMedicalRecordRepository(db *sqlx.DB) repository.MedicalRecordRepository {
	return &medicalRecordRepository{NewBaseRepository(db)}
}

const recordColumns = `id, profile_id, account_id, title, content, files, field_snapshot, record_type_snapshot, folder_path, date_on_document, created_at, updated_at`

func (r *medicalRecordRepository) Create(ctx context.Context, record *model.MedicalRecord) error {
	query := `
		INSERT INTO medical_records (id, profile_id, account_id, title, content, files, field_snapshot, record_type_snapshot, folder_path, date_on_document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.ProfileID,
		record.AccountID,
		record.Title,
		record.Content,
		record.Files,
		record.Field,
		record.RecordType,
		record.FolderPath,
		record.DateOnDocument,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err := translateErr(err, "medical record"); err != nil {
		return err
	}
	return nil
}

func (r *medicalRecordRepository) Get(ctx context.Context, id uuid.UUID) (*model.MedicalRecord, error) {
	var record model.MedicalRecord
	err := r.db.GetContext(ctx, &record,
		`SELECT `+recordColumns+` FROM medical_records WHERE id = $1`, id)
	if err := translateErr(err, "medical record"); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *medicalRecordRepository) GetByFolderPath(ctx context.Context, path string) (*model.MedicalRecord, error) {
	var record model.MedicalRecord
	err := r.db.GetContext(ctx, &record,
		`SELECT `+recordColumns+` FROM medical_records WHERE folder_path = $1`, path)
	if err := translateErr(err, "medical record"); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *medicalRecordRepository) Update(ctx context.Context, record *model.MedicalRecord) error {
	query := `
		UPDATE medical_records
		SET title = $1, content = $2, files = $3, date_on_document = $4, updated_at = $5
		WHERE id = $6
	`
	record.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		record.Title,
		record.Content,
		record.Files,
		record.DateOnDocument,
		record.UpdatedAt,
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update medical record: %w", err)
	}
	return checkAffected(result, "medical record")
}

func (r *medicalRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM medical_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete medical record: %w", err)
	}
	return checkAffected(result, "medical record")
}

var recordFilterColumns = map[string]bool{
	"account_id":       true,
	"folder_path":      true,
	"date_on_document": true,
	"created_at":       true,
}

func (r *medicalRecordRepository) List(ctx context.Context, profileID *uuid.UUID, filters map[string]string) ([]*model.MedicalRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM medical_records WHERE 1=1`
	args := []interface{}{}
	arg := 1

	if profileID != nil {
		query += fmt.Sprintf(" AND profile_id = $%d", arg)
		args = append(args, *profileID)
		arg++
	}

	clause, filterArgs, err := buildFilterClause(filters, recordFilterColumns, arg)
	if err != nil {
		return nil, err
	}
	query += clause + " ORDER BY date_on_document DESC"
	args = append(args, filterArgs...)

	var records []*model.MedicalRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	return records, nil
}
