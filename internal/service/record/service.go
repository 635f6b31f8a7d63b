package record

import (
	"context"

	"github.com/google/uuid"

	"github.com/medvault/records-api/internal/model"
	"github.com/medvault/records-api/internal/repository"
	apperrors "github.com/medvault/records-api/pkg/errors"
)

type Service struct {
	records     repository.MedicalRecordRepository
	profiles    repository.ProfileRepository
	fields      repository.CatalogRepository
	recordTypes repository.CatalogRepository
}

func NewService(records repository.MedicalRecordRepository, profiles repository.ProfileRepository,
	fields, recordTypes repository.CatalogRepository) *Service {
	return &Service{
		records:     records,
		profiles:    profiles,
		fields:      fields,
		recordTypes: recordTypes,
	}
}

// Create snapshots the referenced field and record type at write time. The
// folder path must be unique across records.
func (s *Service) Create(ctx context.Context, principal *model.Principal, req *model.CreateMedicalRecordRequest) (*model.MedicalRecord, error) {
	profile, err := s.profiles.Get(ctx, req.ProfileID)
	if err != nil {
		return nil, apperrors.ReferenceNotFound("profile")
	}
	if !principal.Level.AtLeast(model.LevelHospital) && !principal.ProfileIDs.Contains(profile.ID) {
		return nil, apperrors.Forbidden("profile does not belong to caller")
	}

	field, err := s.fields.Get(ctx, req.FieldID)
	if err != nil {
		return nil, apperrors.ReferenceNotFound("field")
	}
	recordType, err := s.recordTypes.Get(ctx, req.RecordTypeID)
	if err != nil {
		return nil, apperrors.ReferenceNotFound("record type")
	}

	if existing, _ := s.records.GetByFolderPath(ctx, req.FolderPath); existing != nil {
		return nil, apperrors.Conflict("folder path already in use")
	}

	record := &model.MedicalRecord{
		ProfileID:      profile.ID,
		AccountID:      principal.AccountID,
		Title:          req.Title,
		Content:        req.Content,
		Files:          req.Files,
		Field:          model.EntitySnapshot{ID: field.ID, Name: field.Name},
		RecordType:     model.EntitySnapshot{ID: recordType.ID, Name: recordType.Name},
		FolderPath:     req.FolderPath,
		DateOnDocument: req.DateOnDocument,
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, err
	}

	if err := s.profiles.AppendRecord(ctx, profile.ID, record.ID); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.MedicalRecord, error) {
	return s.records.Get(ctx, id)
}

// List requires non-admin callers to name a profile; user-tier callers may
// only name their own.
func (s *Service) List(ctx context.Context, principal *model.Principal, profileID *uuid.UUID, filters map[string]string) ([]*model.MedicalRecord, error) {
	if profileID == nil {
		if !principal.Level.AtLeast(model.LevelAdmin) {
			return nil, apperrors.Validation("profile_id is required")
		}
		return s.records.List(ctx, nil, filters)
	}

	if !principal.Level.AtLeast(model.LevelHospital) && !principal.ProfileIDs.Contains(*profileID) {
		return nil, apperrors.Forbidden("profile does not belong to caller")
	}
	return s.records.List(ctx, profileID, filters)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateMedicalRecordRequest) (*model.MedicalRecord, error) {
	record, err := s.records.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		record.Title = *req.Title
	}
	if req.Content != nil {
		record.Content = *req.Content
	}
	if req.Files != nil {
		record.Files = req.Files
	}
	if req.DateOnDocument != nil {
		record.DateOnDocument = *req.DateOnDocument
	}

	if err := s.records.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Delete detaches the record from its profile before removing it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	record, err := s.records.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.profiles.RemoveRecord(ctx, record.ProfileID, record.ID); err != nil {
		return err
	}
	return s.records.Delete(ctx, id)
}
