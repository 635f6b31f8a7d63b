package prescription

import (
	"context"

	"github.com/google/uuid"

	"github.com/medvault/records-api/internal/model"
	"github.com/medvault/records-api/internal/repository"
	apperrors "github.com/medvault/records-api/pkg/errors"
)

type Service struct {
	prescriptions   repository.PrescriptionRepository
	profiles        repository.ProfileRepository
	specializations repository.CatalogRepository
	medications     repository.CatalogRepository
}

func NewService(prescriptions repository.PrescriptionRepository, profiles repository.ProfileRepository,
	specializations, medications repository.CatalogRepository) *Service {
	return &Service{
		prescriptions:   prescriptions,
		profiles:        profiles,
		specializations: specializations,
		medications:     medications,
	}
}

// Create resolves every referenced medication, snapshots its current name
// into the entry, and snapshots the specialization.
func (s *Service) Create(ctx context.Context, principal *model.Principal, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	profile, err := s.profiles.Get(ctx, req.ProfileID)
	if err != nil {
		return nil, apperrors.ReferenceNotFound("profile")
	}
	if !principal.Level.AtLeast(model.LevelHospital) && !principal.ProfileIDs.Contains(profile.ID) {
		return nil, apperrors.Forbidden("profile does not belong to caller")
	}

	specialization, err := s.specializations.Get(ctx, req.SpecializationID)
	if err != nil {
		return nil, apperrors.ReferenceNotFound("specialization")
	}

	medications, err := s.resolveMedications(ctx, req.Medications)
	if err != nil {
		return nil, err
	}

	if existing, _ := s.prescriptions.GetByFolderPath(ctx, req.FolderPath); existing != nil {
		return nil, apperrors.Conflict("folder path already in use")
	}

	prescription := &model.Prescription{
		ProfileID:      profile.ID,
		AccountID:      principal.AccountID,
		Content:        req.Content,
		Files:          req.Files,
		Specialization: model.EntitySnapshot{ID: specialization.ID, Name: specialization.Name},
		Medications:    medications,
		FolderPath:     req.FolderPath,
		DateOnDocument: req.DateOnDocument,
	}
	if err := s.prescriptions.Create(ctx, prescription); err != nil {
		return nil, err
	}

	if err := s.profiles.AppendPrescription(ctx, profile.ID, prescription.ID); err != nil {
		return nil, err
	}
	return prescription, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error) {
	return s.prescriptions.Get(ctx, id)
}

// List requires non-admin callers to name a profile; user-tier callers may
// only name their own.
func (s *Service) List(ctx context.Context, principal *model.Principal, profileID *uuid.UUID, filters map[string]string) ([]*model.Prescription, error) {
	if profileID == nil {
		if !principal.Level.AtLeast(model.LevelAdmin) {
			return nil, apperrors.Validation("profile_id is required")
		}
		return s.prescriptions.List(ctx, nil, filters)
	}

	if !principal.Level.AtLeast(model.LevelHospital) && !principal.ProfileIDs.Contains(*profileID) {
		return nil, apperrors.Forbidden("profile does not belong to caller")
	}
	return s.prescriptions.List(ctx, profileID, filters)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdatePrescriptionRequest) (*model.Prescription, error) {
	prescription, err := s.prescriptions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Content != nil {
		prescription.Content = *req.Content
	}
	if req.Files != nil {
		prescription.Files = req.Files
	}
	if req.Medications != nil {
		medications, err := s.resolveMedications(ctx, req.Medications)
		if err != nil {
			return nil, err
		}
		prescription.Medications = medications
	}
	if req.DateOnDocument != nil {
		prescription.DateOnDocument = *req.DateOnDocument
	}

	if err := s.prescriptions.Update(ctx, prescription); err != nil {
		return nil, err
	}
	return prescription, nil
}

// Delete detaches the prescription from its profile before removing it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	prescription, err := s.prescriptions.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.profiles.RemovePrescription(ctx, prescription.ProfileID, prescription.ID); err != nil {
		return err
	}
	return s.prescriptions.Delete(ctx, id)
}

func (s *Service) resolveMedications(ctx context.Context, entries model.MedicationEntryList) (model.MedicationEntryList, error) {
	resolved := make(model.MedicationEntryList, 0, len(entries))
	for _, entry := range entries {
		medication, err := s.medications.Get(ctx, entry.MedicationID)
		if err != nil {
			return nil, apperrors.ReferenceNotFound("medication")
		}
		entry.Name = medication.Name
		resolved = append(resolved, entry)
	}
	return resolved, nil
}
