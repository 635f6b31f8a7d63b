package profile

import (
	"context"

	"github.com/google/uuid"

	"github.com/medvault/records-api/internal/model"
	"github.com/medvault/records-api/internal/repository"
	apperrors "github.com/medvault/records-api/pkg/errors"
)

type Service struct {
	profiles repository.ProfileRepository
	accounts repository.AccountRepository
}

func NewService(profiles repository.ProfileRepository, accounts repository.AccountRepository) *Service {
	return &Service{profiles: profiles, accounts: accounts}
}

// Create attaches a new patient profile to an account. Non-privileged callers
// always create under their own account; clinician and admin callers may name
// any user-tier account.
func (s *Service) Create(ctx context.Context, principal *model.Principal, req *model.CreateProfileRequest) (*model.Profile, error) {
	targetID := principal.AccountID
	if req.AccountID != nil && *req.AccountID != principal.AccountID {
		if !principal.Level.AtLeast(model.LevelHospital) {
			return nil, apperrors.Forbidden("cannot create profiles for other accounts")
		}
		targetID = *req.AccountID
	}

	account, err := s.accounts.Get(ctx, targetID)
	if err != nil {
		return nil, apperrors.ReferenceNotFound("account")
	}
	if account.Level != model.LevelUser {
		return nil, apperrors.Validation("profiles belong to user-tier accounts")
	}

	profile := &model.Profile{
		Name:            req.Name,
		Gender:          req.Gender,
		DateOfBirth:     req.DateOfBirth,
		Phone:           req.Phone,
		AccountID:       account.ID,
		AppointmentIDs:  model.UUIDList{},
		RecordIDs:       model.UUIDList{},
		PrescriptionIDs: model.UUIDList{},
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}

	if err := s.accounts.AppendProfile(ctx, account.ID, profile.ID); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	return s.profiles.Get(ctx, id)
}

// List scopes results to the caller's own account unless privileged.
func (s *Service) List(ctx context.Context, principal *model.Principal, accountID *uuid.UUID, filters map[string]string) ([]*model.Profile, error) {
	if !principal.Level.AtLeast(model.LevelHospital) {
		own := principal.AccountID
		accountID = &own
	}
	return s.profiles.List(ctx, accountID, filters)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateProfileRequest) (*model.Profile, error) {
	profile, err := s.profiles.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Gender != nil {
		profile.Gender = *req.Gender
	}
	if req.DateOfBirth != nil {
		profile.DateOfBirth = *req.DateOfBirth
	}
	if req.Phone != nil {
		profile.Phone = req.Phone
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Delete detaches the profile from its account before removing it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	profile, err := s.profiles.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.accounts.RemoveProfile(ctx, profile.AccountID, profile.ID); err != nil {
		return err
	}
	return s.profiles.Delete(ctx, id)
}
