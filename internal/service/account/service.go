package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/medvault/records-api/internal/model"
	"github.com/medvault/records-api/internal/repository"
	apperrors "github.com/medvault/records-api/pkg/errors"
	"github.com/medvault/records-api/pkg/security"
)

// Service manages accounts on behalf of administrators. Self-service
// registration lives in the auth service.
type Service struct {
	accounts  repository.AccountRepository
	hospitals repository.HospitalRepository
	hasher    security.PasswordHasher
}

func NewService(accounts repository.AccountRepository, hospitals repository.HospitalRepository,
	hasher security.PasswordHasher) *Service {
	return &Service{accounts: accounts, hospitals: hospitals, hasher: hasher}
}

// Create provisions an account at any tier. Hospital-tier accounts must
// reference an existing hospital; other tiers must not carry one.
func (s *Service) Create(ctx context.Context, req *model.CreateAccountRequest) (*model.Account, error) {
	if !req.Level.Valid() {
		return nil, apperrors.Validation("invalid access level")
	}

	switch {
	case req.Level == model.LevelHospital && req.HospitalID == nil:
		return nil, apperrors.Validation("hospital-tier accounts require a hospital")
	case req.Level != model.LevelHospital && req.HospitalID != nil:
		return nil, apperrors.Validation("only hospital-tier accounts may reference a hospital")
	}

	if req.HospitalID != nil {
		if _, err := s.hospitals.Get(ctx, *req.HospitalID); err != nil {
			return nil, apperrors.ReferenceNotFound("hospital")
		}
	}

	if existing, _ := s.accounts.GetByEmail(ctx, req.Email); existing != nil {
		return nil, apperrors.Conflict("email already registered")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	account := &model.Account{
		Email:        req.Email,
		Subject:      uuid.New().String(),
		PasswordHash: hash,
		Level:        req.Level,
		HospitalID:   req.HospitalID,
		ProfileIDs:   model.UUIDList{},
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	return s.accounts.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filters map[string]string) ([]*model.Account, error) {
	return s.accounts.List(ctx, filters)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateAccountRequest) (*model.Account, error) {
	account, err := s.accounts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != account.Email {
		if existing, _ := s.accounts.GetByEmail(ctx, *req.Email); existing != nil {
			return nil, apperrors.Conflict("email already registered")
		}
		account.Email = *req.Email
	}
	if req.HospitalID != nil {
		if account.Level != model.LevelHospital {
			return nil, apperrors.Validation("only hospital-tier accounts may reference a hospital")
		}
		if _, err := s.hospitals.Get(ctx, *req.HospitalID); err != nil {
			return nil, apperrors.ReferenceNotFound("hospital")
		}
		account.HospitalID = req.HospitalID
	}

	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.accounts.Delete(ctx, id)
}
