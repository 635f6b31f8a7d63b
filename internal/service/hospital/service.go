package hospital

import (
	"context"

	"github.com/google/uuid"

	"github.com/medvault/records-api/internal/model"
	"github.com/medvault/records-api/internal/repository"
	apperrors "github.com/medvault/records-api/pkg/errors"
)

type Service struct {
	hospitals repository.HospitalRepository
}

func NewService(hospitals repository.HospitalRepository) *Service {
	return &Service{hospitals: hospitals}
}

func (s *Service) Create(ctx context.Context, req *model.CreateHospitalRequest) (*model.Hospital, error) {
	if existing, _ := s.hospitals.GetByName(ctx, req.Name); existing != nil {
		return nil, apperrors.Conflict("hospital name already in use")
	}

	hospital := &model.Hospital{
		Name:      req.Name,
		DoctorIDs: model.UUIDList{},
	}
	if err := s.hospitals.Create(ctx, hospital); err != nil {
		return nil, err
	}
	return hospital, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Hospital, error) {
	return s.hospitals.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filters map[string]string) ([]*model.Hospital, error) {
	return s.hospitals.List(ctx, filters)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateHospitalRequest) (*model.Hospital, error) {
	hospital, err := s.hospitals.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != hospital.Name {
		if existing, _ := s.hospitals.GetByName(ctx, *req.Name); existing != nil {
			return nil, apperrors.Conflict("hospital name already in use")
		}
		hospital.Name = *req.Name
	}

	if err := s.hospitals.Update(ctx, hospital); err != nil {
		return nil, err
	}
	return hospital, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.hospitals.Delete(ctx, id)
}
