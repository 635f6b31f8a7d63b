package doctor

import (
	"context"

	"github.com/google/uuid"

	"github.com/medvault/records-api/internal/model"
	"github.com/medvault/records-api/internal/repository"
	apperrors "github.com/medvault/records-api/pkg/errors"
)

type Service struct {
	doctors         repository.DoctorRepository
	hospitals       repository.HospitalRepository
	specializations repository.CatalogRepository
}

func NewService(doctors repository.DoctorRepository, hospitals repository.HospitalRepository,
	specializations repository.CatalogRepository) *Service {
	return &Service{doctors: doctors, hospitals: hospitals, specializations: specializations}
}

// Create registers a doctor under a hospital and adds it to the hospital's
// doctor list.
func (s *Service) Create(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	if _, err := s.hospitals.Get(ctx, req.HospitalID); err != nil {
		return nil, apperrors.ReferenceNotFound("hospital")
	}
	if _, err := s.specializations.Get(ctx, req.SpecializationID); err != nil {
		return nil, apperrors.ReferenceNotFound("specialization")
	}

	doctor := &model.Doctor{
		Name:             req.Name,
		Qualifications:   req.Qualifications,
		PracticingSince:  req.PracticingSince,
		HospitalID:       req.HospitalID,
		SpecializationID: req.SpecializationID,
	}
	if err := s.doctors.Create(ctx, doctor); err != nil {
		return nil, err
	}

	if err := s.hospitals.AppendDoctor(ctx, req.HospitalID, doctor.ID); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	return s.doctors.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, hospitalID *uuid.UUID, filters map[string]string) ([]*model.Doctor, error) {
	return s.doctors.List(ctx, hospitalID, filters)
}

// Update moves the doctor between hospital doctor lists when the hospital
// reference changes.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	doctor, err := s.doctors.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	previousHospital := doctor.HospitalID

	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Qualifications != nil {
		doctor.Qualifications = *req.Qualifications
	}
	if req.PracticingSince != nil {
		doctor.PracticingSince = *req.PracticingSince
	}
	if req.SpecializationID != nil {
		if _, err := s.specializations.Get(ctx, *req.SpecializationID); err != nil {
			return nil, apperrors.ReferenceNotFound("specialization")
		}
		doctor.SpecializationID = *req.SpecializationID
	}
	if req.HospitalID != nil && *req.HospitalID != previousHospital {
		if _, err := s.hospitals.Get(ctx, *req.HospitalID); err != nil {
			return nil, apperrors.ReferenceNotFound("hospital")
		}
		doctor.HospitalID = *req.HospitalID
	}

	if err := s.doctors.Update(ctx, doctor); err != nil {
		return nil, err
	}

	if doctor.HospitalID != previousHospital {
		if err := s.hospitals.RemoveDoctor(ctx, previousHospital, doctor.ID); err != nil {
			return nil, err
		}
		if err := s.hospitals.AppendDoctor(ctx, doctor.HospitalID, doctor.ID); err != nil {
			return nil, err
		}
	}
	return doctor, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	doctor, err := s.doctors.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.hospitals.RemoveDoctor(ctx, doctor.HospitalID, doctor.ID); err != nil {
		return err
	}
	return s.doctors.Delete(ctx, id)
}
