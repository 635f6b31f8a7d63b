package model

import (
	"github.com/google/uuid"
)

type Hospital struct {
	Base
	Name      string   `db:"name" json:"name"`
	DoctorIDs UUIDList `db:"doctor_ids" json:"doctor_ids"`
}

type CreateHospitalRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

type UpdateHospitalRequest struct {
	Name *string `json:"name,omitempty" binding:"omitempty,min=1,max=200"`
}

type Doctor struct {
	Base
	Name             string    `db:"name" json:"name"`
	Qualifications   string    `db:"qualifications" json:"qualifications"`
	PracticingSince  int       `db:"practicing_since" json:"practicing_since"`
	HospitalID       uuid.UUID `db:"hospital_id" json:"hospital_id"`
	SpecializationID uuid.UUID `db:"specialization_id" json:"specialization_id"`
}

type CreateDoctorRequest struct {
	Name             string    `json:"name" binding:"required,min=1,max=120"`
	Qualifications   string    `json:"qualifications" binding:"required,max=500"`
	PracticingSince  int       `json:"practicing_since" binding:"required,practicingyear"`
	HospitalID       uuid.UUID `json:"hospital_id" binding:"required"`
	SpecializationID uuid.UUID `json:"specialization_id" binding:"required"`
}

type UpdateDoctorRequest struct {
	Name             *string    `json:"name,omitempty" binding:"omitempty,min=1,max=120"`
	Qualifications   *string    `json:"qualifications,omitempty" binding:"omitempty,max=500"`
	PracticingSince  *int       `json:"practicing_since,omitempty" binding:"omitempty,practicingyear"`
	HospitalID       *uuid.UUID `json:"hospital_id,omitempty"`
	SpecializationID *uuid.UUID `json:"specialization_id,omitempty"`
}
