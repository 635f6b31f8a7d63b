package model

import (
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Profile represents a patient under an account. The reference lists are
// maintained bidirectionally by the service layer.
type Profile struct {
	Base
	Name            string    `db:"name" json:"name"`
	Gender          Gender    `db:"gender" json:"gender"`
	DateOfBirth     time.Time `db:"date_of_birth" json:"date_of_birth"`
	Phone           *string   `db:"phone" json:"phone,omitempty"`
	AccountID       uuid.UUID `db:"account_id" json:"account_id"`
	AppointmentIDs  UUIDList  `db:"appointment_ids" json:"appointment_ids"`
	RecordIDs       UUIDList  `db:"record_ids" json:"record_ids"`
	PrescriptionIDs UUIDList  `db:"prescription_ids" json:"prescription_ids"`
}

type CreateProfileRequest struct {
	Name        string    `json:"name" binding:"required,min=1,max=120"`
	Gender      Gender    `json:"gender" binding:"required,oneof=male female other"`
	DateOfBirth time.Time `json:"date_of_birth" binding:"required,notfuture"`
	Phone       *string   `json:"phone,omitempty" binding:"omitempty,min=6,max=20"`
	// AccountID lets privileged callers create a profile under any user
	// account; non-privileged callers are pinned to their own.
	AccountID *uuid.UUID `json:"account_id,omitempty"`
}

type UpdateProfileRequest struct {
	Name        *string    `json:"name,omitempty" binding:"omitempty,min=1,max=120"`
	Gender      *Gender    `json:"gender,omitempty" binding:"omitempty,oneof=male female other"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty" binding:"omitempty,notfuture"`
	Phone       *string    `json:"phone,omitempty" binding:"omitempty,min=6,max=20"`
}
