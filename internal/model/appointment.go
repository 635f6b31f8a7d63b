package model

import (
	"time"

	"github.com/google/uuid"
)

// SlotInterval is the fixed width of a generated appointment slot.
const SlotInterval = 20 * time.Minute

type AppointmentState string

const (
	AppointmentOpen      AppointmentState = "open"
	AppointmentBooked    AppointmentState = "booked"
	AppointmentCancelled AppointmentState = "cancelled"
)

// Appointment is a time slot opened by a hospital-tier account. The hospital
// name+id pair is a snapshot captured at booking time, not a live reference;
// later renames of the hospital must not alter past appointments.
type Appointment struct {
	Base
	TimeSlot     time.Time  `db:"time_slot" json:"time_slot"`
	AccountID    uuid.UUID  `db:"account_id" json:"account_id"`
	ProfileID    *uuid.UUID `db:"profile_id" json:"profile_id,omitempty"`
	HospitalID   *uuid.UUID `db:"hospital_id" json:"hospital_id,omitempty"`
	HospitalName *string    `db:"hospital_name" json:"hospital_name,omitempty"`
	Cancelled    bool       `db:"cancelled" json:"cancelled"`
}

func (a *Appointment) State() AppointmentState {
	switch {
	case a.Cancelled:
		return AppointmentCancelled
	case a.ProfileID != nil:
		return AppointmentBooked
	default:
		return AppointmentOpen
	}
}

type CreateSlotsRequest struct {
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
	// DoctorAccountID must be supplied by admin callers and must resolve to a
	// hospital-tier account.
	DoctorAccountID *uuid.UUID `json:"doctor_account_id,omitempty"`
}

type BookAppointmentRequest struct {
	ProfileID  uuid.UUID `json:"profile_id" binding:"required"`
	HospitalID uuid.UUID `json:"hospital_id" binding:"required"`
}

type RescheduleAppointmentRequest struct {
	TargetID   uuid.UUID `json:"target_id" binding:"required"`
	HospitalID uuid.UUID `json:"hospital_id" binding:"required"`
}
