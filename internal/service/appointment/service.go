package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medvault/records-api/internal/email"
	"github.com/medvault/records-api/internal/model"
	"github.com/medvault/records-api/internal/repository"
	apperrors "github.com/medvault/records-api/pkg/errors"
)

// Service implements the appointment slot lifecycle: clinicians open fixed
// width slots, patients book them, booked slots can move to another open slot
// or be cancelled. Cancellation retires the slot and opens a fresh one at the
// same time.
type Service struct {
	appointments repository.AppointmentRepository
	profiles     repository.ProfileRepository
	hospitals    repository.HospitalRepository
	accounts     repository.AccountRepository
	mailer       email.Service
}

func NewService(appointments repository.AppointmentRepository, profiles repository.ProfileRepository,
	hospitals repository.HospitalRepository, accounts repository.AccountRepository,
	mailer email.Service) *Service {
	return &Service{
		appointments: appointments,
		profiles:     profiles,
		hospitals:    hospitals,
		accounts:     accounts,
		mailer:       mailer,
	}
}

// CreateSlots opens one appointment per SlotInterval in [start, end). The
// creating account is the caller for clinicians; admin callers must name a
// hospital-tier account instead.
func (s *Service) CreateSlots(ctx context.Context, principal *model.Principal, req *model.CreateSlotsRequest) ([]*model.Appointment, error) {
	now := time.Now()
	if !req.Start.After(now) || !req.End.After(now) {
		return nil, apperrors.Validation("slots must lie in the future")
	}
	if !req.End.After(req.Start) {
		return nil, apperrors.Validation("end must be after start")
	}

	creator := principal.AccountID
	if principal.Level.AtLeast(model.LevelAdmin) {
		if req.DoctorAccountID == nil {
			return nil, apperrors.Validation("doctor_account_id is required for admin callers")
		}
		account, err := s.accounts.Get(ctx, *req.DoctorAccountID)
		if err != nil {
			return nil, apperrors.ReferenceNotFound("doctor account")
		}
		if account.Level != model.LevelHospital {
			return nil, apperrors.Validation("doctor_account_id must reference a hospital-tier account")
		}
		creator = account.ID
	} else if req.DoctorAccountID != nil && *req.DoctorAccountID != principal.AccountID {
		return nil, apperrors.Forbidden("cannot open slots for another account")
	}

	// One slot per interval from start (inclusive) to end (exclusive).
	var slots []*model.Appointment
	for t := req.Start; t.Before(req.End); t = t.Add(model.SlotInterval) {
		slots = append(slots, &model.Appointment{
			TimeSlot:  t,
			AccountID: creator,
		})
	}

	if err := s.appointments.CreateBatch(ctx, slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.appointments.Get(ctx, id)
}

// List scopes results by caller tier: clinicians see slots they opened,
// user-tier callers see appointments of one of their own profiles, admins see
// everything.
func (s *Service) List(ctx context.Context, principal *model.Principal, profileID *uuid.UUID, filters map[string]string) ([]*model.Appointment, error) {
	switch {
	case principal.Level.AtLeast(model.LevelAdmin):
		return s.appointments.List(ctx, nil, filters)
	case principal.Level.AtLeast(model.LevelHospital):
		own := principal.AccountID
		return s.appointments.List(ctx, &own, filters)
	default:
		if profileID == nil {
			return nil, apperrors.Validation("profile_id is required")
		}
		if !principal.ProfileIDs.Contains(*profileID) {
			return nil, apperrors.Forbidden("profile does not belong to caller")
		}
		if filters == nil {
			filters = make(map[string]string)
		}
		filters["profile_id"] = profileID.String()
		return s.appointments.List(ctx, nil, filters)
	}
}

// Book assigns a profile to an open slot and snapshots the hospital name.
func (s *Service) Book(ctx context.Context, principal *model.Principal, id uuid.UUID, req *model.BookAppointmentRequest) (*model.Appointment, error) {
	appointment, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.AccountID != principal.AccountID && !principal.Level.AtLeast(model.LevelAdmin) {
		return nil, apperrors.Forbidden("appointment belongs to a different account")
	}

	profile, err := s.profiles.Get(ctx, req.ProfileID)
	if err != nil {
		return nil, apperrors.ReferenceNotFound("profile")
	}

	hospital, err := s.hospitals.Get(ctx, req.HospitalID)
	if err != nil {
		return nil, apperrors.ReferenceNotFound("hospital")
	}

	if appointment.State() != model.AppointmentOpen {
		return nil, apperrors.Conflict("appointment is not open")
	}

	appointment.ProfileID = &profile.ID
	appointment.HospitalID = &hospital.ID
	appointment.HospitalName = &hospital.Name
	if err := s.appointments.Update(ctx, appointment); err != nil {
		return nil, err
	}

	if err := s.profiles.AppendAppointment(ctx, profile.ID, appointment.ID); err != nil {
		return nil, err
	}

	s.notifyBooking(ctx, profile, appointment)
	return appointment, nil
}

// Reschedule moves a booking from one slot to an open slot opened by the same
// account. The source slot reopens; the profile's appointment list keeps its
// position.
func (s *Service) Reschedule(ctx context.Context, principal *model.Principal, id uuid.UUID, req *model.RescheduleAppointmentRequest) (*model.Appointment, error) {
	source, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if source.AccountID != principal.AccountID && !principal.Level.AtLeast(model.LevelAdmin) {
		return nil, apperrors.Forbidden("appointment belongs to a different account")
	}

	target, err := s.appointments.Get(ctx, req.TargetID)
	if err != nil {
		return nil, apperrors.ReferenceNotFound("target appointment")
	}
	if target.AccountID != source.AccountID {
		return nil, apperrors.Forbidden("target slot belongs to a different account")
	}

	if source.State() != model.AppointmentBooked {
		return nil, apperrors.Conflict("appointment is not booked")
	}
	if target.State() != model.AppointmentOpen {
		return nil, apperrors.Conflict("target appointment is not open")
	}

	hospital, err := s.hospitals.Get(ctx, req.HospitalID)
	if err != nil {
		return nil, apperrors.ReferenceNotFound("hospital")
	}

	profileID := *source.ProfileID
	target.ProfileID = &profileID
	target.HospitalID = &hospital.ID
	target.HospitalName = &hospital.Name
	if err := s.appointments.Update(ctx, target); err != nil {
		return nil, err
	}

	source.ProfileID = nil
	source.HospitalID = nil
	source.HospitalName = nil
	if err := s.appointments.Update(ctx, source); err != nil {
		return nil, err
	}

	if err := s.profiles.ReplaceAppointment(ctx, profileID, source.ID, target.ID); err != nil {
		return nil, err
	}

	if profile, err := s.profiles.Get(ctx, profileID); err == nil {
		s.notifyBooking(ctx, profile, target)
	}
	return target, nil
}

// Cancel retires a booked slot and opens a replacement at the same time so
// the schedule keeps its capacity.
func (s *Service) Cancel(ctx context.Context, principal *model.Principal, id uuid.UUID) (*model.Appointment, *model.Appointment, error) {
	appointment, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if appointment.AccountID != principal.AccountID && !principal.Level.AtLeast(model.LevelAdmin) {
		return nil, nil, apperrors.Forbidden("appointment belongs to a different account")
	}
	if appointment.State() != model.AppointmentBooked {
		return nil, nil, apperrors.Conflict("appointment is not booked")
	}

	profileID := *appointment.ProfileID
	appointment.Cancelled = true
	if err := s.appointments.Update(ctx, appointment); err != nil {
		return nil, nil, err
	}

	if err := s.profiles.RemoveAppointment(ctx, profileID, appointment.ID); err != nil {
		return nil, nil, err
	}

	replacement := &model.Appointment{
		TimeSlot:  appointment.TimeSlot,
		AccountID: appointment.AccountID,
	}
	if err := s.appointments.Create(ctx, replacement); err != nil {
		return nil, nil, err
	}

	if profile, err := s.profiles.Get(ctx, profileID); err == nil {
		s.notifyCancellation(ctx, profile, appointment)
	}
	return appointment, replacement, nil
}

// Delete removes a slot outright, detaching any booking first. Admin only.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	appointment, err := s.appointments.Get(ctx, id)
	if err != nil {
		return err
	}

	if appointment.ProfileID != nil && !appointment.Cancelled {
		if err := s.profiles.RemoveAppointment(ctx, *appointment.ProfileID, appointment.ID); err != nil {
			return err
		}
	}
	return s.appointments.Delete(ctx, id)
}

func (s *Service) notifyBooking(ctx context.Context, profile *model.Profile, appointment *model.Appointment) {
	account, err := s.accounts.Get(ctx, profile.AccountID)
	if err != nil {
		return
	}
	hospital := ""
	if appointment.HospitalName != nil {
		hospital = *appointment.HospitalName
	}
	if err := s.mailer.SendBookingConfirmation(account.Email, profile.Name, appointment.TimeSlot, hospital); err != nil {
		log.Warn().Err(err).Str("appointment_id", appointment.ID.String()).Msg("booking notification failed")
	}
}

func (s *Service) notifyCancellation(ctx context.Context, profile *model.Profile, appointment *model.Appointment) {
	account, err := s.accounts.Get(ctx, profile.AccountID)
	if err != nil {
		return
	}
	if err := s.mailer.SendCancellation(account.Email, profile.Name, appointment.TimeSlot); err != nil {
		log.Warn().Err(err).Str("appointment_id", appointment.ID.String()).Msg("cancellation notification failed")
	}
}
