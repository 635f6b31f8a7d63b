package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medvault/records-api/internal/config"
	"github.com/medvault/records-api/internal/email"
	"github.com/medvault/records-api/internal/model"
	apperrors "github.com/medvault/records-api/pkg/errors"
)

type fakeAppointments struct {
	items map[uuid.UUID]*model.Appointment
}

func newFakeAppointments() *fakeAppointments {
	return &fakeAppointments{items: make(map[uuid.UUID]*model.Appointment)}
}

func (f *fakeAppointments) Create(_ context.Context, a *model.Appointment) error {
	a.ID = uuid.New()
	clone := *a
	f.items[a.ID] = &clone
	return nil
}

func (f *fakeAppointments) CreateBatch(ctx context.Context, appointments []*model.Appointment) error {
	for _, a := range appointments {
		if err := f.Create(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeAppointments) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, apperrors.NotFound("appointment")
	}
	clone := *a
	return &clone, nil
}

func (f *fakeAppointments) Update(_ context.Context, a *model.Appointment) error {
	if _, ok := f.items[a.ID]; !ok {
		return apperrors.NotFound("appointment")
	}
	clone := *a
	f.items[a.ID] = &clone
	return nil
}

func (f *fakeAppointments) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return apperrors.NotFound("appointment")
	}
	delete(f.items, id)
	return nil
}

func (f *fakeAppointments) List(_ context.Context, accountID *uuid.UUID, _ map[string]string) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range f.items {
		if accountID != nil && a.AccountID != *accountID {
			continue
		}
		clone := *a
		out = append(out, &clone)
	}
	return out, nil
}

type fakeProfiles struct {
	items map[uuid.UUID]*model.Profile
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{items: make(map[uuid.UUID]*model.Profile)}
}

func (f *fakeProfiles) Create(_ context.Context, p *model.Profile) error {
	p.ID = uuid.New()
	f.items[p.ID] = p
	return nil
}

func (f *fakeProfiles) Get(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, apperrors.NotFound("profile")
	}
	return p, nil
}

func (f *fakeProfiles) Update(_ context.Context, p *model.Profile) error {
	f.items[p.ID] = p
	return nil
}

func (f *fakeProfiles) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

func (f *fakeProfiles) List(_ context.Context, _ *uuid.UUID, _ map[string]string) ([]*model.Profile, error) {
	return nil, nil
}

func (f *fakeProfiles) AppendAppointment(_ context.Context, profileID, appointmentID uuid.UUID) error {
	p := f.items[profileID]
	p.AppointmentIDs = append(p.AppointmentIDs, appointmentID)
	return nil
}

func (f *fakeProfiles) RemoveAppointment(_ context.Context, profileID, appointmentID uuid.UUID) error {
	p := f.items[profileID]
	p.AppointmentIDs = p.AppointmentIDs.Without(appointmentID)
	return nil
}

func (f *fakeProfiles) ReplaceAppointment(_ context.Context, profileID, oldID, newID uuid.UUID) error {
	p := f.items[profileID]
	p.AppointmentIDs = p.AppointmentIDs.Replaced(oldID, newID)
	return nil
}

func (f *fakeProfiles) AppendRecord(_ context.Context, profileID, recordID uuid.UUID) error {
	p := f.items[profileID]
	p.RecordIDs = append(p.RecordIDs, recordID)
	return nil
}

func (f *fakeProfiles) RemoveRecord(_ context.Context, profileID, recordID uuid.UUID) error {
	p := f.items[profileID]
	p.RecordIDs = p.RecordIDs.Without(recordID)
	return nil
}

func (f *fakeProfiles) AppendPrescription(_ context.Context, profileID, prescriptionID uuid.UUID) error {
	p := f.items[profileID]
	p.PrescriptionIDs = append(p.PrescriptionIDs, prescriptionID)
	return nil
}

func (f *fakeProfiles) RemovePrescription(_ context.Context, profileID, prescriptionID uuid.UUID) error {
	p := f.items[profileID]
	p.PrescriptionIDs = p.PrescriptionIDs.Without(prescriptionID)
	return nil
}

type fakeHospitals struct {
	items map[uuid.UUID]*model.Hospital
}

func newFakeHospitals() *fakeHospitals {
	return &fakeHospitals{items: make(map[uuid.UUID]*model.Hospital)}
}

func (f *fakeHospitals) Create(_ context.Context, h *model.Hospital) error {
	h.ID = uuid.New()
	f.items[h.ID] = h
	return nil
}

func (f *fakeHospitals) Get(_ context.Context, id uuid.UUID) (*model.Hospital, error) {
	h, ok := f.items[id]
	if !ok {
		return nil, apperrors.NotFound("hospital")
	}
	return h, nil
}

func (f *fakeHospitals) GetByName(_ context.Context, name string) (*model.Hospital, error) {
	for _, h := range f.items {
		if h.Name == name {
			return h, nil
		}
	}
	return nil, apperrors.NotFound("hospital")
}

func (f *fakeHospitals) Update(_ context.Context, h *model.Hospital) error {
	f.items[h.ID] = h
	return nil
}

func (f *fakeHospitals) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

func (f *fakeHospitals) List(_ context.Context, _ map[string]string) ([]*model.Hospital, error) {
	return nil, nil
}

func (f *fakeHospitals) AppendDoctor(_ context.Context, hospitalID, doctorID uuid.UUID) error {
	h := f.items[hospitalID]
	h.DoctorIDs = append(h.DoctorIDs, doctorID)
	return nil
}

func (f *fakeHospitals) RemoveDoctor(_ context.Context, hospitalID, doctorID uuid.UUID) error {
	h := f.items[hospitalID]
	h.DoctorIDs = h.DoctorIDs.Without(doctorID)
	return nil
}

type fakeAccounts struct {
	items map[uuid.UUID]*model.Account
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{items: make(map[uuid.UUID]*model.Account)}
}

func (f *fakeAccounts) Create(_ context.Context, a *model.Account) error {
	a.ID = uuid.New()
	f.items[a.ID] = a
	return nil
}

func (f *fakeAccounts) Get(_ context.Context, id uuid.UUID) (*model.Account, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, apperrors.NotFound("account")
	}
	return a, nil
}

func (f *fakeAccounts) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	for _, a := range f.items {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, apperrors.NotFound("account")
}

func (f *fakeAccounts) GetBySubject(_ context.Context, subject string) (*model.Account, error) {
	for _, a := range f.items {
		if a.Subject == subject {
			return a, nil
		}
	}
	return nil, apperrors.NotFound("account")
}

func (f *fakeAccounts) Update(_ context.Context, a *model.Account) error {
	f.items[a.ID] = a
	return nil
}

func (f *fakeAccounts) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

func (f *fakeAccounts) List(_ context.Context, _ map[string]string) ([]*model.Account, error) {
	return nil, nil
}

func (f *fakeAccounts) AppendProfile(_ context.Context, accountID, profileID uuid.UUID) error {
	a := f.items[accountID]
	a.ProfileIDs = append(a.ProfileIDs, profileID)
	return nil
}

func (f *fakeAccounts) RemoveProfile(_ context.Context, accountID, profileID uuid.UUID) error {
	a := f.items[accountID]
	a.ProfileIDs = a.ProfileIDs.Without(profileID)
	return nil
}

type fixture struct {
	svc          *Service
	appointments *fakeAppointments
	profiles     *fakeProfiles
	hospitals    *fakeHospitals
	accounts     *fakeAccounts

	clinician *model.Principal
	patient   *model.Principal
	hospital  *model.Hospital
	profile   *model.Profile
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		appointments: newFakeAppointments(),
		profiles:     newFakeProfiles(),
		hospitals:    newFakeHospitals(),
		accounts:     newFakeAccounts(),
	}
	f.svc = NewService(f.appointments, f.profiles, f.hospitals, f.accounts,
		email.NewService(config.SMTPConfig{}))

	clinicianAcc := &model.Account{Email: "clinic@example.com", Level: model.LevelHospital}
	require.NoError(t, f.accounts.Create(ctx, clinicianAcc))

	patientAcc := &model.Account{Email: "patient@example.com", Level: model.LevelUser}
	require.NoError(t, f.accounts.Create(ctx, patientAcc))

	f.hospital = &model.Hospital{Name: "General Hospital"}
	require.NoError(t, f.hospitals.Create(ctx, f.hospital))

	f.profile = &model.Profile{Name: "Pat", AccountID: patientAcc.ID}
	require.NoError(t, f.profiles.Create(ctx, f.profile))
	require.NoError(t, f.accounts.AppendProfile(ctx, patientAcc.ID, f.profile.ID))

	f.clinician = &model.Principal{AccountID: clinicianAcc.ID, Level: model.LevelHospital}
	f.patient = &model.Principal{
		AccountID:  patientAcc.ID,
		Level:      model.LevelUser,
		ProfileIDs: model.UUIDList{f.profile.ID},
	}
	return f
}

func (f *fixture) openSlot(t *testing.T, at time.Time) *model.Appointment {
	t.Helper()
	slot := &model.Appointment{TimeSlot: at, AccountID: f.clinician.AccountID}
	require.NoError(t, f.appointments.Create(context.Background(), slot))
	return slot
}

func (f *fixture) bookedSlot(t *testing.T, at time.Time) *model.Appointment {
	t.Helper()
	slot := f.openSlot(t, at)
	booked, err := f.svc.Book(context.Background(), f.clinician, slot.ID, &model.BookAppointmentRequest{
		ProfileID:  f.profile.ID,
		HospitalID: f.hospital.ID,
	})
	require.NoError(t, err)
	return booked
}

func TestCreateSlotsWindow(t *testing.T) {
	f := newFixture(t)
	start := time.Now().Add(time.Hour).Truncate(time.Minute)

	slots, err := f.svc.CreateSlots(context.Background(), f.clinician, &model.CreateSlotsRequest{
		Start: start,
		End:   start.Add(40 * time.Minute),
	})
	require.NoError(t, err)
	require.Len(t, slots, 2)

	assert.Equal(t, start, slots[0].TimeSlot)
	assert.Equal(t, start.Add(model.SlotInterval), slots[1].TimeSlot)
	for _, slot := range slots {
		assert.Equal(t, f.clinician.AccountID, slot.AccountID)
		assert.Equal(t, model.AppointmentOpen, slot.State())
	}
}

func TestCreateSlotsRejectsPastWindow(t *testing.T) {
	f := newFixture(t)
	start := time.Now().Add(-time.Hour)

	_, err := f.svc.CreateSlots(context.Background(), f.clinician, &model.CreateSlotsRequest{
		Start: start,
		End:   start.Add(40 * time.Minute),
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestCreateSlotsRejectsInvertedWindow(t *testing.T) {
	f := newFixture(t)
	start := time.Now().Add(2 * time.Hour)

	_, err := f.svc.CreateSlots(context.Background(), f.clinician, &model.CreateSlotsRequest{
		Start: start,
		End:   start.Add(-20 * time.Minute),
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestCreateSlotsAdminRequiresDoctorAccount(t *testing.T) {
	f := newFixture(t)
	admin := &model.Principal{AccountID: uuid.New(), Level: model.LevelAdmin}
	start := time.Now().Add(time.Hour)

	_, err := f.svc.CreateSlots(context.Background(), admin, &model.CreateSlotsRequest{
		Start: start,
		End:   start.Add(20 * time.Minute),
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	// A user-tier target account is rejected too.
	userAccID := f.patient.AccountID
	_, err = f.svc.CreateSlots(context.Background(), admin, &model.CreateSlotsRequest{
		Start:           start,
		End:             start.Add(20 * time.Minute),
		DoctorAccountID: &userAccID,
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	doctorAccID := f.clinician.AccountID
	slots, err := f.svc.CreateSlots(context.Background(), admin, &model.CreateSlotsRequest{
		Start:           start,
		End:             start.Add(20 * time.Minute),
		DoctorAccountID: &doctorAccID,
	})
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, doctorAccID, slots[0].AccountID)
}

func TestBookOpenSlotExactlyOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	slot := f.openSlot(t, time.Now().Add(time.Hour))

	booked, err := f.svc.Book(ctx, f.clinician, slot.ID, &model.BookAppointmentRequest{
		ProfileID:  f.profile.ID,
		HospitalID: f.hospital.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentBooked, booked.State())
	require.NotNil(t, booked.ProfileID)
	assert.Equal(t, f.profile.ID, *booked.ProfileID)
	require.NotNil(t, booked.HospitalName)
	assert.Equal(t, f.hospital.Name, *booked.HospitalName)
	assert.True(t, f.profile.AppointmentIDs.Contains(slot.ID))

	_, err = f.svc.Book(ctx, f.clinician, slot.ID, &model.BookAppointmentRequest{
		ProfileID:  f.profile.ID,
		HospitalID: f.hospital.ID,
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestBookForeignSlotForbidden(t *testing.T) {
	f := newFixture(t)
	slot := f.openSlot(t, time.Now().Add(time.Hour))

	other := &model.Principal{AccountID: uuid.New(), Level: model.LevelHospital}
	_, err := f.svc.Book(context.Background(), other, slot.ID, &model.BookAppointmentRequest{
		ProfileID:  f.profile.ID,
		HospitalID: f.hospital.ID,
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
}

func TestBookMissingProfileIsBadReference(t *testing.T) {
	f := newFixture(t)
	slot := f.openSlot(t, time.Now().Add(time.Hour))

	_, err := f.svc.Book(context.Background(), f.clinician, slot.ID, &model.BookAppointmentRequest{
		ProfileID:  uuid.New(),
		HospitalID: f.hospital.ID,
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrReferenceNotFound))
}

func TestRescheduleMovesBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	source := f.bookedSlot(t, time.Now().Add(time.Hour))
	target := f.openSlot(t, time.Now().Add(2*time.Hour))

	moved, err := f.svc.Reschedule(ctx, f.clinician, source.ID, &model.RescheduleAppointmentRequest{
		TargetID:   target.ID,
		HospitalID: f.hospital.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentBooked, moved.State())
	require.NotNil(t, moved.ProfileID)
	assert.Equal(t, f.profile.ID, *moved.ProfileID)

	reverted, err := f.appointments.Get(ctx, source.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentOpen, reverted.State())
	assert.Nil(t, reverted.ProfileID)
	assert.Nil(t, reverted.HospitalID)

	assert.True(t, f.profile.AppointmentIDs.Contains(target.ID))
	assert.False(t, f.profile.AppointmentIDs.Contains(source.ID))
}

func TestRescheduleAcrossAccountsForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	source := f.bookedSlot(t, time.Now().Add(time.Hour))

	foreign := &model.Appointment{
		TimeSlot:  time.Now().Add(2 * time.Hour),
		AccountID: uuid.New(),
	}
	require.NoError(t, f.appointments.Create(ctx, foreign))

	_, err := f.svc.Reschedule(ctx, f.clinician, source.ID, &model.RescheduleAppointmentRequest{
		TargetID:   foreign.ID,
		HospitalID: f.hospital.ID,
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
}

func TestRescheduleUnbookedSourceConflicts(t *testing.T) {
	f := newFixture(t)
	source := f.openSlot(t, time.Now().Add(time.Hour))
	target := f.openSlot(t, time.Now().Add(2*time.Hour))

	_, err := f.svc.Reschedule(context.Background(), f.clinician, source.ID, &model.RescheduleAppointmentRequest{
		TargetID:   target.ID,
		HospitalID: f.hospital.ID,
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestCancelRegeneratesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	booked := f.bookedSlot(t, time.Now().Add(time.Hour))

	cancelled, replacement, err := f.svc.Cancel(ctx, f.clinician, booked.ID)
	require.NoError(t, err)

	assert.True(t, cancelled.Cancelled)
	assert.Equal(t, model.AppointmentCancelled, cancelled.State())
	require.NotNil(t, cancelled.ProfileID)
	assert.Equal(t, f.profile.ID, *cancelled.ProfileID)

	assert.Equal(t, model.AppointmentOpen, replacement.State())
	assert.Equal(t, booked.TimeSlot, replacement.TimeSlot)
	assert.Equal(t, booked.AccountID, replacement.AccountID)
	assert.NotEqual(t, booked.ID, replacement.ID)

	assert.False(t, f.profile.AppointmentIDs.Contains(booked.ID))

	all, err := f.appointments.List(ctx, nil, nil)
	require.NoError(t, err)
	open := 0
	for _, a := range all {
		if a.State() == model.AppointmentOpen && a.TimeSlot.Equal(booked.TimeSlot) {
			open++
		}
	}
	assert.Equal(t, 1, open)
}

func TestCancelUnbookedConflicts(t *testing.T) {
	f := newFixture(t)
	slot := f.openSlot(t, time.Now().Add(time.Hour))

	_, _, err := f.svc.Cancel(context.Background(), f.clinician, slot.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))

	booked := f.bookedSlot(t, time.Now().Add(2*time.Hour))
	_, _, err = f.svc.Cancel(context.Background(), f.clinician, booked.ID)
	require.NoError(t, err)
	_, _, err = f.svc.Cancel(context.Background(), f.clinician, booked.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}
