package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/medvault/records-api/internal/model"
)

type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	Get(ctx context.Context, id uuid.UUID) (*model.Account, error)
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	GetBySubject(ctx context.Context, subject string) (*model.Account, error)
	Update(ctx context.Context, account *model.Account) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filters map[string]string) ([]*model.Account, error)
	AppendProfile(ctx context.Context, accountID, profileID uuid.UUID) error
	RemoveProfile(ctx context.Context, accountID, profileID uuid.UUID) error
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) error
	Get(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	Update(ctx context.Context, profile *model.Profile) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, accountID *uuid.UUID, filters map[string]string) ([]*model.Profile, error)
	AppendAppointment(ctx context.Context, profileID, appointmentID uuid.UUID) error
	RemoveAppointment(ctx context.Context, profileID, appointmentID uuid.UUID) error
	ReplaceAppointment(ctx context.Context, profileID, oldID, newID uuid.UUID) error
	AppendRecord(ctx context.Context, profileID, recordID uuid.UUID) error
	RemoveRecord(ctx context.Context, profileID, recordID uuid.UUID) error
	AppendPrescription(ctx context.Context, profileID, prescriptionID uuid.UUID) error
	RemovePrescription(ctx context.Context, profileID, prescriptionID uuid.UUID) error
}

type HospitalRepository interface {
	Create(ctx context.Context, hospital *model.Hospital) error
	Get(ctx context.Context, id uuid.UUID) (*model.Hospital, error)
	GetByName(ctx context.Context, name string) (*model.Hospital, error)
	Update(ctx context.Context, hospital *model.Hospital) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filters map[string]string) ([]*model.Hospital, error)
	AppendDoctor(ctx context.Context, hospitalID, doctorID uuid.UUID) error
	RemoveDoctor(ctx context.Context, hospitalID, doctorID uuid.UUID) error
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
	Update(ctx context.Context, doctor *model.Doctor) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, hospitalID *uuid.UUID, filters map[string]string) ([]*model.Doctor, error)
}

// CatalogRepository serves one unique-named lookup table; instances are
// created per catalog kind.
type CatalogRepository interface {
	Create(ctx context.Context, entry *model.CatalogEntry) error
	Get(ctx context.Context, id uuid.UUID) (*model.CatalogEntry, error)
	GetByName(ctx context.Context, name string) (*model.CatalogEntry, error)
	Update(ctx context.Context, entry *model.CatalogEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filters map[string]string) ([]*model.CatalogEntry, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	CreateBatch(ctx context.Context, appointments []*model.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	Update(ctx context.Context, appointment *model.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, accountID *uuid.UUID, filters map[string]string) ([]*model.Appointment, error)
}

type MedicalRecordRepository interface {
	Create(ctx context.Context, record *model.MedicalRecord) error
	Get(ctx context.Context, id uuid.UUID) (*model.MedicalRecord, error)
	GetByFolderPath(ctx context.Context, path string) (*model.MedicalRecord, error)
	Update(ctx context.Context, record *model.MedicalRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, profileID *uuid.UUID, filters map[string]string) ([]*model.MedicalRecord, error)
}

type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *model.Prescription) error
	Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error)
	GetByFolderPath(ctx context.Context, path string) (*model.Prescription, error)
	Update(ctx context.Context, prescription *model.Prescription) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, profileID *uuid.UUID, filters map[string]string) ([]*model.Prescription, error)
}
