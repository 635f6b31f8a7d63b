package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MedicationEntry references a medication catalog entry plus the prescribed
// regimen.
type MedicationEntry struct {
	MedicationID uuid.UUID `json:"medication_id" binding:"required"`
	Name         string    `json:"name"`
	Dosage       string    `json:"dosage" binding:"required,max=100"`
	Interval     string    `json:"interval" binding:"required,max=100"`
	Duration     string    `json:"duration" binding:"required,max=100"`
	Instructions string    `json:"instructions" binding:"max=1000"`
}

type MedicationEntryList []MedicationEntry

func (l MedicationEntryList) Value() (driver.Value, error) {
	if l == nil {
		l = MedicationEntryList{}
	}
	return json.Marshal(l)
}

func (l *MedicationEntryList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

type Prescription struct {
	Base
	ProfileID      uuid.UUID           `db:"profile_id" json:"profile_id"`
	AccountID      uuid.UUID           `db:"account_id" json:"account_id"`
	Content        string              `db:"content" json:"content"`
	Files          FileMetaList        `db:"files" json:"files"`
	Specialization EntitySnapshot      `db:"specialization_snapshot" json:"specialization"`
	Medications    MedicationEntryList `db:"medications" json:"medications"`
	FolderPath     string              `db:"folder_path" json:"folder_path"`
	DateOnDocument time.Time           `db:"date_on_document" json:"date_on_document"`
}

type CreatePrescriptionRequest struct {
	ProfileID        uuid.UUID           `json:"profile_id" binding:"required"`
	Content          string              `json:"content" binding:"max=20000"`
	Files            FileMetaList        `json:"files,omitempty"`
	SpecializationID uuid.UUID           `json:"specialization_id" binding:"required"`
	Medications      MedicationEntryList `json:"medications" binding:"required,min=1,dive"`
	FolderPath       string              `json:"folder_path" binding:"required,min=1,max=500"`
	DateOnDocument   time.Time           `json:"date_on_document" binding:"required,notfuture"`
}

type UpdatePrescriptionRequest struct {
	Content        *string             `json:"content,omitempty" binding:"omitempty,max=20000"`
	Files          FileMetaList        `json:"files,omitempty"`
	Medications    MedicationEntryList `json:"medications,omitempty" binding:"omitempty,min=1,dive"`
	DateOnDocument *time.Time          `json:"date_on_document,omitempty" binding:"omitempty,notfuture"`
}
