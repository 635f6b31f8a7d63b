package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EntitySnapshot is a denormalized name+id copy of a catalog entity embedded
// at write time and never synced afterwards.
type EntitySnapshot struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func (s EntitySnapshot) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *EntitySnapshot) Scan(src interface{}) error {
	return scanJSON(src, s)
}

// FileMeta describes a stored document; content lives in the object store,
// only metadata and the path key flow through this system.
type FileMeta struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

type FileMetaList []FileMeta

func (l FileMetaList) Value() (driver.Value, error) {
	if l == nil {
		l = FileMetaList{}
	}
	return json.Marshal(l)
}

func (l *FileMetaList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

type MedicalRecord struct {
	Base
	ProfileID      uuid.UUID      `db:"profile_id" json:"profile_id"`
	AccountID      uuid.UUID      `db:"account_id" json:"account_id"`
	Title          string         `db:"title" json:"title"`
	Content        string         `db:"content" json:"content"`
	Files          FileMetaList   `db:"files" json:"files"`
	Field          EntitySnapshot `db:"field_snapshot" json:"field"`
	RecordType     EntitySnapshot `db:"record_type_snapshot" json:"record_type"`
	FolderPath     string         `db:"folder_path" json:"folder_path"`
	DateOnDocument time.Time      `db:"date_on_document" json:"date_on_document"`
}

type CreateMedicalRecordRequest struct {
	ProfileID      uuid.UUID    `json:"profile_id" binding:"required"`
	Title          string       `json:"title" binding:"required,min=1,max=200"`
	Content        string       `json:"content" binding:"max=20000"`
	Files          FileMetaList `json:"files,omitempty"`
	FieldID        uuid.UUID    `json:"field_id" binding:"required"`
	RecordTypeID   uuid.UUID    `json:"record_type_id" binding:"required"`
	FolderPath     string       `json:"folder_path" binding:"required,min=1,max=500"`
	DateOnDocument time.Time    `json:"date_on_document" binding:"required,notfuture"`
}

type UpdateMedicalRecordRequest struct {
	Title          *string      `json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Content        *string      `json:"content,omitempty" binding:"omitempty,max=20000"`
	Files          FileMetaList `json:"files,omitempty"`
	DateOnDocument *time.Time   `json:"date_on_document,omitempty" binding:"omitempty,notfuture"`
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}
