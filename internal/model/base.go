package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Base contains common fields for all models
type Base struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// UUIDList is a uuid[] column holding ordered document references.
type UUIDList []uuid.UUID

func (l UUIDList) Value() (driver.Value, error) {
	return pq.GenericArray{A: []uuid.UUID(l)}.Value()
}

func (l *UUIDList) Scan(src interface{}) error {
	var ids []uuid.UUID
	if err := (pq.GenericArray{A: &ids}).Scan(src); err != nil {
		return err
	}
	*l = ids
	return nil
}

func (l UUIDList) Contains(id uuid.UUID) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Without returns a copy of the list with id removed.
func (l UUIDList) Without(id uuid.UUID) UUIDList {
	out := make(UUIDList, 0, len(l))
	for _, v := range l {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Replaced returns a copy with old swapped for new in place, preserving the
// position of every other entry.
func (l UUIDList) Replaced(old, new uuid.UUID) UUIDList {
	out := make(UUIDList, len(l))
	for i, v := range l {
		if v == old {
			out[i] = new
		} else {
			out[i] = v
		}
	}
	return out
}
