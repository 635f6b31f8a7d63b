package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAppointmentState(t *testing.T) {
	a := &Appointment{}
	assert.Equal(t, AppointmentOpen, a.State())

	profileID := uuid.New()
	a.ProfileID = &profileID
	assert.Equal(t, AppointmentBooked, a.State())

	// Cancelled wins even with the booking retained for history.
	a.Cancelled = true
	assert.Equal(t, AppointmentCancelled, a.State())
}

func TestUUIDListReplacedPreservesOrder(t *testing.T) {
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	l := UUIDList{a, b, c}

	out := l.Replaced(b, d)
	assert.Equal(t, UUIDList{a, d, c}, out)
	assert.Equal(t, UUIDList{a, b, c}, l)
}

func TestUUIDListWithout(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	l := UUIDList{a, b, a}

	assert.Equal(t, UUIDList{b}, l.Without(a))
	assert.True(t, l.Contains(a))
	assert.False(t, UUIDList{b}.Contains(a))
}
