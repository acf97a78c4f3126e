package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReservation(t *testing.T) {
	r := NewReservation(3, []uint64{1, 2, 5}, "Jan Kowalski", "jan@example.com", 7500)

	assert.Equal(t, StatusPending, r.Status)
	assert.Equal(t, uint64(3), r.ScreeningID)
	assert.Equal(t, 3, r.SeatCount())
	assert.Equal(t, "75.00", r.TotalPrice())
	require.False(t, r.CreatedAt.IsZero())
}

func TestReservationStateTransitions(t *testing.T) {
	r := NewReservation(1, []uint64{1}, "a", "a@b.c", 100)

	r.Confirm()
	assert.Equal(t, StatusConfirmed, r.Status)

	r.Cancel()
	assert.Equal(t, StatusCancelled, r.Status)
}
