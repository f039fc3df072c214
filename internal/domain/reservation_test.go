package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReservation(t *testing.T) {
	r, err := NewReservation(" 2025-05-01 ", "18:45", 2, " Ann ", "ann@example.com", "555 0100", "")
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, StatusPending, r.Status)
	assert.Equal(t, "2025-05-01", r.Date)
	assert.Equal(t, "Ann", r.Name)
	assert.False(t, r.CreatedAt.IsZero())

	_, err = NewReservation("2025-13-01", "25:00", 0, "", "ann", "x", "")
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 6)
}

func TestReservationTransitions(t *testing.T) {
	tests := []struct {
		from, to ReservationStatus
		ok       bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusPending, true},
		{StatusConfirmed, StatusPending, false},
		{StatusConfirmed, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			r := &Reservation{Status: tt.from}
			err := r.TransitionTo(tt.to)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.to, r.Status)
			} else {
				assert.ErrorIs(t, err, ErrInvalidStatusTransition)
				assert.Equal(t, tt.from, r.Status)
			}
		})
	}
}

func TestValidPhone(t *testing.T) {
	for _, p := range []string{"555-0101", "(555) 123-4567", "+44 20 7946 0958", "5550101"} {
		assert.True(t, ValidPhone(p), p)
	}
	for _, p := range []string{"", "12345", "call me", "+1234567890123456"} {
		assert.False(t, ValidPhone(p), p)
	}
}

func TestSpecialRequestsLimit(t *testing.T) {
	long := make([]byte, 1001)
	for i := range long {
		long[i] = 'a'
	}
	_, err := NewReservation("2025-05-01", "18:45", 2, "Ann", "ann@example.com", "5550100", string(long))
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "specialRequests", verrs[0].Field)
}
