package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    ReservationStatus
		to      ReservationStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusConfirmed, false},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCompleted, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			r := &Reservation{Status: tt.from}
			assert.Equal(t, tt.allowed, r.CanTransitionTo(tt.to))
		})
	}
}

func TestCanBeCancelled(t *testing.T) {
	assert.True(t, (&Reservation{Status: StatusPending}).CanBeCancelled())
	assert.True(t, (&Reservation{Status: StatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Reservation{Status: StatusCancelled}).CanBeCancelled())
	assert.False(t, (&Reservation{Status: StatusCompleted}).CanBeCancelled())
}

func TestStartsAt(t *testing.T) {
	r := &Reservation{
		Date:        time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartMinute: 630, // 10:30
		EndMinute:   720,
	}

	assert.Equal(t, time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC), r.StartsAt())
}

func TestBlocks(t *testing.T) {
	assert.True(t, (&Reservation{Status: StatusConfirmed}).Blocks())
	assert.False(t, (&Reservation{Status: StatusPending}).Blocks())
	assert.False(t, (&Reservation{Status: StatusCancelled}).Blocks())
	assert.False(t, (&Reservation{Status: StatusCompleted}).Blocks())
}
