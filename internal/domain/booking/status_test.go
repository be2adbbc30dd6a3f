package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

func TestCanTransition(t *testing.T) {
	allowed := map[Status][]Status{
		StatusPending:    {StatusConfirmed, StatusCancelled},
		StatusConfirmed:  {StatusInProgress, StatusCompleted, StatusCancelled},
		StatusInProgress: {StatusCompleted, StatusCancelled},
	}
	all := []Status{StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, ok := range allowed[from] {
				if ok == to {
					want = true
				}
			}

			err := CanTransition(from, to)
			if want {
				assert.NoError(t, err, "%s -> %s", from, to)
			} else {
				assert.True(t, httperr.IsBusiness(err, "invalid_status_transition"), "%s -> %s", from, to)
			}
		}
	}
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("in-progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, st)

	_, err = ParseStatus("in_progress")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestTransitionStampsTimestamps(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	b := &models.Booking{Status: string(StatusPending)}

	require.NoError(t, Transition(b, StatusConfirmed, now, 9, ""))
	require.NotNil(t, b.ConfirmedAt)
	assert.Equal(t, now, *b.ConfirmedAt)

	require.NoError(t, Transition(b, StatusInProgress, now, 9, ""))
	require.NotNil(t, b.StartedAt)

	require.NoError(t, Transition(b, StatusCancelled, now, 9, "cliente desistiu"))
	require.NotNil(t, b.CancelledAt)
	require.NotNil(t, b.CancelledBy)
	assert.Equal(t, uint(9), *b.CancelledBy)
	assert.Equal(t, "cliente desistiu", b.CancellationReason)

	err := Transition(b, StatusConfirmed, now, 9, "")
	assert.True(t, httperr.IsBusiness(err, "invalid_status_transition"))
	assert.Equal(t, string(StatusCancelled), b.Status)
}

func TestTotals(t *testing.T) {
	amount, duration, lines := Totals([]models.Service{
		{ID: 1, Name: "Corte", Price: 45.5, DurationMin: 30},
		{ID: 2, Name: "Barba", Price: 30, DurationMin: 20},
	})

	assert.InDelta(t, 75.5, amount, 0.0001)
	assert.Equal(t, 50, duration)
	require.Len(t, lines, 2)
	assert.Equal(t, uint(2), lines[1].ServiceID)
	assert.Equal(t, "Barba", lines[1].Name)
}
