package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvedBooking(id, bookerID int64, start, end time.Time) *Booking {
	return &Booking{
		ID:       id,
		Start:    start,
		End:      end,
		BookerID: bookerID,
		Status:   StatusApproved,
	}
}

func TestResolveNearest(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("No Approved Bookings", func(t *testing.T) {
		last, next := ResolveNearest(nil, now)
		assert.Nil(t, last, "No bookings should yield no last booking")
		assert.Nil(t, next, "No bookings should yield no next booking")
	})

	t.Run("Single Booking Becomes Last", func(t *testing.T) {
		only := approvedBooking(7, 42, now.Add(24*time.Hour), now.Add(48*time.Hour))

		last, next := ResolveNearest([]*Booking{only}, now)
		require.NotNil(t, last, "The single booking should become the last booking")
		assert.Equal(t, int64(7), last.ID)
		assert.Equal(t, int64(42), last.BookerID)
		assert.Nil(t, next, "A single booking leaves no next booking")
	})

	t.Run("Past And Future Mix", func(t *testing.T) {
		// Ordered by end ascending: two finished rentals and one upcoming.
		a := approvedBooking(1, 10, now.Add(-5*24*time.Hour), now.Add(-3*24*time.Hour))
		b := approvedBooking(2, 11, now.Add(-2*24*time.Hour), now.Add(-24*time.Hour))
		c := approvedBooking(3, 12, now.Add(time.Hour), now.Add(24*time.Hour))

		last, next := ResolveNearest([]*Booking{a, b, c}, now)
		require.NotNil(t, last)
		require.NotNil(t, next)
		assert.Equal(t, int64(2), last.ID, "The most recently ended booking should be last")
		assert.Equal(t, int64(3), next.ID, "The upcoming booking should be next")
	})

	t.Run("Earliest Ending Future Wins Next", func(t *testing.T) {
		past := approvedBooking(1, 10, now.Add(-48*time.Hour), now.Add(-24*time.Hour))
		soon := approvedBooking(2, 11, now.Add(2*time.Hour), now.Add(26*time.Hour))
		later := approvedBooking(3, 12, now.Add(time.Hour), now.Add(72*time.Hour))

		last, next := ResolveNearest([]*Booking{past, soon, later}, now)
		require.NotNil(t, next)
		assert.Equal(t, int64(2), next.ID, "Among future bookings the one ending first should be next")
		require.NotNil(t, last)
		assert.Equal(t, int64(1), last.ID)
	})

	t.Run("All Future", func(t *testing.T) {
		first := approvedBooking(1, 10, now.Add(time.Hour), now.Add(24*time.Hour))
		second := approvedBooking(2, 11, now.Add(48*time.Hour), now.Add(72*time.Hour))

		last, next := ResolveNearest([]*Booking{first, second}, now)
		// With nothing ended yet the seed from the list head stands in as last.
		require.NotNil(t, last)
		assert.Equal(t, int64(1), last.ID)
		require.NotNil(t, next)
		assert.Equal(t, int64(1), next.ID, "The soonest-ending future booking should be next")
	})

	t.Run("All Past", func(t *testing.T) {
		older := approvedBooking(1, 10, now.Add(-96*time.Hour), now.Add(-72*time.Hour))
		newer := approvedBooking(2, 11, now.Add(-48*time.Hour), now.Add(-24*time.Hour))

		last, next := ResolveNearest([]*Booking{older, newer}, now)
		require.NotNil(t, last)
		assert.Equal(t, int64(2), last.ID, "The latest-ending past booking should be last")
		// Nothing starts in the future, so the seed from the list tail stands.
		require.NotNil(t, next)
		assert.Equal(t, int64(2), next.ID)
	})
}
