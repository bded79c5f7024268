package booking

import "time"

// ResolveNearest picks the temporally-nearest past and future bookings out
// of an item's APPROVED bookings, which must be ordered by End ascending.
//
// The candidates are seeded from the extremes of the end-ascending list and
// only replaced by a strictly better booking: among bookings already over,
// the one with the latest End wins; among bookings not yet started, the one
// with the earliest End wins. With a single approved booking it becomes the
// last booking and there is no next one.
func ResolveNearest(approved []*Booking, now time.Time) (last, next *Ref) {
	if len(approved) == 0 {
		return nil, nil
	}
	if len(approved) == 1 {
		return refOf(approved[0]), nil
	}

	lastCand := approved[0]
	nextCand := approved[len(approved)-1]
	for _, b := range approved {
		if b.End.Before(now) && b.End.After(lastCand.End) {
			lastCand = b
		}
		if b.Start.After(now) && b.End.Before(nextCand.End) {
			nextCand = b
		}
	}

	return refOf(lastCand), refOf(nextCand)
}

func refOf(b *Booking) *Ref {
	return &Ref{ID: b.ID, BookerID: b.BookerID}
}
