package booking

import (
	"net/http"
	"time"

	"github.com/peershare/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrOwnBooking       = apperror.New(http.StatusNotFound, "owner cannot book own item")
	ErrNotOwner         = apperror.New(http.StatusNotFound, "user is not the owner of the booked item")
	ErrNotAuthorized    = apperror.New(http.StatusNotFound, "user has no access to this booking")
	ErrItemUnavailable  = apperror.New(http.StatusBadRequest, "item is not available for booking")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "invalid booking time range")
	ErrAlreadyApproved  = apperror.New(http.StatusBadRequest, "booking is already approved")
	ErrUnknownState     = apperror.New(http.StatusBadRequest, "Unknown state: UNSUPPORTED_STATUS")
)

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// State is the case-sensitive token selecting a temporal or status filter
// for booking listings.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState validates a state token. Matching is exact; anything else is
// rejected before storage is touched.
func ParseState(s string) (State, error) {
	switch State(s) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return State(s), nil
	}
	return "", ErrUnknownState
}

// Booking is a request to rent an item for the [Start, End) window.
// Item and booker references are immutable once created; only Status moves,
// WAITING -> APPROVED | REJECTED.
type Booking struct {
	ID          int64
	Start       time.Time
	End         time.Time
	ItemID      int64
	ItemName    string
	ItemOwnerID int64
	BookerID    int64
	BookerName  string
	Status      Status
}

// Ref is the reduced booking view attached to item details: just the
// booking and its booker. Absence is expressed as a nil *Ref, never a
// zero-valued record.
type Ref struct {
	ID       int64
	BookerID int64
}
