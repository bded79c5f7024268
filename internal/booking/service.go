package booking

import (
	"context"
	"time"

	"github.com/peershare/item-sharing-backend/internal/pkg/request"
	"github.com/peershare/item-sharing-backend/internal/user"
)

// ItemInfo is the slice of catalog data the booking engine needs.
type ItemInfo struct {
	ID        int64
	Name      string
	OwnerID   int64
	Available bool
}

// ItemSource provides catalog lookups without depending on the item module.
type ItemSource interface {
	Info(ctx context.Context, id int64) (*ItemInfo, error)
}

type CreateRequest struct {
	BookerID int64
	ItemID   int64
	Start    time.Time
	End      time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)

	// Decide moves a booking to APPROVED or REJECTED. Only the owner of
	// the booked item may decide, and an APPROVED booking is terminal.
	Decide(ctx context.Context, ownerID, bookingID int64, approve bool) (*Booking, error)

	// GetByID is visible to the booking's booker and the item's owner only.
	GetByID(ctx context.Context, requesterID, bookingID int64) (*Booking, error)

	ListForBooker(ctx context.Context, bookerID int64, state string, page request.PageParams) ([]*Booking, error)
	ListForOwner(ctx context.Context, ownerID int64, state string, page request.PageParams) ([]*Booking, error)
}

type service struct {
	repo  Repository
	items ItemSource
	users user.Service
}

func NewService(repo Repository, items ItemSource, users user.Service) Service {
	return &service{
		repo:  repo,
		items: items,
		users: users,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	booker, err := s.users.GetByID(ctx, req.BookerID)
	if err != nil {
		return nil, err
	}

	item, err := s.items.Info(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	if item.OwnerID == req.BookerID {
		return nil, ErrOwnBooking
	}
	if !item.Available {
		return nil, ErrItemUnavailable
	}

	// Equal timestamps are rejected; start must not lie in the past.
	if req.Start.IsZero() || req.End.IsZero() ||
		!req.Start.Before(req.End) ||
		req.Start.Before(time.Now()) {
		return nil, ErrInvalidTimeRange
	}

	b := &Booking{
		Start:       req.Start,
		End:         req.End,
		ItemID:      item.ID,
		ItemName:    item.Name,
		ItemOwnerID: item.OwnerID,
		BookerID:    booker.ID,
		BookerName:  booker.Name,
		Status:      StatusWaiting,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Decide(ctx context.Context, ownerID, bookingID int64, approve bool) (*Booking, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.ItemOwnerID != ownerID {
		return nil, ErrNotOwner
	}
	if b.Status == StatusApproved {
		return nil, ErrAlreadyApproved
	}

	status := StatusRejected
	if approve {
		status = StatusApproved
	}

	if err := s.repo.UpdateStatusIfNotApproved(ctx, bookingID, status); err != nil {
		return nil, err
	}

	b.Status = status
	return b, nil
}

func (s *service) GetByID(ctx context.Context, requesterID, bookingID int64) (*Booking, error) {
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.BookerID != requesterID && b.ItemOwnerID != requesterID {
		return nil, ErrNotAuthorized
	}
	return b, nil
}

func (s *service) ListForBooker(ctx context.Context, bookerID int64, state string, page request.PageParams) ([]*Booking, error) {
	st, err := s.listChecks(ctx, bookerID, state, page)
	if err != nil {
		return nil, err
	}
	return s.repo.ListForBooker(ctx, bookerID, st, time.Now(), page.Size, page.Offset())
}

func (s *service) ListForOwner(ctx context.Context, ownerID int64, state string, page request.PageParams) ([]*Booking, error) {
	st, err := s.listChecks(ctx, ownerID, state, page)
	if err != nil {
		return nil, err
	}
	return s.repo.ListForOwner(ctx, ownerID, st, time.Now(), page.Size, page.Offset())
}

// listChecks runs the shared listing preconditions: the user exists, the
// state token is known and pagination is sane, all before storage is hit.
func (s *service) listChecks(ctx context.Context, userID int64, state string, page request.PageParams) (State, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return "", err
	}
	st, err := ParseState(state)
	if err != nil {
		return "", err
	}
	if err := page.Validate(); err != nil {
		return "", err
	}
	return st, nil
}
