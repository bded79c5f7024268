package comment

import (
	"context"
	"strings"
	"time"

	"github.com/peershare/item-sharing-backend/internal/user"
)

// BookingChecker answers whether a user finished a rental of an item.
// Satisfied by the booking repository.
type BookingChecker interface {
	HasCompletedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

// ItemChecker reports whether a catalog item exists. Satisfied by the item
// repository.
type ItemChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type Service interface {
	// Create records a comment, permitted only when the author has an
	// APPROVED booking of the item whose end time has passed.
	Create(ctx context.Context, authorID, itemID int64, text string) (*Comment, error)

	ListForItem(ctx context.Context, itemID int64) ([]*Comment, error)
}

type service struct {
	repo     Repository
	bookings BookingChecker
	items    ItemChecker
	users    user.Service
}

func NewService(repo Repository, bookings BookingChecker, items ItemChecker, users user.Service) Service {
	return &service{
		repo:     repo,
		bookings: bookings,
		items:    items,
		users:    users,
	}
}

func (s *service) Create(ctx context.Context, authorID, itemID int64, text string) (*Comment, error) {
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	exists, err := s.items.Exists(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrItemNotFound
	}

	now := time.Now()
	completed, err := s.bookings.HasCompletedBooking(ctx, authorID, itemID, now)
	if err != nil {
		return nil, err
	}
	if !completed {
		return nil, ErrNoCompletedBooking
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrBlankText
	}

	cm := &Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Created:    now,
	}

	if err := s.repo.Create(ctx, cm); err != nil {
		return nil, err
	}
	return cm, nil
}

func (s *service) ListForItem(ctx context.Context, itemID int64) ([]*Comment, error) {
	return s.repo.ListForItem(ctx, itemID)
}
