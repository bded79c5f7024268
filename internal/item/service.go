package item

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/peershare/item-sharing-backend/internal/booking"
	"github.com/peershare/item-sharing-backend/internal/comment"
	"github.com/peershare/item-sharing-backend/internal/pkg/request"
	"github.com/peershare/item-sharing-backend/internal/pkg/storage"
	"github.com/peershare/item-sharing-backend/internal/user"
)

type CreateRequest struct {
	Name        string
	Description string
	Available   *bool
	RequestID   *int64
}

// UpdateRequest carries a partial item update. Ownership is never part of
// it; the owner reference is immutable.
type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

type Service interface {
	Create(ctx context.Context, ownerID int64, req CreateRequest) (*Item, error)
	Update(ctx context.Context, requesterID, itemID int64, req UpdateRequest) (*Item, error)

	// GetByID serves the detail view. Only the owner sees the last/next
	// booking annotations; everyone sees the comments.
	GetByID(ctx context.Context, requesterID, itemID int64) (*Detail, error)

	// ListByOwner serves the owner's items with the same enrichment.
	ListByOwner(ctx context.Context, ownerID int64, page request.PageParams) ([]*Detail, error)

	Search(ctx context.Context, text string, page request.PageParams) ([]*Item, error)

	UploadImage(ctx context.Context, requesterID, itemID int64, content io.Reader) (*Item, error)
	GetImage(ctx context.Context, itemID int64) (io.ReadCloser, error)
}

type service struct {
	repo     Repository
	users    user.Service
	bookings booking.Repository
	comments comment.Service
	store    storage.Storage
	images   *storage.ImageProcessor
}

func NewService(
	repo Repository,
	users user.Service,
	bookings booking.Repository,
	comments comment.Service,
	store storage.Storage,
	images *storage.ImageProcessor,
) Service {
	return &service{
		repo:     repo,
		users:    users,
		bookings: bookings,
		comments: comments,
		store:    store,
		images:   images,
	}
}

func (s *service) Create(ctx context.Context, ownerID int64, req CreateRequest) (*Item, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescriptionRequired
	}
	if req.Available == nil {
		return nil, ErrAvailableRequired
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if req.RequestID != nil {
		exists, err := s.repo.RequestExists(ctx, *req.RequestID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrRequestNotFound
		}
	}

	i := &Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		OwnerID:     owner.ID,
		RequestID:   req.RequestID,
	}

	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *service) Update(ctx context.Context, requesterID, itemID int64, req UpdateRequest) (*Item, error) {
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}

	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if i.OwnerID != requesterID {
		return nil, ErrNotOwned
	}

	if req.Name != nil {
		i.Name = *req.Name
	}
	if req.Description != nil {
		i.Description = *req.Description
	}
	if req.Available != nil {
		i.Available = *req.Available
	}

	if err := s.repo.Update(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *service) GetByID(ctx context.Context, requesterID, itemID int64) (*Detail, error) {
	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, i, requesterID)
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, page request.PageParams) ([]*Detail, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByOwner(ctx, ownerID, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	details := make([]*Detail, len(items))
	for idx, i := range items {
		d, err := s.enrich(ctx, i, ownerID)
		if err != nil {
			return nil, err
		}
		details[idx] = d
	}
	return details, nil
}

// enrich attaches comments and, for the owner, the nearest past and future
// approved bookings to an item.
func (s *service) enrich(ctx context.Context, i *Item, requesterID int64) (*Detail, error) {
	d := &Detail{Item: *i}

	if i.OwnerID == requesterID {
		approved, err := s.bookings.ApprovedForItem(ctx, i.ID)
		if err != nil {
			return nil, err
		}
		d.LastBooking, d.NextBooking = booking.ResolveNearest(approved, time.Now())
	}

	comments, err := s.comments.ListForItem(ctx, i.ID)
	if err != nil {
		return nil, err
	}
	d.Comments = comments

	return d, nil
}

func (s *service) Search(ctx context.Context, text string, page request.PageParams) ([]*Item, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return []*Item{}, nil
	}
	return s.repo.Search(ctx, text, page.Size, page.Offset())
}

const (
	imageMaxWidth  = 1000
	imageMaxHeight = 1000
)

func (s *service) UploadImage(ctx context.Context, requesterID, itemID int64, content io.Reader) (*Item, error) {
	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if i.OwnerID != requesterID {
		return nil, ErrNotOwned
	}

	fitted, err := s.images.FitJPEG(content, imageMaxWidth, imageMaxHeight)
	if err != nil {
		return nil, ErrInvalidImage
	}

	path := fmt.Sprintf("items/%s.jpg", uuid.NewString())
	if err := s.store.Save(ctx, path, fitted); err != nil {
		return nil, err
	}

	if err := s.repo.SetImagePath(ctx, itemID, path); err != nil {
		// Do not leave an orphaned file behind.
		_ = s.store.Delete(ctx, path)
		return nil, err
	}

	if i.ImagePath != nil {
		_ = s.store.Delete(ctx, *i.ImagePath)
	}

	i.ImagePath = &path
	return i, nil
}

func (s *service) GetImage(ctx context.Context, itemID int64) (io.ReadCloser, error) {
	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if i.ImagePath == nil {
		return nil, ErrNoImage
	}
	return s.store.Get(ctx, *i.ImagePath)
}
