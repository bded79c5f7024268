package item

import (
	"net/http"

	"github.com/peershare/item-sharing-backend/internal/booking"
	"github.com/peershare/item-sharing-backend/internal/comment"
	"github.com/peershare/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "item not found")
	ErrNotOwned            = apperror.New(http.StatusNotFound, "user does not own this item")
	ErrNoItems             = apperror.New(http.StatusNotFound, "no items found for user")
	ErrRequestNotFound     = apperror.New(http.StatusNotFound, "item request not found")
	ErrNameRequired        = apperror.New(http.StatusBadRequest, "item name must not be blank")
	ErrDescriptionRequired = apperror.New(http.StatusBadRequest, "item description must not be blank")
	ErrAvailableRequired   = apperror.New(http.StatusBadRequest, "item availability must be set")
	ErrNoImage             = apperror.New(http.StatusNotFound, "item has no image")
	ErrInvalidImage        = apperror.New(http.StatusBadRequest, "file is not a valid image")
)

// Item is a listing in the catalog. The owner reference never changes after
// creation; RequestID points at the item request this listing answers, if
// any.
type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   *int64
	ImagePath   *string
}

// Detail is the item view served to a single requester: the listing plus
// its comments, annotated with the nearest past and future approved
// bookings when the requester owns the item.
type Detail struct {
	Item
	LastBooking *booking.Ref
	NextBooking *booking.Ref
	Comments    []*comment.Comment
}
