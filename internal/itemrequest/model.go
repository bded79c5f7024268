package itemrequest

import (
	"net/http"
	"time"

	"github.com/peershare/item-sharing-backend/internal/item"
	"github.com/peershare/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "item request not found")
	ErrDescriptionRequired = apperror.New(http.StatusBadRequest, "request description must not be blank")
)

// ItemRequest is a plea for an item not yet listed in the catalog.
type ItemRequest struct {
	ID          int64
	Description string
	RequesterID int64
	Created     time.Time
}

// WithResponses pairs a request with the catalog items answering it.
type WithResponses struct {
	ItemRequest
	Items []*item.Item
}
