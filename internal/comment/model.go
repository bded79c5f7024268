package comment

import (
	"net/http"
	"time"

	"github.com/peershare/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrItemNotFound       = apperror.New(http.StatusNotFound, "item not found")
	ErrBlankText          = apperror.New(http.StatusBadRequest, "comment text must not be blank")
	ErrNoCompletedBooking = apperror.New(http.StatusBadRequest, "user never completed a booking of this item")
)

// Comment is post-rental feedback on an item. Only users with a finished
// APPROVED booking of the item may leave one.
type Comment struct {
	ID         int64
	Text       string
	ItemID     int64
	AuthorID   int64
	AuthorName string
	Created    time.Time
}
