package request

import (
	"net/http"

	"github.com/peershare/item-sharing-backend/internal/pkg/apperror"
)

// PageParams holds offset-based pagination query parameters shared by list
// endpoints. The page served is from/size (integer division) of length size.
type PageParams struct {
	From int `form:"from,default=0"`
	Size int `form:"size,default=10"`
}

var (
	ErrNegativeFrom = apperror.New(http.StatusBadRequest, "from must not be negative")
	ErrInvalidSize  = apperror.New(http.StatusBadRequest, "size must be positive")
)

// Validate checks pagination bounds before any storage access.
func (p PageParams) Validate() error {
	if p.From < 0 {
		return ErrNegativeFrom
	}
	if p.Size < 1 {
		return ErrInvalidSize
	}
	return nil
}

// Offset returns the query offset for the page containing From.
func (p PageParams) Offset() int {
	return (p.From / p.Size) * p.Size
}
