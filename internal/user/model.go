package user

import (
	"net/http"

	"github.com/peershare/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed = apperror.New(http.StatusConflict, "email already used")
	ErrInvalidName      = apperror.New(http.StatusBadRequest, "name must not be blank or contain spaces")
	ErrInvalidEmail     = apperror.New(http.StatusBadRequest, "email must not be blank and must contain @")
)

// User represents a member of the sharing marketplace. Items and bookings
// reference users but never own them.
type User struct {
	ID    int64
	Name  string
	Email string
}
