package cv

import (
	"errors"
	"net/http"
)

var (
	ErrUnknownField      = errors.New("unknown field")
	ErrUnknownCollection = errors.New("unknown collection")
	ErrUnknownSection    = errors.New("unknown section")
	ErrInvalidStyle      = errors.New("invalid section style")
)

// MapHTTPStatus maps cv errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnknownField),
		errors.Is(err, ErrUnknownCollection),
		errors.Is(err, ErrUnknownSection),
		errors.Is(err, ErrInvalidStyle):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
