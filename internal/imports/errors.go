package imports

import (
	"errors"
	"net/http"
)

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooManyPages    = errors.New("document has too many pages")
	ErrTooLarge        = errors.New("file is too large")
	ErrUnreadable      = errors.New("file could not be read")
)

// MapHTTPStatus maps import errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrEmptyFile),
		errors.Is(err, ErrTooManyPages),
		errors.Is(err, ErrUnreadable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
