package export

import (
	"errors"
	"net/http"
)

var (
	ErrEmptyHTML  = errors.New("nothing to export")
	ErrTooLarge   = errors.New("markup is too large")
	ErrRender     = errors.New("pdf rendering failed")
	ErrInvalidPDF = errors.New("rendered pdf is invalid")
)

// MapHTTPStatus maps export errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrEmptyHTML):
		return http.StatusBadRequest
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrRender):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
