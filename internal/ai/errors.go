package ai

import (
	"errors"
	"net/http"
)

var (
	ErrEmptyResponse   = errors.New("received an empty response from the model")
	ErrInvalidResponse = errors.New("model response could not be parsed")
	ErrNotConfigured   = errors.New("generative model is not configured")
)

// MapHTTPStatus maps ai errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrEmptyResponse), errors.Is(err, ErrInvalidResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
