package enhance

import (
	"errors"
	"net/http"

	"github.com/talentosprecato/Mari/internal/ai"
	"github.com/talentosprecato/Mari/internal/imports"
)

var (
	ErrNotFound = errors.New("enhancement not found")
	ErrNoFile   = errors.New("a cv file is required")
)

// MapHTTPStatus maps enhancement errors to HTTP status codes. Failures of the
// read and parse steps keep the status of the package that produced them.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNoFile):
		return http.StatusBadRequest
	}

	if status := imports.MapHTTPStatus(err); status != http.StatusInternalServerError {
		return status
	}
	return ai.MapHTTPStatus(err)
}
