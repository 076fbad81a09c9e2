package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidBody indicates a request body that could not be decoded or
// failed validation.
var ErrInvalidBody = errors.New("invalid request body")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Bind decodes the JSON request body into T and validates its `validate`
// struct tags.
func Bind[T any](r *http.Request) (T, error) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		return v, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if err := Validate(v); err != nil {
		return v, err
	}
	return v, nil
}

// Validate checks the `validate` struct tags of v. Non-struct values pass.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", ErrInvalidBody, strings.Join(fields, ", "))
	}

	return fmt.Errorf("%w: %v", ErrInvalidBody, err)
}
