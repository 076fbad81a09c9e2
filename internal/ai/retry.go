package ai

import (
	"context"
	"errors"
	"net/http"
	"time"

	"google.golang.org/genai"
)

// retry runs fn until it succeeds, fails with a permanent error or has been
// retried maxRetries times. The wait starts at backoff and doubles.
func retry[T any](ctx context.Context, maxRetries int, backoff time.Duration, fn func() (T, error)) (T, error) {
	var zero T
	for attempt := 0; ; attempt++ {
		v, err := fn()
		if err == nil {
			return v, nil
		}
		if attempt >= maxRetries || !transient(err) {
			return zero, err
		}

		select {
		case <-time.After(backoff << attempt):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

func transient(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}
	return false
}
