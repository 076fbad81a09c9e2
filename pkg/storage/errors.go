package storage

import "errors"

var (
	// ErrNotFound indicates the requested key does not exist.
	ErrNotFound = errors.New("storage: key not found")

	// ErrPermissionDenied indicates the backend refused access to the key.
	ErrPermissionDenied = errors.New("storage: permission denied")

	// ErrInvalidKey indicates an empty, absolute or traversing key.
	ErrInvalidKey = errors.New("storage: invalid key")

	// ErrUnknownBackend indicates a backend name with no implementation.
	ErrUnknownBackend = errors.New("storage: unknown backend")
)
