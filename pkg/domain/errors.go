package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists.
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails.
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized is returned when the caller identity is missing or inactive.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrStorage is returned when the durable store fails in a way that is not
	// attributable to the request. The operation is guaranteed not to have
	// partially applied.
	ErrStorage = errors.New("storage failure")
)
