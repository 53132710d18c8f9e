package models

import "errors"

// Error taxonomy shared by the inventory and issuance services. Callers
// match with errors.Is; the HTTP layer maps each kind to a status code.
var (
	// ErrPermissionDenied indicates the acting role lacks mutate capability.
	// It is raised before any state is touched.
	ErrPermissionDenied = errors.New("role does not permit mutation")

	// ErrValidation indicates a missing or malformed required field.
	ErrValidation = errors.New("invalid request")

	// ErrInsufficientStock indicates a decrement larger than the remaining
	// quantity.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrNotFound indicates the referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPersistence indicates the store failed after validation passed.
	ErrPersistence = errors.New("persistence failure")
)
