package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrUnpresentable is returned when an account record is too incomplete to be shown to a client
	ErrUnpresentable = errors.New("account cannot be presented")
	// ErrIntegrity is returned when a write sequence left persisted state inconsistent
	ErrIntegrity = errors.New("data integrity violation")
)
