package owner

import "errors"

// Repository-level errors
var (
	// Not Found
	ErrOwnerNotFound = errors.New("owner not found")

	// Conflict. The unique index violation is translated into this single
	// domain-level message instead of leaking the database conflict code.
	ErrEmailAlreadyExists = errors.New("an owner with this email already exists")
)

// Validation errors
var (
	ErrInvalidOwnerID = errors.New("invalid owner id")
)
