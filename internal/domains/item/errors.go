package item

import "errors"

// Repository-level errors
var (
	// Not Found
	ErrItemNotFound = errors.New("item not found")
)

// Service-level errors
var (
	// Permission denial: the item exists, but the acting owner does not
	// own it. Reported distinctly from not-found.
	ErrPermissionDenied = errors.New("permission denied")
)

// Validation errors
var (
	ErrInvalidItemID  = errors.New("invalid item id")
	ErrInvalidOwnerID = errors.New("invalid owner id")
)
