package vault

import "errors"

var (
	ErrValidation = errors.New("invalid item")
	// ErrNotFound covers both a missing item and an item owned by someone else.
	ErrNotFound  = errors.New("item not found or user unauthorized")
	ErrMissingID = errors.New("item id is required")
)
