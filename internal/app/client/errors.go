package client

import (
	"errors"
	"fmt"
)

var (
	ErrNotLoggedIn      = errors.New("not logged in")
	ErrUnauthenticated  = errors.New("authentication required")
	ErrSessionExpired   = errors.New("session invalid or expired, log in again")
	ErrNotFound         = errors.New("item not found")
	ErrMissingMasterKey = errors.New("master password required")
)

// APIError is a non-2xx answer the client has no sentinel for.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}
	return fmt.Sprintf("server returned status %d: %s", e.Status, e.Message)
}
