package session

import "errors"

var (
	ErrMissingToken = errors.New("no token provided")
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrNoSecret     = errors.New("token signing secret is empty")
)
