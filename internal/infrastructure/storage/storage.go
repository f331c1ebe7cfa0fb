// Package storage holds what the backends share: the lazily opened
// connection handle and the scheme names used to pick a backend.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	SchemePostgres   = "postgres"
	SchemePostgreSQL = "postgresql"
	SchemeSQLite     = "sqlite3"
	SchemeRedis      = "redis"
	SchemeRedisTLS   = "rediss"
	SchemeMemory     = "memory"
)

var (
	ErrClosed            = errors.New("storage handle closed")
	ErrUnsupportedScheme = errors.New("unsupported database scheme")
)

// Handle hands out the shared connection, opening it on first use.
type Handle[T any] interface {
	Get(ctx context.Context) (T, error)
}

// Scheme returns the lower-cased scheme of a DATABASE_URI.
func Scheme(databaseURI string) (string, error) {
	u, err := url.Parse(databaseURI)
	if err != nil {
		return "", fmt.Errorf("parse database uri: %w", err)
	}
	if u.Scheme == "" {
		return "", fmt.Errorf("%w: missing scheme", ErrUnsupportedScheme)
	}

	scheme := strings.ToLower(u.Scheme)
	switch scheme {
	case SchemePostgres, SchemePostgreSQL, SchemeSQLite, SchemeRedis, SchemeRedisTLS, SchemeMemory:
		return scheme, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
}
