package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/infrastructure/storage"
)

const defaultParams = "_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"

type Storage struct {
	handle *storage.Lazy[*sql.DB]
	log    *slog.Logger
}

// DSN turns sqlite3://path into a driver DSN with foreign keys enabled.
func DSN(databaseURI string) (string, error) {
	path, ok := strings.CutPrefix(databaseURI, storage.SchemeSQLite+"://")
	if !ok || path == "" {
		return "", fmt.Errorf("%w: %q", storage.ErrUnsupportedScheme, databaseURI)
	}
	if strings.Contains(path, "?") {
		return "file:" + path + "&" + defaultParams, nil
	}
	return "file:" + path + "?" + defaultParams, nil
}

func New(databaseURI string, log *slog.Logger) (*Storage, error) {
	dsn, err := DSN(databaseURI)
	if err != nil {
		return nil, err
	}

	log = log.With("component", "sqlite")
	open := func(ctx context.Context) (*sql.DB, error) {
		db, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("ping sqlite: %w", err)
		}
		log.Info("database opened")
		return db, nil
	}

	return &Storage{
		handle: storage.NewLazy(open, func(db *sql.DB) error { return db.Close() }),
		log:    log,
	}, nil
}

func (s *Storage) Users() *UserRepository {
	return NewUserRepository(s.handle, s.log)
}

func (s *Storage) Vault() *VaultRepository {
	return NewVaultRepository(s.handle, s.log)
}

func (s *Storage) Ping(ctx context.Context) error {
	db, err := s.handle.Get(ctx)
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.handle.Close()
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
