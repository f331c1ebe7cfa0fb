package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/infrastructure/storage"
)

const uniqueViolation = "23505"

// Storage owns the process-wide pool. The pool is dialed on the first query.
type Storage struct {
	handle *storage.Lazy[*pgxpool.Pool]
	log    *slog.Logger
}

func New(databaseURI string, log *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(databaseURI)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	log = log.With("component", "postgres")
	open := func(ctx context.Context) (*pgxpool.Pool, error) {
		pool, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		log.Info("connection pool established", "host", cfg.ConnConfig.Host)
		return pool, nil
	}

	return &Storage{
		handle: storage.NewLazy(open, func(p *pgxpool.Pool) error {
			p.Close()
			return nil
		}),
		log: log,
	}, nil
}

func (s *Storage) Users() *UserRepository {
	return NewUserRepository(s.handle, s.log)
}

func (s *Storage) Vault() *VaultRepository {
	return NewVaultRepository(s.handle, s.log)
}

func (s *Storage) Ping(ctx context.Context) error {
	pool, err := s.handle.Get(ctx)
	if err != nil {
		return err
	}
	return pool.Ping(ctx)
}

func (s *Storage) Close() error {
	return s.handle.Close()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
