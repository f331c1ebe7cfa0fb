package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/domain/user"
	"vaultkeeper/internal/infrastructure/storage"
)

type UserRepository struct {
	db  storage.Handle[*pgxpool.Pool]
	log *slog.Logger
}

func NewUserRepository(db storage.Handle[*pgxpool.Pool], log *slog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log.With("repository", "user"),
	}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	pool, err := r.db.Get(ctx)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		u.ID, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (user.User, error) {
	pool, err := r.db.Get(ctx)
	if err != nil {
		return user.User{}, err
	}

	var u user.User
	err = pool.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, fmt.Errorf("select user: %w", err)
	}

	return u, nil
}
