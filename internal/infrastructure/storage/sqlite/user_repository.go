package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"vaultkeeper/internal/domain/user"
	"vaultkeeper/internal/infrastructure/storage"
)

type UserRepository struct {
	db  storage.Handle[*sql.DB]
	log *slog.Logger
}

func NewUserRepository(db storage.Handle[*sql.DB], log *slog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log.With("repository", "user"),
	}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	db, err := r.db.Get(ctx)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.CreatedAt.UnixNano())
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (user.User, error) {
	db, err := r.db.Get(ctx)
	if err != nil {
		return user.User{}, err
	}

	var (
		u       user.User
		created int64
	)
	err = db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, fmt.Errorf("select user: %w", err)
	}
	u.CreatedAt = time.Unix(0, created).UTC()

	return u, nil
}
