package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/domain/user"
	"vaultkeeper/internal/infrastructure/storage"
)

// createUser writes the account hash only if the email key is free.
var createUser = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
redis.call('HSET', KEYS[1], 'id', ARGV[1], 'email', ARGV[2], 'password_hash', ARGV[3], 'created_at', ARGV[4])
return 1
`)

type UserRepository struct {
	db  storage.Handle[*redis.Client]
	log *slog.Logger
}

func NewUserRepository(db storage.Handle[*redis.Client], log *slog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log.With("repository", "user"),
	}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	client, err := r.db.Get(ctx)
	if err != nil {
		return err
	}

	created, err := createUser.Run(ctx, client, []string{userKey(u.Email)},
		u.ID, u.Email, u.PasswordHash, u.CreatedAt.UnixNano()).Int()
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	if created == 0 {
		return user.ErrAlreadyExists
	}

	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (user.User, error) {
	client, err := r.db.Get(ctx)
	if err != nil {
		return user.User{}, err
	}

	fields, err := client.HGetAll(ctx, userKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, fmt.Errorf("load user: %w", err)
	}
	if len(fields) == 0 {
		return user.User{}, user.ErrNotFound
	}

	created, err := strconv.ParseInt(fields["created_at"], 10, 64)
	if err != nil {
		return user.User{}, fmt.Errorf("decode user: %w", err)
	}

	return user.User{
		ID:           fields["id"],
		Email:        fields["email"],
		PasswordHash: fields["password_hash"],
		CreatedAt:    time.Unix(0, created).UTC(),
	}, nil
}
