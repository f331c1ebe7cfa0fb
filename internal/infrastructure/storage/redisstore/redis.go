package redisstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/infrastructure/storage"
)

const keyPrefix = "vault:"

func userKey(email string) string    { return keyPrefix + "user:email:" + email }
func itemKey(id string) string       { return keyPrefix + "item:" + id }
func ownerKey(ownerID string) string { return keyPrefix + "owner:" + ownerID + ":items" }
func seqKey(ownerID string) string   { return keyPrefix + "owner:" + ownerID + ":seq" }

type Storage struct {
	handle *storage.Lazy[*redis.Client]
	log    *slog.Logger
}

func New(databaseURI string, log *slog.Logger) (*Storage, error) {
	opt, err := redis.ParseURL(databaseURI)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	log = log.With("component", "redis")
	open := func(ctx context.Context) (*redis.Client, error) {
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		log.Info("client connected", "addr", opt.Addr)
		return client, nil
	}

	return &Storage{
		handle: storage.NewLazy(open, func(c *redis.Client) error { return c.Close() }),
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
	client, err := s.handle.Get(ctx)
	if err != nil {
		return err
	}
	return client.Ping(ctx).Err()
}

func (s *Storage) Close() error {
	return s.handle.Close()
}

// pairs turns a flat HGETALL reply into a map.
func pairs(reply any) (map[string]string, error) {
	flat, ok := reply.([]any)
	if !ok || len(flat)%2 != 0 {
		return nil, fmt.Errorf("unexpected script reply %T", reply)
	}
	m := make(map[string]string, len(flat)/2)
	for i := 0; i < len(flat); i += 2 {
		k, _ := flat[i].(string)
		v, _ := flat[i+1].(string)
		m[k] = v
	}
	return m, nil
}
