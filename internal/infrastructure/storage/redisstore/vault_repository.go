package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/domain/vault"
	"vaultkeeper/internal/infrastructure/storage"
)

// Each script checks owner_id and acts in the same atomic step. A missing
// key and a foreign owner both return nil.
var (
	// The owner's sequence gives the index score, so equal timestamps
	// still list in insertion order.
	createItem = redis.NewScript(`
local seq = redis.call('INCR', KEYS[3])
redis.call('HSET', KEYS[1], unpack(ARGV, 2))
redis.call('ZADD', KEYS[2], seq, ARGV[1])
return seq
`)

	getItem = redis.NewScript(`
if redis.call('HGET', KEYS[1], 'owner_id') ~= ARGV[1] then
	return false
end
return redis.call('HGETALL', KEYS[1])
`)

	updateItem = redis.NewScript(`
if redis.call('HGET', KEYS[1], 'owner_id') ~= ARGV[1] then
	return false
end
for i = 3, #ARGV, 2 do
	redis.call('HSET', KEYS[1], ARGV[i], ARGV[i + 1])
end
redis.call('HSET', KEYS[1], 'updated_at', ARGV[2])
return redis.call('HGETALL', KEYS[1])
`)

	deleteItem = redis.NewScript(`
if redis.call('HGET', KEYS[1], 'owner_id') ~= ARGV[1] then
	return 0
end
redis.call('DEL', KEYS[1])
redis.call('ZREM', KEYS[2], ARGV[2])
return 1
`)
)

type VaultRepository struct {
	db  storage.Handle[*redis.Client]
	log *slog.Logger
}

func NewVaultRepository(db storage.Handle[*redis.Client], log *slog.Logger) *VaultRepository {
	return &VaultRepository{
		db:  db,
		log: log.With("repository", "vault"),
	}
}

func (r *VaultRepository) List(ctx context.Context, ownerID string) ([]vault.Item, error) {
	client, err := r.db.Get(ctx)
	if err != nil {
		return nil, err
	}

	ids, err := client.ZRange(ctx, ownerKey(ownerID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list item ids: %w", err)
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	if len(ids) > 0 {
		_, err = client.Pipelined(ctx, func(p redis.Pipeliner) error {
			for i, id := range ids {
				cmds[i] = p.HGetAll(ctx, itemKey(id))
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("load items: %w", err)
		}
	}

	items := make([]vault.Item, 0, len(ids))
	for _, cmd := range cmds {
		fields := cmd.Val()
		// an index entry can briefly outlive its item
		if len(fields) == 0 || fields["owner_id"] != ownerID {
			continue
		}
		item, err := decodeItem(fields)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *VaultRepository) Get(ctx context.Context, ownerID, id string) (vault.Item, error) {
	client, err := r.db.Get(ctx)
	if err != nil {
		return vault.Item{}, err
	}

	reply, err := getItem.Run(ctx, client, []string{itemKey(id)}, ownerID).Result()
	return r.itemFromReply(reply, err)
}

func (r *VaultRepository) Create(ctx context.Context, item vault.Item) error {
	client, err := r.db.Get(ctx)
	if err != nil {
		return err
	}

	keys := []string{itemKey(item.ID), ownerKey(item.OwnerID), seqKey(item.OwnerID)}
	err = createItem.Run(ctx, client, keys, append([]any{item.ID}, encodeItem(item)...)...).Err()
	if err != nil {
		return fmt.Errorf("create item: %w", err)
	}

	return nil
}

func (r *VaultRepository) Update(ctx context.Context, ownerID, id string, patch vault.Patch, updatedAt time.Time) (vault.Item, error) {
	client, err := r.db.Get(ctx)
	if err != nil {
		return vault.Item{}, err
	}

	args := []any{ownerID, updatedAt.UnixNano()}
	for field, value := range map[string]*string{
		"title":              patch.Title,
		"username":           patch.Username,
		"encrypted_password": patch.EncryptedPassword,
		"url":                patch.URL,
		"notes":              patch.Notes,
	} {
		if value != nil {
			args = append(args, field, *value)
		}
	}

	reply, err := updateItem.Run(ctx, client, []string{itemKey(id)}, args...).Result()
	return r.itemFromReply(reply, err)
}

func (r *VaultRepository) Delete(ctx context.Context, ownerID, id string) error {
	client, err := r.db.Get(ctx)
	if err != nil {
		return err
	}

	deleted, err := deleteItem.Run(ctx, client, []string{itemKey(id), ownerKey(ownerID)}, ownerID, id).Int()
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if deleted == 0 {
		return vault.ErrNotFound
	}

	return nil
}

func (r *VaultRepository) itemFromReply(reply any, err error) (vault.Item, error) {
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return vault.Item{}, vault.ErrNotFound
		}
		return vault.Item{}, fmt.Errorf("run item script: %w", err)
	}

	fields, err := pairs(reply)
	if err != nil {
		return vault.Item{}, err
	}
	return decodeItem(fields)
}

// encodeItem flattens an item into HSET field/value pairs.
func encodeItem(it vault.Item) []any {
	return []any{
		"id", it.ID,
		"owner_id", it.OwnerID,
		"title", it.Title,
		"username", it.Username,
		"encrypted_password", it.EncryptedPassword,
		"url", it.URL,
		"notes", it.Notes,
		"created_at", strconv.FormatInt(it.CreatedAt.UnixNano(), 10),
		"updated_at", strconv.FormatInt(it.UpdatedAt.UnixNano(), 10),
	}
}

func decodeItem(f map[string]string) (vault.Item, error) {
	created, err := strconv.ParseInt(f["created_at"], 10, 64)
	if err != nil {
		return vault.Item{}, fmt.Errorf("decode item created_at: %w", err)
	}
	updated, err := strconv.ParseInt(f["updated_at"], 10, 64)
	if err != nil {
		return vault.Item{}, fmt.Errorf("decode item updated_at: %w", err)
	}

	return vault.Item{
		ID:                f["id"],
		OwnerID:           f["owner_id"],
		Title:             f["title"],
		Username:          f["username"],
		EncryptedPassword: f["encrypted_password"],
		URL:               f["url"],
		Notes:             f["notes"],
		CreatedAt:         time.Unix(0, created).UTC(),
		UpdatedAt:         time.Unix(0, updated).UTC(),
	}, nil
}
