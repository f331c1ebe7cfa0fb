package vault

import (
	"context"
	"time"
)

// Repository stores items. Every method that takes an id filters by id and
// owner in one predicate and returns ErrNotFound when nothing matches.
type Repository interface {
	List(ctx context.Context, ownerID string) ([]Item, error)
	Get(ctx context.Context, ownerID, id string) (Item, error)
	Create(ctx context.Context, item Item) error
	Update(ctx context.Context, ownerID, id string, patch Patch, updatedAt time.Time) (Item, error)
	Delete(ctx context.Context, ownerID, id string) error
}
