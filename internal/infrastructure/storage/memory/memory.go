// Package memory keeps accounts and items in process memory. Data is lost on
// restart; it backs tests and single-process demos.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"vaultkeeper/internal/domain/user"
	"vaultkeeper/internal/domain/vault"
)

type Storage struct {
	mu      sync.RWMutex
	users   map[string]user.User
	items   map[string]vault.Item
	byOwner map[string]map[string]struct{}
}

func New() *Storage {
	return &Storage{
		users:   make(map[string]user.User),
		items:   make(map[string]vault.Item),
		byOwner: make(map[string]map[string]struct{}),
	}
}

func (s *Storage) Users() *UserRepository { return &UserRepository{s: s} }

func (s *Storage) Vault() *VaultRepository { return &VaultRepository{s: s} }

func (s *Storage) Ping(context.Context) error { return nil }

func (s *Storage) Close() error { return nil }

type UserRepository struct {
	s *Storage
}

func (r *UserRepository) Create(_ context.Context, u user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[u.Email]; ok {
		return user.ErrAlreadyExists
	}
	r.s.users[u.Email] = u
	return nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

type VaultRepository struct {
	s *Storage
}

func (r *VaultRepository) List(_ context.Context, ownerID string) ([]vault.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	items := make([]vault.Item, 0, len(r.s.byOwner[ownerID]))
	for id := range r.s.byOwner[ownerID] {
		items = append(items, r.s.items[id])
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})

	return items, nil
}

// owned must be called with the lock held.
func (r *VaultRepository) owned(ownerID, id string) (vault.Item, bool) {
	it, ok := r.s.items[id]
	if !ok || it.OwnerID != ownerID {
		return vault.Item{}, false
	}
	return it, true
}

func (r *VaultRepository) Get(_ context.Context, ownerID, id string) (vault.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	it, ok := r.owned(ownerID, id)
	if !ok {
		return vault.Item{}, vault.ErrNotFound
	}
	return it, nil
}

func (r *VaultRepository) Create(_ context.Context, item vault.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.items[item.ID] = item
	ids, ok := r.s.byOwner[item.OwnerID]
	if !ok {
		ids = make(map[string]struct{})
		r.s.byOwner[item.OwnerID] = ids
	}
	ids[item.ID] = struct{}{}
	return nil
}

func (r *VaultRepository) Update(_ context.Context, ownerID, id string, patch vault.Patch, updatedAt time.Time) (vault.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	it, ok := r.owned(ownerID, id)
	if !ok {
		return vault.Item{}, vault.ErrNotFound
	}
	it = patch.Apply(it)
	it.UpdatedAt = updatedAt
	r.s.items[id] = it
	return it, nil
}

func (r *VaultRepository) Delete(_ context.Context, ownerID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.owned(ownerID, id); !ok {
		return vault.ErrNotFound
	}
	delete(r.s.items, id)
	delete(r.s.byOwner[ownerID], id)
	return nil
}
