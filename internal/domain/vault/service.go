package vault

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	List(ctx context.Context, ownerID string) ([]Item, error)
	Get(ctx context.Context, ownerID, id string) (Item, error)
	Create(ctx context.Context, ownerID string, draft Draft) (Item, error)
	Update(ctx context.Context, ownerID, id string, patch Patch) (Item, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "vault_service"),
		now:  time.Now,
	}
}

// List never returns a nil slice.
func (s *Service) List(ctx context.Context, ownerID string) ([]Item, error) {
	items, err := s.repo.List(ctx, ownerID)
	if err != nil {
		s.log.Error("failed to list items", "user_id", ownerID, "error", err)
		return nil, fmt.Errorf("list items: %w", err)
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id string) (Item, error) {
	if id == "" {
		return Item{}, fmt.Errorf("%w: %w", ErrValidation, ErrMissingID)
	}

	item, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Item{}, ErrNotFound
		}
		s.log.Error("failed to get item", "item_id", id, "user_id", ownerID, "error", err)
		return Item{}, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func (s *Service) Create(ctx context.Context, ownerID string, draft Draft) (Item, error) {
	if err := draft.Validate(); err != nil {
		return Item{}, err
	}

	now := s.now().UTC()
	item := Item{
		ID:                uuid.NewString(),
		OwnerID:           ownerID,
		Title:             draft.Title,
		Username:          draft.Username,
		EncryptedPassword: draft.EncryptedPassword,
		URL:               draft.URL,
		Notes:             draft.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		s.log.Error("failed to create item", "user_id", ownerID, "error", err)
		return Item{}, fmt.Errorf("create item: %w", err)
	}

	s.log.Info("item created", "item_id", item.ID, "user_id", ownerID)
	return item, nil
}

// Update is last-write-wins: there is no version check between concurrent edits.
func (s *Service) Update(ctx context.Context, ownerID, id string, patch Patch) (Item, error) {
	if id == "" {
		return Item{}, fmt.Errorf("%w: %w", ErrValidation, ErrMissingID)
	}
	if err := patch.Validate(); err != nil {
		return Item{}, err
	}

	item, err := s.repo.Update(ctx, ownerID, id, patch, s.now().UTC())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Item{}, ErrNotFound
		}
		s.log.Error("failed to update item", "item_id", id, "user_id", ownerID, "error", err)
		return Item{}, fmt.Errorf("update item: %w", err)
	}

	s.log.Info("item updated", "item_id", id, "user_id", ownerID)
	return item, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if id == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrMissingID)
	}

	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.log.Error("failed to delete item", "item_id", id, "user_id", ownerID, "error", err)
		return fmt.Errorf("delete item: %w", err)
	}

	s.log.Info("item deleted", "item_id", id, "user_id", ownerID)
	return nil
}
