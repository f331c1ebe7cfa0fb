package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/domain/vault"
	"vaultkeeper/internal/infrastructure/storage"
)

const itemColumns = `id, owner_id, title, username, encrypted_password, url, notes, created_at, updated_at`

type VaultRepository struct {
	db  storage.Handle[*pgxpool.Pool]
	log *slog.Logger
}

func NewVaultRepository(db storage.Handle[*pgxpool.Pool], log *slog.Logger) *VaultRepository {
	return &VaultRepository{
		db:  db,
		log: log.With("repository", "vault"),
	}
}

func (r *VaultRepository) List(ctx context.Context, ownerID string) ([]vault.Item, error) {
	if !isUUID(ownerID) {
		return []vault.Item{}, nil
	}

	pool, err := r.db.Get(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx,
		`SELECT `+itemColumns+` FROM vault_items WHERE owner_id = $1 ORDER BY created_at, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}

	items, err := pgx.CollectRows(rows, scanItem)
	if err != nil {
		return nil, fmt.Errorf("scan items: %w", err)
	}

	return items, nil
}

func (r *VaultRepository) Get(ctx context.Context, ownerID, id string) (vault.Item, error) {
	if !isUUID(ownerID) || !isUUID(id) {
		return vault.Item{}, vault.ErrNotFound
	}

	pool, err := r.db.Get(ctx)
	if err != nil {
		return vault.Item{}, err
	}

	rows, err := pool.Query(ctx,
		`SELECT `+itemColumns+` FROM vault_items WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return vault.Item{}, fmt.Errorf("select item: %w", err)
	}

	return collectOne(rows)
}

func (r *VaultRepository) Create(ctx context.Context, item vault.Item) error {
	pool, err := r.db.Get(ctx)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO vault_items (`+itemColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		item.ID, item.OwnerID, item.Title, item.Username, item.EncryptedPassword,
		item.URL, item.Notes, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}

	return nil
}

// Update applies the patch in one statement keyed on id and owner, so a
// foreign item and a missing item both come back as no rows.
func (r *VaultRepository) Update(ctx context.Context, ownerID, id string, patch vault.Patch, updatedAt time.Time) (vault.Item, error) {
	if !isUUID(ownerID) || !isUUID(id) {
		return vault.Item{}, vault.ErrNotFound
	}

	pool, err := r.db.Get(ctx)
	if err != nil {
		return vault.Item{}, err
	}

	rows, err := pool.Query(ctx, `
		UPDATE vault_items SET
			title = COALESCE($3, title),
			username = COALESCE($4, username),
			encrypted_password = COALESCE($5, encrypted_password),
			url = COALESCE($6, url),
			notes = COALESCE($7, notes),
			updated_at = $8
		WHERE id = $1 AND owner_id = $2
		RETURNING `+itemColumns,
		id, ownerID, patch.Title, patch.Username, patch.EncryptedPassword, patch.URL, patch.Notes, updatedAt)
	if err != nil {
		return vault.Item{}, fmt.Errorf("update item: %w", err)
	}

	return collectOne(rows)
}

func (r *VaultRepository) Delete(ctx context.Context, ownerID, id string) error {
	if !isUUID(ownerID) || !isUUID(id) {
		return vault.ErrNotFound
	}

	pool, err := r.db.Get(ctx)
	if err != nil {
		return err
	}

	tag, err := pool.Exec(ctx, `DELETE FROM vault_items WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return vault.ErrNotFound
	}

	return nil
}

func scanItem(row pgx.CollectableRow) (vault.Item, error) {
	var it vault.Item
	err := row.Scan(&it.ID, &it.OwnerID, &it.Title, &it.Username, &it.EncryptedPassword,
		&it.URL, &it.Notes, &it.CreatedAt, &it.UpdatedAt)
	return it, err
}

func collectOne(rows pgx.Rows) (vault.Item, error) {
	item, err := pgx.CollectExactlyOneRow(rows, scanItem)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return vault.Item{}, vault.ErrNotFound
		}
		return vault.Item{}, fmt.Errorf("scan item: %w", err)
	}
	return item, nil
}

// ids are uuid columns; anything else cannot match a row
func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
