package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"vaultkeeper/internal/domain/vault"
	"vaultkeeper/internal/infrastructure/storage"
)

const itemColumns = `id, owner_id, title, username, encrypted_password, url, notes, created_at, updated_at`

type VaultRepository struct {
	db  storage.Handle[*sql.DB]
	log *slog.Logger
}

func NewVaultRepository(db storage.Handle[*sql.DB], log *slog.Logger) *VaultRepository {
	return &VaultRepository{
		db:  db,
		log: log.With("repository", "vault"),
	}
}

func (r *VaultRepository) List(ctx context.Context, ownerID string) ([]vault.Item, error) {
	db, err := r.db.Get(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM vault_items WHERE owner_id = ? ORDER BY created_at, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}
	defer rows.Close()

	items := []vault.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}

	return items, nil
}

func (r *VaultRepository) Get(ctx context.Context, ownerID, id string) (vault.Item, error) {
	db, err := r.db.Get(ctx)
	if err != nil {
		return vault.Item{}, err
	}

	row := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM vault_items WHERE id = ? AND owner_id = ?`, id, ownerID)

	return scanOne(row)
}

func (r *VaultRepository) Create(ctx context.Context, item vault.Item) error {
	db, err := r.db.Get(ctx)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO vault_items (`+itemColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.OwnerID, item.Title, item.Username, item.EncryptedPassword,
		item.URL, item.Notes, item.CreatedAt.UnixNano(), item.UpdatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}

	return nil
}

func (r *VaultRepository) Update(ctx context.Context, ownerID, id string, patch vault.Patch, updatedAt time.Time) (vault.Item, error) {
	db, err := r.db.Get(ctx)
	if err != nil {
		return vault.Item{}, err
	}

	row := db.QueryRowContext(ctx, `
		UPDATE vault_items SET
			title = COALESCE(?, title),
			username = COALESCE(?, username),
			encrypted_password = COALESCE(?, encrypted_password),
			url = COALESCE(?, url),
			notes = COALESCE(?, notes),
			updated_at = ?
		WHERE id = ? AND owner_id = ?
		RETURNING `+itemColumns,
		patch.Title, patch.Username, patch.EncryptedPassword, patch.URL, patch.Notes,
		updatedAt.UnixNano(), id, ownerID)

	return scanOne(row)
}

func (r *VaultRepository) Delete(ctx context.Context, ownerID, id string) error {
	db, err := r.db.Get(ctx)
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx, `DELETE FROM vault_items WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if n == 0 {
		return vault.ErrNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (vault.Item, error) {
	var (
		it               vault.Item
		created, updated int64
	)
	if err := s.Scan(&it.ID, &it.OwnerID, &it.Title, &it.Username, &it.EncryptedPassword,
		&it.URL, &it.Notes, &created, &updated); err != nil {
		return vault.Item{}, err
	}
	it.CreatedAt = time.Unix(0, created).UTC()
	it.UpdatedAt = time.Unix(0, updated).UTC()
	return it, nil
}

func scanOne(row *sql.Row) (vault.Item, error) {
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return vault.Item{}, vault.ErrNotFound
		}
		return vault.Item{}, fmt.Errorf("scan item: %w", err)
	}
	return item, nil
}
