package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/domain/user"
	"vaultkeeper/internal/domain/vault"
)

type fixedHandle struct {
	db *sql.DB
}

func (h fixedHandle) Get(context.Context) (*sql.DB, error) { return h.db, nil }

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var itemCols = []string{"id", "owner_id", "title", "username", "encrypted_password", "url", "notes", "created_at", "updated_at"}

func TestDSN(t *testing.T) {
	tests := []struct {
		uri     string
		want    string
		wantErr bool
	}{
		{uri: "sqlite3:///var/lib/vault.db", want: "file:/var/lib/vault.db?" + defaultParams},
		{uri: "sqlite3://vault.db", want: "file:vault.db?" + defaultParams},
		{uri: "sqlite3://vault.db?cache=shared", want: "file:vault.db?cache=shared&" + defaultParams},
		{uri: "sqlite3://", wantErr: true},
		{uri: "postgres://localhost/vault", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := DSN(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_IsLazy(t *testing.T) {
	s, err := New("sqlite3:///nonexistent-dir/vault.db", slog.Default())
	require.NoError(t, err)
	assert.False(t, s.handle.Ready())
	require.NoError(t, s.Close())
}

func TestUserRepository_Create(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	u := user.User{ID: "u-1", Email: "alice@example.com", PasswordHash: "hash", CreatedAt: created}

	tests := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{name: "inserted"},
		{
			name:    "duplicate email",
			dbErr:   sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique},
			wantErr: user.ErrAlreadyExists,
		},
		{name: "other failure", dbErr: errors.New("disk I/O error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			repo := NewUserRepository(fixedHandle{db}, slog.Default())

			exp := mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (id, email, password_hash, created_at)")).
				WithArgs("u-1", "alice@example.com", "hash", created.UnixNano())
			if tt.dbErr != nil {
				exp.WillReturnError(tt.dbErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(1, 1))
			}

			err := repo.Create(context.Background(), u)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.dbErr != nil:
				require.Error(t, err)
				assert.NotErrorIs(t, err, user.ErrAlreadyExists)
			default:
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(fixedHandle{db}, slog.Default())
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = ?")).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow("u-1", "alice@example.com", "hash", created.UnixNano()))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = ?")).
		WithArgs("Alice@example.com").
		WillReturnError(sql.ErrNoRows)

	u, err := repo.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, created, u.CreatedAt)

	// lookups are case-sensitive
	_, err = repo.FindByEmail(context.Background(), "Alice@example.com")
	assert.ErrorIs(t, err, user.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVaultRepository_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVaultRepository(fixedHandle{db}, slog.Default())
	ts := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC).UnixNano()

	mock.ExpectQuery(regexp.QuoteMeta("FROM vault_items WHERE owner_id = ?")).
		WithArgs("owner-a").
		WillReturnRows(sqlmock.NewRows(itemCols).
			AddRow("i-1", "owner-a", "Email", "alice", "c1", "", "", ts, ts).
			AddRow("i-2", "owner-a", "Bank", "alice", "c2", "https://bank", "pin", ts, ts))
	mock.ExpectQuery(regexp.QuoteMeta("FROM vault_items WHERE owner_id = ?")).
		WithArgs("owner-b").
		WillReturnRows(sqlmock.NewRows(itemCols))

	items, err := repo.List(context.Background(), "owner-a")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Email", items[0].Title)
	assert.Equal(t, "https://bank", items[1].URL)
	assert.Equal(t, time.Unix(0, ts).UTC(), items[1].CreatedAt)

	empty, err := repo.List(context.Background(), "owner-b")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVaultRepository_Get(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVaultRepository(fixedHandle{db}, slog.Default())
	ts := time.Now().UnixNano()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = ? AND owner_id = ?")).
		WithArgs("i-1", "owner-a").
		WillReturnRows(sqlmock.NewRows(itemCols).AddRow("i-1", "owner-a", "Email", "alice", "c1", "", "", ts, ts))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = ? AND owner_id = ?")).
		WithArgs("i-1", "owner-b").
		WillReturnRows(sqlmock.NewRows(itemCols))

	item, err := repo.Get(context.Background(), "owner-a", "i-1")
	require.NoError(t, err)
	assert.Equal(t, "Email", item.Title)

	_, err = repo.Get(context.Background(), "owner-b", "i-1")
	assert.ErrorIs(t, err, vault.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVaultRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVaultRepository(fixedHandle{db}, slog.Default())
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	item := vault.Item{
		ID: "i-1", OwnerID: "owner-a", Title: "Email", Username: "alice",
		EncryptedPassword: "c1", CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO vault_items")).
		WithArgs("i-1", "owner-a", "Email", "alice", "c1", "", "", now.UnixNano(), now.UnixNano()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), item))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVaultRepository_Update(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVaultRepository(fixedHandle{db}, slog.Default())
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	title := "Work email"

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE vault_items SET")).
		WithArgs(title, nil, nil, nil, nil, now.UnixNano(), "i-1", "owner-a").
		WillReturnRows(sqlmock.NewRows(itemCols).
			AddRow("i-1", "owner-a", title, "alice", "c1", "", "", now.UnixNano(), now.UnixNano()))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE vault_items SET")).
		WithArgs(title, nil, nil, nil, nil, now.UnixNano(), "i-1", "owner-b").
		WillReturnRows(sqlmock.NewRows(itemCols))

	item, err := repo.Update(context.Background(), "owner-a", "i-1", vault.Patch{Title: &title}, now)
	require.NoError(t, err)
	assert.Equal(t, title, item.Title)
	assert.Equal(t, "alice", item.Username)

	_, err = repo.Update(context.Background(), "owner-b", "i-1", vault.Patch{Title: &title}, now)
	assert.ErrorIs(t, err, vault.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVaultRepository_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVaultRepository(fixedHandle{db}, slog.Default())

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM vault_items WHERE id = ? AND owner_id = ?")).
		WithArgs("i-1", "owner-a").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM vault_items WHERE id = ? AND owner_id = ?")).
		WithArgs("i-1", "owner-b").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "owner-a", "i-1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "owner-b", "i-1"), vault.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
