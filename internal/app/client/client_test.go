package client

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"vaultkeeper/internal/app/client/config"
	"vaultkeeper/internal/app/client/crypto"
	"vaultkeeper/internal/app/server"
	serverconfig "vaultkeeper/internal/app/server/config"
	servercrypto "vaultkeeper/internal/app/server/crypto"
	"vaultkeeper/internal/utils/logger"
)

const master = "correct horse battery staple"

func startServer(t *testing.T) string {
	t.Helper()
	cfg := &serverconfig.Config{
		Env:    serverconfig.EnvProd,
		DB:     serverconfig.DB{DatabaseURI: "memory://"},
		Server: serverconfig.Server{ShutdownTimeout: time.Second},
		Auth:   serverconfig.Auth{Secret: "client-e2e"},
	}
	app, err := server.New(cfg, logger.Discard(), server.WithHasher(servercrypto.NewBcryptHasher(bcrypt.MinCost)))
	require.NoError(t, err)

	srv := httptest.NewServer(app.Handler())
	t.Cleanup(func() {
		srv.Close()
		_ = app.Shutdown()
	})
	return srv.URL
}

func newApp(t *testing.T, serverURL string) *App {
	t.Helper()
	return New(&config.Config{
		ServerURL: serverURL,
		TokenPath: filepath.Join(t.TempDir(), "token"),
		Timeout:   5 * time.Second,
	}, logger.Discard())
}

func loggedIn(t *testing.T, serverURL, email string) *App {
	t.Helper()
	app := newApp(t, serverURL)
	ctx := context.Background()
	require.NoError(t, app.Register(ctx, email, "Str0ng!Pass"))
	require.NoError(t, app.Login(ctx, email, "Str0ng!Pass"))
	require.True(t, app.LoggedIn())
	return app
}

func TestApp_Roundtrip(t *testing.T) {
	url := startServer(t)
	app := loggedIn(t, url, "alice@example.com")
	ctx := context.Background()

	require.NoError(t, app.Ping(ctx))

	created, err := app.Add(ctx, NewItem{
		Title:    "GitHub",
		Username: "alice",
		Password: "hunter2",
		URL:      "https://github.com",
	}, master)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", created.EncryptedPassword)

	items, err := app.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, created.ID, items[0].ID)

	secret, err := app.Show(ctx, created.ID, master)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", secret.Password)

	_, err = app.Show(ctx, created.ID, "wrong master")
	assert.ErrorIs(t, err, crypto.ErrDecryption)

	newPass, notes := "hunter3", "rotated"
	edited, err := app.Edit(ctx, created.ID, ItemChanges{Password: &newPass, Notes: &notes}, master)
	require.NoError(t, err)
	assert.Equal(t, "rotated", edited.Notes)
	assert.Equal(t, "GitHub", edited.Title)

	secret, err = app.Show(ctx, created.ID, master)
	require.NoError(t, err)
	assert.Equal(t, "hunter3", secret.Password)

	require.NoError(t, app.Remove(ctx, created.ID))
	_, err = app.Show(ctx, created.ID, master)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApp_OtherUsersItemsAreInvisible(t *testing.T) {
	url := startServer(t)
	alice := loggedIn(t, url, "alice@example.com")
	bob := loggedIn(t, url, "bob@example.com")
	ctx := context.Background()

	item, err := alice.Add(ctx, NewItem{Title: "Bank", Username: "alice", Password: "pin"}, master)
	require.NoError(t, err)

	_, err = bob.Show(ctx, item.ID, master)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, bob.Remove(ctx, item.ID), ErrNotFound)

	items, err := bob.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestApp_Errors(t *testing.T) {
	url := startServer(t)
	ctx := context.Background()

	anon := newApp(t, url)
	_, err := anon.List(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	require.NoError(t, anon.Register(ctx, "carol@example.com", "Str0ng!Pass"))

	var apiErr *APIError
	err = anon.Register(ctx, "carol@example.com", "Str0ng!Pass")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, "User with this email already exists", apiErr.Message)

	err = anon.Login(ctx, "carol@example.com", "wrong")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.False(t, anon.LoggedIn())

	require.NoError(t, anon.Login(ctx, "carol@example.com", "Str0ng!Pass"))
	_, err = anon.Add(ctx, NewItem{Title: "t", Username: "u", Password: "p"}, "")
	assert.ErrorIs(t, err, ErrMissingMasterKey)

	item, err := anon.Add(ctx, NewItem{Title: "t", Username: "u", Password: "p"}, master)
	require.NoError(t, err)
	empty := ""
	_, err = anon.Edit(ctx, item.ID, ItemChanges{Password: &empty}, master)
	assert.ErrorIs(t, err, crypto.ErrEmptyText)
	secret, err := anon.Show(ctx, item.ID, master)
	require.NoError(t, err)
	assert.Equal(t, "p", secret.Password)

	require.NoError(t, anon.tokens.Save("forged"))
	anon.http.setToken("forged")
	_, err = anon.List(ctx)
	assert.ErrorIs(t, err, ErrSessionExpired)

	require.NoError(t, anon.Logout())
	assert.False(t, anon.LoggedIn())
}
