// Package client talks to the vault server on behalf of the CLI. Passwords
// are sealed with the master password before they leave the process and are
// opened only on demand.
package client

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"

	"vaultkeeper/internal/app/client/config"
	"vaultkeeper/internal/app/client/crypto"
)

type App struct {
	config *config.Config
	log    *slog.Logger
	http   *httpClient
	tokens *TokenStore
}

func New(cfg *config.Config, log *slog.Logger) *App {
	app := &App{
		config: cfg,
		log:    log.With("component", "client"),
		http:   newHTTPClient(cfg.ServerURL, cfg.Timeout, log),
		tokens: NewTokenStore(cfg.TokenPath),
	}

	if token, err := app.tokens.Load(); err == nil {
		app.http.setToken(token)
		app.log.Debug("token loaded", "path", cfg.TokenPath)
	}

	return app
}

// LoggedIn reports whether a token is on disk. It says nothing about expiry.
func (a *App) LoggedIn() bool {
	_, err := a.tokens.Load()
	return err == nil
}

func (a *App) Ping(ctx context.Context) error {
	return a.http.health(ctx)
}

func (a *App) Register(ctx context.Context, email, password string) error {
	return a.http.register(ctx, strings.TrimSpace(email), password)
}

// Login exchanges credentials for a token and stores it.
func (a *App) Login(ctx context.Context, email, password string) error {
	token, err := a.http.login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return err
	}
	if err := a.tokens.Save(token); err != nil {
		return err
	}
	a.http.setToken(token)
	return nil
}

func (a *App) Logout() error {
	a.http.setToken("")
	return a.tokens.Clear()
}

func (a *App) List(ctx context.Context) ([]Item, error) {
	if err := a.requireToken(); err != nil {
		return nil, err
	}
	return a.http.listItems(ctx)
}

// Add seals item.Password with master and uploads the item.
func (a *App) Add(ctx context.Context, item NewItem, master string) (Item, error) {
	if err := a.requireToken(); err != nil {
		return Item{}, err
	}

	sealed, err := a.seal(item.Password, master)
	if err != nil {
		return Item{}, err
	}

	return a.http.createItem(ctx, createItemRequest{
		Title:             item.Title,
		Username:          item.Username,
		EncryptedPassword: sealed,
		URL:               item.URL,
		Notes:             item.Notes,
	})
}

// Show fetches one item and opens its password with master.
func (a *App) Show(ctx context.Context, id, master string) (Secret, error) {
	if err := a.requireToken(); err != nil {
		return Secret{}, err
	}
	if master == "" {
		return Secret{}, ErrMissingMasterKey
	}

	item, err := a.http.getItem(ctx, id)
	if err != nil {
		return Secret{}, err
	}

	plain, err := crypto.Decrypt(item.EncryptedPassword, master)
	if err != nil {
		return Secret{}, fmt.Errorf("open %q: %w", item.Title, err)
	}

	return Secret{Item: item, Password: plain}, nil
}

// Edit applies changes; a new password is sealed with master first.
func (a *App) Edit(ctx context.Context, id string, changes ItemChanges, master string) (Item, error) {
	if err := a.requireToken(); err != nil {
		return Item{}, err
	}

	req := updateItemRequest{
		ID:       id,
		Title:    changes.Title,
		Username: changes.Username,
		URL:      changes.URL,
		Notes:    changes.Notes,
	}
	if changes.Password != nil {
		sealed, err := a.seal(*changes.Password, master)
		if err != nil {
			return Item{}, err
		}
		req.EncryptedPassword = &sealed
	}

	return a.http.updateItem(ctx, req)
}

func (a *App) Remove(ctx context.Context, id string) error {
	if err := a.requireToken(); err != nil {
		return err
	}
	return a.http.deleteItem(ctx, id)
}

// MasterPassword returns the configured master password, if any.
func (a *App) MasterPassword() string {
	return a.config.MasterPassword
}

func (a *App) seal(password, master string) (string, error) {
	if master == "" {
		return "", ErrMissingMasterKey
	}
	sealed, err := crypto.Encrypt(password, master)
	if err != nil {
		return "", fmt.Errorf("seal password: %w", err)
	}
	return sealed, nil
}

func (a *App) requireToken() error {
	if a.http.token != "" {
		return nil
	}
	token, err := a.tokens.Load()
	if err != nil {
		return err
	}
	a.http.setToken(token)
	return nil
}
