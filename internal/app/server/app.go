// Package server wires configuration, storage and the HTTP API into a
// runnable process.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/app/server/api"
	"vaultkeeper/internal/app/server/config"
	"vaultkeeper/internal/app/server/crypto"
	"vaultkeeper/internal/app/server/metrics"
	"vaultkeeper/internal/domain/session"
	"vaultkeeper/internal/domain/user"
	"vaultkeeper/internal/domain/vault"
	"vaultkeeper/internal/infrastructure/migration"
	"vaultkeeper/internal/infrastructure/storage"
	"vaultkeeper/internal/infrastructure/storage/memory"
	"vaultkeeper/internal/infrastructure/storage/postgres"
	"vaultkeeper/internal/infrastructure/storage/redisstore"
	"vaultkeeper/internal/infrastructure/storage/sqlite"
)

const readHeaderTimeout = 5 * time.Second

// Store is what the app needs from a backend beyond its repositories.
type Store interface {
	Ping(ctx context.Context) error
	Close() error
}

type backend struct {
	store Store
	users user.Repository
	vault vault.Repository
}

type App struct {
	cfg     *config.Config
	log     *slog.Logger
	backend backend
	metrics *metrics.Provider
	handler http.Handler
	server  *http.Server
}

type Option func(*options)

type options struct {
	hasher user.Hasher
}

// WithHasher replaces the bcrypt hasher at default cost.
func WithHasher(h user.Hasher) Option {
	return func(o *options) { o.hasher = h }
}

// New opens the backend named by DATABASE_URI, applies SQL migrations when
// enabled and builds the router. Nothing listens until Run.
func New(cfg *config.Config, log *slog.Logger, opts ...Option) (*App, error) {
	o := options{hasher: crypto.NewBcryptHasher(bcrypt.DefaultCost)}
	for _, opt := range opts {
		opt(&o)
	}

	scheme, err := storage.Scheme(cfg.DB.DatabaseURI)
	if err != nil {
		return nil, err
	}

	if cfg.DB.AutoMigrate {
		if dir, ok := migration.SourceDir(cfg.DB.Migrations, scheme); ok {
			if err := migration.NewMigration(dir, cfg.DB.DatabaseURI, nil, log).Up(); err != nil {
				return nil, err
			}
		}
	}

	b, err := openBackend(scheme, cfg.DB.DatabaseURI, log)
	if err != nil {
		return nil, err
	}

	sessions, err := session.NewService(cfg.Auth.Secret, log)
	if err != nil {
		b.store.Close()
		return nil, err
	}

	app := &App{
		cfg:     cfg,
		log:     log.With("component", "app"),
		backend: b,
	}

	if cfg.Metrics.Enabled {
		app.metrics, err = metrics.NewProvider()
		if err != nil {
			b.store.Close()
			return nil, err
		}
	}

	app.handler, err = api.New(api.Deps{
		Store:            b.store,
		Users:            b.users,
		Vault:            b.vault,
		Sessions:         sessions,
		Hasher:           o.hasher,
		Metrics:          app.metrics,
		MetricsNamespace: cfg.Metrics.Namespace,
	}, log)
	if err != nil {
		b.store.Close()
		return nil, err
	}

	app.server = &http.Server{
		Addr:              cfg.Server.RunAddress,
		Handler:           app.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return app, nil
}

func openBackend(scheme, uri string, log *slog.Logger) (backend, error) {
	switch scheme {
	case storage.SchemePostgres, storage.SchemePostgreSQL:
		s, err := postgres.New(uri, log)
		if err != nil {
			return backend{}, err
		}
		return backend{store: s, users: s.Users(), vault: s.Vault()}, nil
	case storage.SchemeSQLite:
		s, err := sqlite.New(uri, log)
		if err != nil {
			return backend{}, err
		}
		return backend{store: s, users: s.Users(), vault: s.Vault()}, nil
	case storage.SchemeRedis, storage.SchemeRedisTLS:
		s, err := redisstore.New(uri, log)
		if err != nil {
			return backend{}, err
		}
		return backend{store: s, users: s.Users(), vault: s.Vault()}, nil
	case storage.SchemeMemory:
		s := memory.New()
		return backend{store: s, users: s.Users(), vault: s.Vault()}, nil
	default:
		return backend{}, fmt.Errorf("%w: %q", storage.ErrUnsupportedScheme, scheme)
	}
}

// Handler exposes the router, mainly for httptest.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run serves until ctx is cancelled or the listener fails, then shuts down
// within the configured timeout and releases the store.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)
	go func() {
		a.log.Info("server started", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("listen: %w", err)
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	case err, ok := <-serverErr:
		if ok {
			a.log.Error("server error, shutting down", "error", err)
			runErr = err
		}
	}

	return errors.Join(runErr, a.Shutdown())
}

// Shutdown stops the listener and closes the backend.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown: %w", err))
	}
	if a.metrics != nil {
		if err := a.metrics.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics shutdown: %w", err))
		}
	}
	if err := a.backend.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}

	a.log.Info("server stopped")
	return errors.Join(errs...)
}
