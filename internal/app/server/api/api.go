// Package api assembles the HTTP surface:
//
//	POST   /api/auth/register  public
//	POST   /api/auth/login     public
//	GET    /api/vault          auth
//	GET    /api/vault/{id}     auth
//	POST   /api/vault          auth
//	PUT    /api/vault          auth, _id in body
//	DELETE /api/vault          auth, _id in body
//	GET    /api/health         public
//	GET    /metrics            public, when enabled
package api

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	healthAPI "vaultkeeper/internal/app/server/api/http/health"
	"vaultkeeper/internal/app/server/api/http/middleware"
	"vaultkeeper/internal/app/server/api/http/middleware/auth"
	"vaultkeeper/internal/app/server/api/http/middleware/logger"
	"vaultkeeper/internal/app/server/api/http/response"
	userAPI "vaultkeeper/internal/app/server/api/http/user"
	vaultAPI "vaultkeeper/internal/app/server/api/http/vault"
	"vaultkeeper/internal/app/server/metrics"
	"vaultkeeper/internal/domain/session"
	"vaultkeeper/internal/domain/user"
	"vaultkeeper/internal/domain/vault"
)

const (
	title   = "Vaultkeeper API"
	version = "1.0.0"
)

// Deps are the collaborators the routes are built from.
type Deps struct {
	Store    healthAPI.Pinger
	Users    user.Repository
	Vault    vault.Repository
	Sessions session.Servicer
	Hasher   user.Hasher

	// Metrics is optional; nil disables the middleware and /metrics.
	Metrics          *metrics.Provider
	MetricsNamespace string
}

type Handlers struct {
	Health *healthAPI.Handler
	User   *userAPI.Handler
	Vault  *vaultAPI.Handler
}

// New creates a *chi.Mux with every operation registered through huma.
func New(deps Deps, log *slog.Logger) (*chi.Mux, error) {
	mux := chi.NewMux()

	API := humachi.New(mux, response.APIConfig(title, version))

	h, err := handlers(deps, log)
	if err != nil {
		return nil, err
	}
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Vault.SetupRoutes(API)

	if deps.Metrics != nil {
		mux.Handle("/metrics", deps.Metrics.Handler())
	}

	return mux, nil
}

func handlers(deps Deps, log *slog.Logger) (*Handlers, error) {
	authMW := auth.New(deps.Sessions, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	var metricsMW func(huma.Context, func(huma.Context))
	if deps.Metrics != nil {
		metricsMW = metrics.HTTPMiddleware(deps.Metrics.MeterProvider(), deps.MetricsNamespace)
	}

	middlewares.Add(metricsMW, loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(deps.Store, log, middlewares.GetAllAndClear())

	userService, err := user.NewService(deps.Users, deps.Hasher, user.NewCredentialsValidator(), log)
	if err != nil {
		return nil, fmt.Errorf("user service: %w", err)
	}
	middlewares.Add(metricsMW, loggerMW.Middleware())
	userHandler := userAPI.NewHandler(userService, deps.Sessions, log, middlewares.GetAllAndClear())

	vaultService := vault.NewService(deps.Vault, log)
	middlewares.Add(metricsMW, loggerMW.Middleware(), authMW.Middleware())
	vaultHandler := vaultAPI.NewHandler(vaultService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		User:   userHandler,
		Vault:  vaultHandler,
	}, nil
}
