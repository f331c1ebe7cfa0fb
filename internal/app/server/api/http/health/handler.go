package health

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const pingTimeout = 2 * time.Second

// Pinger checks the backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	store      Pinger
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(store Pinger, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		store:      store,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

// healthCheck always answers 200; a failing store is reported in the body.
func (h *Handler) healthCheck(ctx context.Context, _ *Input) (*Output, error) {
	h.log.Debug("health check request received")

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	storage := "up"
	if err := h.store.Ping(ctx); err != nil {
		h.log.Warn("storage ping failed", "error", err)
		storage = "down"
	}

	return &Output{
		Body: Response{
			Status:  "OK",
			Storage: storage,
		},
	}, nil
}
