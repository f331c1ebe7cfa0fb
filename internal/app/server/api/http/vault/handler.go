package vault

import (
	"context"
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/app/server/api/http/middleware/auth"
	"vaultkeeper/internal/app/server/api/http/response"
	"vaultkeeper/internal/domain/vault"
)

type Handler struct {
	service    vault.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service vault.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With("component", "vault_handler"),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.getOp(), h.get)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("No token provided")
	}

	items, err := h.service.List(ctx, userID)
	if err != nil {
		return nil, h.toHTTP(err)
	}

	body := make([]ItemBody, 0, len(items))
	for _, it := range items {
		body = append(body, toBody(it))
	}

	return &listOutput{Body: body}, nil
}

func (h *Handler) get(ctx context.Context, input *getInput) (*itemOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("No token provided")
	}

	item, err := h.service.Get(ctx, userID, input.ID)
	if err != nil {
		return nil, h.toHTTP(err)
	}

	return &itemOutput{Body: toBody(item)}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*itemOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("No token provided")
	}

	item, err := h.service.Create(ctx, userID, vault.Draft{
		Title:             input.Body.Title,
		Username:          input.Body.Username,
		EncryptedPassword: input.Body.EncryptedPassword,
		URL:               input.Body.URL,
		Notes:             input.Body.Notes,
	})
	if err != nil {
		return nil, h.toHTTP(err)
	}

	return &itemOutput{Body: toBody(item)}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*itemOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("No token provided")
	}

	item, err := h.service.Update(ctx, userID, input.Body.ID, vault.Patch{
		Title:             input.Body.Title,
		Username:          input.Body.Username,
		EncryptedPassword: input.Body.EncryptedPassword,
		URL:               input.Body.URL,
		Notes:             input.Body.Notes,
	})
	if err != nil {
		return nil, h.toHTTP(err)
	}

	return &itemOutput{Body: toBody(item)}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("No token provided")
	}

	if err := h.service.Delete(ctx, userID, input.Body.ID); err != nil {
		return nil, h.toHTTP(err)
	}

	return &deleteOutput{
		Body: response.MessageBody{Message: "Item deleted successfully"},
	}, nil
}

// toHTTP maps service errors to responses. Unexpected errors are logged and
// replaced by a generic message.
func (h *Handler) toHTTP(err error) error {
	switch {
	case errors.Is(err, vault.ErrMissingID):
		return huma.Error400BadRequest("Item ID is required")
	case errors.Is(err, vault.ErrValidation):
		return huma.Error400BadRequest(strings.TrimPrefix(err.Error(), vault.ErrValidation.Error()+": "))
	case errors.Is(err, vault.ErrNotFound):
		return huma.Error404NotFound("Item not found or user unauthorized")
	default:
		h.log.Error("vault operation failed", "error", err)
		return huma.Error500InternalServerError("Server error")
	}
}
