package user

import (
	"context"
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/app/server/api/http/response"
	"vaultkeeper/internal/domain/session"
	"vaultkeeper/internal/domain/user"
)

type Handler struct {
	service    user.Servicer
	session    session.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service user.Servicer, session session.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		session:    session,
		log:        log.With("component", "user_handler"),
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*registerOutput, error) {
	_, err := h.service.Register(ctx, input.Body.Email, input.Body.Password)
	switch {
	case err == nil:
	case errors.Is(err, user.ErrAlreadyExists):
		return nil, huma.Error400BadRequest("User with this email already exists")
	case errors.Is(err, user.ErrInvalidInput):
		return nil, huma.Error400BadRequest(strings.TrimPrefix(err.Error(), user.ErrInvalidInput.Error()+": "))
	default:
		h.log.Error("register failed", "error", err)
		return nil, huma.Error500InternalServerError("An error occurred during registration")
	}

	return &registerOutput{
		Body: response.MessageBody{Message: "User registered successfully"},
	}, nil
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	u, err := h.service.Authenticate(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			return nil, huma.Error401Unauthorized("Invalid credentials")
		}
		h.log.Error("login failed", "error", err)
		return nil, huma.Error500InternalServerError("An error occurred")
	}

	token, err := h.session.Create(ctx, u.ID)
	if err != nil {
		h.log.Error("issue token", "user_id", u.ID, "error", err)
		return nil, huma.Error500InternalServerError("An error occurred")
	}

	return &loginOutput{
		Body: LoginResponse{Token: token},
	}, nil
}
