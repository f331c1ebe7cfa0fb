package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/app/server/api/http/response"
	"vaultkeeper/internal/domain/session"
)

const bearerScheme = "Bearer"

type Auth struct {
	session session.Servicer
	log     *slog.Logger
}

func New(session session.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		session: session,
		log:     log.With("component", "auth_middleware"),
	}
}

type contextKey struct{}

// Authorize resolves the account behind an Authorization header value.
// A missing header or token, including a bare value with no scheme, gives
// session.ErrMissingToken. Anything that fails verification gives
// session.ErrInvalidToken.
func (a *Auth) Authorize(ctx context.Context, header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", session.ErrMissingToken
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found {
		return "", session.ErrMissingToken
	}
	if !strings.EqualFold(scheme, bearerScheme) {
		return "", session.ErrInvalidToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", session.ErrMissingToken
	}

	return a.session.Validate(ctx, token)
}

// Middleware rejects the request with 401 or 403 before the handler runs.
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		userID, err := a.Authorize(ctx.Context(), ctx.Header("Authorization"))
		if err != nil {
			status, msg := http.StatusForbidden, "Invalid or expired token"
			if errors.Is(err, session.ErrMissingToken) {
				status, msg = http.StatusUnauthorized, "No token provided"
			}
			a.log.Debug("request rejected", "path", ctx.URL().Path, "status", status)
			if werr := response.Write(ctx, status, msg); werr != nil {
				a.log.Error("write auth error", "error", werr)
			}
			return
		}

		next(huma.WithContext(ctx, WithUserID(ctx.Context(), userID)))
	}
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(contextKey{}).(string)
	return userID, ok && userID != ""
}
