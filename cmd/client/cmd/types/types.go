package types

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"vaultkeeper/internal/app/client"
)

type contextKey string

const ClientAppKey contextKey = "client_app"

var ErrNoApp = errors.New("client is not initialized")

func WithApp(ctx context.Context, app *client.App) context.Context {
	return context.WithValue(ctx, ClientAppKey, app)
}

// App returns the client set up by the root command.
func App(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, ErrNoApp
	}
	return app, nil
}
