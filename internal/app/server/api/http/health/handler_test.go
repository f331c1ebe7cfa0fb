package health

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/app/server/api/http/response"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHandler_healthCheck(t *testing.T) {
	tests := []struct {
		name            string
		pingErr         error
		expectedStatus  string
		expectedStorage string
	}{
		{
			name:            "store up",
			expectedStatus:  "OK",
			expectedStorage: "up",
		},
		{
			name:            "store down",
			pingErr:         errors.New("connection refused"),
			expectedStatus:  "OK",
			expectedStorage: "down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := pingerFunc(func(context.Context) error { return tt.pingErr })
			handler := NewHandler(store, slog.Default(), huma.Middlewares{})

			output, err := handler.healthCheck(context.Background(), &Input{})

			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, output.Body.Status)
			assert.Equal(t, tt.expectedStorage, output.Body.Storage)
		})
	}
}

func TestHandler_SetupRoutes(t *testing.T) {
	_, api := humatest.New(t, response.APIConfig("Test API", "1.0.0"))
	store := pingerFunc(func(context.Context) error { return nil })
	NewHandler(store, slog.Default(), nil).SetupRoutes(api)

	resp := api.Get("/api/health")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status":"OK","storage":"up"}`, resp.Body.String())
}
