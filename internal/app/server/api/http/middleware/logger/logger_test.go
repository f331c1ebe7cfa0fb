package logger

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

type okOutput struct {
	Body struct {
		OK bool `json:"ok"`
	}
}

func TestLogger_Middleware(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, api := humatest.New(t)
	huma.Register(api, huma.Operation{
		OperationID: "boom",
		Method:      http.MethodGet,
		Path:        "/items/{id}",
		Middlewares: huma.Middlewares{New(log).Middleware()},
	}, func(ctx context.Context, in *struct {
		ID string `path:"id"`
	}) (*okOutput, error) {
		if in.ID == "fail" {
			return nil, huma.Error500InternalServerError("Server error")
		}
		return &okOutput{}, nil
	})

	tests := []struct {
		path      string
		wantLevel string
		wantCode  string
	}{
		{path: "/items/ok", wantLevel: `"level":"INFO"`, wantCode: `"status":200`},
		{path: "/items/fail", wantLevel: `"level":"ERROR"`, wantCode: `"status":500`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			buf.Reset()
			api.Get(tt.path)

			line := buf.String()
			assert.Contains(t, line, `"msg":"HTTP request"`)
			assert.Contains(t, line, `"component":"http_logger"`)
			assert.Contains(t, line, `"method":"GET"`)
			assert.Contains(t, line, `"path":"`+tt.path+`"`)
			assert.Contains(t, line, tt.wantLevel)
			assert.Contains(t, line, tt.wantCode)
		})
	}
}
