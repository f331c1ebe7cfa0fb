package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/app/server/api/http/response"
	"vaultkeeper/internal/domain/session"
	"vaultkeeper/internal/domain/user"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, email, password string) (user.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockService) FindByEmail(ctx context.Context, email string) (user.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockService) Authenticate(ctx context.Context, email, password string) (user.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(user.User), args.Error(1)
}

func setup(t *testing.T) (humatest.TestAPI, *MockService, *session.Service) {
	t.Helper()
	svc := new(MockService)
	sessions, err := session.NewService("test-secret", slog.Default())
	require.NoError(t, err)

	_, api := humatest.New(t, response.APIConfig("Test API", "1.0.0"))
	NewHandler(svc, sessions, slog.Default(), nil).SetupRoutes(api)

	return api, svc, sessions
}

func decode(t *testing.T, body []byte) map[string]string {
	t.Helper()
	var m map[string]string
	require.NoError(t, json.Unmarshal(body, &m))
	return m
}

func TestHandler_Register(t *testing.T) {
	tests := []struct {
		name        string
		serviceErr  error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "created",
			wantStatus:  http.StatusCreated,
			wantMessage: "User registered successfully",
		},
		{
			name:        "email taken",
			serviceErr:  user.ErrAlreadyExists,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "User with this email already exists",
		},
		{
			name:        "invalid input",
			serviceErr:  fmt.Errorf("%w: %s", user.ErrInvalidInput, "password: must be at least 8 characters"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "password: must be at least 8 characters",
		},
		{
			name:        "storage fault stays generic",
			serviceErr:  errors.New("pq: connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "An error occurred during registration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, svc, _ := setup(t)
			svc.On("Register", mock.Anything, "alice@example.com", "Secret123!").
				Return(user.User{ID: "u-1", Email: "alice@example.com"}, tt.serviceErr)

			resp := api.Post("/api/auth/register", map[string]any{
				"email":    "alice@example.com",
				"password": "Secret123!",
			})

			assert.Equal(t, tt.wantStatus, resp.Code)
			assert.Equal(t, tt.wantMessage, decode(t, resp.Body.Bytes())["message"])
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Register_EmptyBody(t *testing.T) {
	api, svc, _ := setup(t)
	svc.On("Register", mock.Anything, "", "").
		Return(user.User{}, fmt.Errorf("%w: %s", user.ErrInvalidInput, "email: cannot be blank; password: cannot be blank"))

	resp := api.Post("/api/auth/register", map[string]any{})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "email: cannot be blank; password: cannot be blank", decode(t, resp.Body.Bytes())["message"])
}

func TestHandler_Login(t *testing.T) {
	api, svc, sessions := setup(t)

	svc.On("Authenticate", mock.Anything, "alice@example.com", "Secret123!").
		Return(user.User{ID: "u-1", Email: "alice@example.com"}, nil)
	svc.On("Authenticate", mock.Anything, "alice@example.com", "wrong").
		Return(user.User{}, user.ErrInvalidCredentials)
	svc.On("Authenticate", mock.Anything, "ghost@example.com", "Secret123!").
		Return(user.User{}, user.ErrInvalidCredentials)
	svc.On("Authenticate", mock.Anything, "broken@example.com", "Secret123!").
		Return(user.User{}, errors.New("redis: connection pool timeout"))

	resp := api.Post("/api/auth/login", map[string]any{"email": "alice@example.com", "password": "Secret123!"})
	require.Equal(t, http.StatusOK, resp.Code)
	token := decode(t, resp.Body.Bytes())["token"]
	require.NotEmpty(t, token)

	userID, err := sessions.Validate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)

	wrong := api.Post("/api/auth/login", map[string]any{"email": "alice@example.com", "password": "wrong"})
	unknown := api.Post("/api/auth/login", map[string]any{"email": "ghost@example.com", "password": "Secret123!"})
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, wrong.Code, unknown.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())
	assert.Equal(t, "Invalid credentials", decode(t, wrong.Body.Bytes())["message"])

	fault := api.Post("/api/auth/login", map[string]any{"email": "broken@example.com", "password": "Secret123!"})
	assert.Equal(t, http.StatusInternalServerError, fault.Code)
	assert.Equal(t, "An error occurred", decode(t, fault.Body.Bytes())["message"])
	assert.NotContains(t, fault.Body.String(), "redis")
}
