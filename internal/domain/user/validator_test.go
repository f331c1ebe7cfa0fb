package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsValidator_ValidateRegister(t *testing.T) {
	validator := NewCredentialsValidator()

	tests := []struct {
		name        string
		email       string
		password    string
		wantErr     bool
		expectedErr string
	}{
		{
			name:     "valid registration",
			email:    "alice@example.com",
			password: "Secret123!",
		},
		{
			name:        "empty email",
			email:       "",
			password:    "Secret123!",
			wantErr:     true,
			expectedErr: "email: cannot be blank",
		},
		{
			name:        "malformed email",
			email:       "alice",
			password:    "Secret123!",
			wantErr:     true,
			expectedErr: "email: must be a valid email address",
		},
		{
			name:        "email too long",
			email:       strings.Repeat("a", 250) + "@example.com",
			password:    "Secret123!",
			wantErr:     true,
			expectedErr: "email:",
		},
		{
			name:        "empty password",
			email:       "alice@example.com",
			password:    "",
			wantErr:     true,
			expectedErr: "password: cannot be blank",
		},
		{
			name:        "short password",
			email:       "alice@example.com",
			password:    "Se1!",
			wantErr:     true,
			expectedErr: "password must be at least 8 characters",
		},
		{
			name:        "password without special char",
			email:       "alice@example.com",
			password:    "Secret1234",
			wantErr:     true,
			expectedErr: "special character",
		},
		{
			name:        "password past bcrypt limit",
			email:       "alice@example.com",
			password:    "Secret123!" + strings.Repeat("x", 63),
			wantErr:     true,
			expectedErr: "at most 72 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateRegister(tt.email, tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidInput)
				assert.Contains(t, err.Error(), tt.expectedErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
