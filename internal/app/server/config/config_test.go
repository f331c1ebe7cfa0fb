package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{
			name:    "missing secret",
			env:     map[string]string{"DATABASE_URI": "memory://"},
			wantErr: ErrMissingSecret,
		},
		{
			name:    "missing database uri",
			env:     map[string]string{"JWT_SECRET": "s3cr3t"},
			wantErr: ErrMissingDatabaseURI,
		},
		{
			name: "complete",
			env: map[string]string{
				"JWT_SECRET":   "s3cr3t",
				"DATABASE_URI": "memory://",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "")
			t.Setenv("DATABASE_URI", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "s3cr3t", cfg.Auth.Secret)
			assert.Equal(t, "memory://", cfg.DB.DatabaseURI)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("DATABASE_URI", "memory://")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, ":8080", cfg.Server.RunAddress)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "migrations", cfg.DB.Migrations)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "vaultkeeper", cfg.Metrics.Namespace)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("DATABASE_URI", "postgres://localhost/vault")
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("RUN_ADDRESS", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("AUTO_MIGRATE", "false")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvProd, cfg.Env)
	assert.Equal(t, ":9090", cfg.Server.RunAddress)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.False(t, cfg.Metrics.Enabled)
}
