package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultRunAddress      = ":8080"
	defaultMigrations      = "migrations"
	defaultShutdownTimeout = 10 * time.Second
	defaultMetricsNS       = "vaultkeeper"
)

var (
	ErrMissingSecret      = errors.New("JWT_SECRET must be set")
	ErrMissingDatabaseURI = errors.New("DATABASE_URI must be set")
)

type Config struct {
	Env     string
	DB      DB
	Server  Server
	Auth    Auth
	Logger  Logger
	Metrics Metrics
}

type DB struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`
}

type Server struct {
	RunAddress      string        `env:"RUN_ADDRESS" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type Auth struct {
	Secret string `env:"JWT_SECRET"`
}

type Logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type Metrics struct {
	Enabled   bool   `env:"METRICS_ENABLED" envDefault:"true"`
	Namespace string `env:"METRICS_NAMESPACE" envDefault:"vaultkeeper"`
}

// Load reads the .env file if present, then the process environment.
// The signing secret and the database URI are mandatory.
func Load() (*Config, error) {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("load %s: %w", envPath, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("run_address", defaultRunAddress)
	v.SetDefault("migrations_path", defaultMigrations)
	v.SetDefault("auto_migrate", true)
	v.SetDefault("shutdown_timeout", defaultShutdownTimeout)
	v.SetDefault("log_level", "info")
	v.SetDefault("metrics_enabled", true)
	v.SetDefault("metrics_namespace", defaultMetricsNS)

	cfg := &Config{
		Env: v.GetString("app_env"),
		DB: DB{
			DatabaseURI: v.GetString("database_uri"),
			Migrations:  v.GetString("migrations_path"),
			AutoMigrate: v.GetBool("auto_migrate"),
		},
		Server: Server{
			RunAddress:      v.GetString("run_address"),
			ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		},
		Auth:   Auth{Secret: v.GetString("jwt_secret")},
		Logger: Logger{LogLevel: v.GetString("log_level")},
		Metrics: Metrics{
			Enabled:   v.GetBool("metrics_enabled"),
			Namespace: v.GetString("metrics_namespace"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MustLoad is Load that exits the process on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.Auth.Secret == "" {
		return ErrMissingSecret
	}
	if c.DB.DatabaseURI == "" {
		return ErrMissingDatabaseURI
	}
	return nil
}
