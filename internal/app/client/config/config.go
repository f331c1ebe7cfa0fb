package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath          = ".env"
	envPrefix        = "VAULT"
	defaultEnv       = "prod"
	defaultServerURL = "http://localhost:8080"
	defaultConfigDir = ".vaultkeeper"
	defaultTimeout   = 30 * time.Second
	tokenFile        = "token"
)

var ErrMissingServerURL = errors.New("server_url must not be empty")

type Config struct {
	Env            string
	ServerURL      string
	ConfigDir      string
	TokenPath      string
	MasterPassword string
	LogLevel       string
	Timeout        time.Duration
}

// Load merges, from lowest to highest priority: defaults, the YAML config
// file, .env and VAULT_* environment variables. configFile may be empty, in
// which case ~/.vaultkeeper/config.yaml is used if it exists.
func Load(configFile string) (*Config, error) {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("load %s: %w", envPath, err)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	configDir := filepath.Join(home, defaultConfigDir)

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app_env", defaultEnv)
	v.SetDefault("server_url", defaultServerURL)
	v.SetDefault("config_dir", configDir)
	v.SetDefault("log_level", "")
	v.SetDefault("timeout", defaultTimeout)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	dir := v.GetString("config_dir")
	tokenPath := v.GetString("token_path")
	if tokenPath == "" {
		tokenPath = filepath.Join(dir, tokenFile)
	}

	cfg := &Config{
		Env:            v.GetString("app_env"),
		ServerURL:      strings.TrimRight(v.GetString("server_url"), "/"),
		ConfigDir:      dir,
		TokenPath:      tokenPath,
		MasterPassword: v.GetString("master_password"),
		LogLevel:       v.GetString("log_level"),
		Timeout:        v.GetDuration("timeout"),
	}

	if cfg.ServerURL == "" {
		return nil, ErrMissingServerURL
	}
	return cfg, nil
}
