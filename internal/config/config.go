package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultAPITimeoutSeconds = 15
	defaultUserAgent         = "journey-planner/1.0"
)

type Config struct {
	Server ServerConfig
	API    APIConfig
	Store  StoreConfig
	Log    LogConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	AllowOrigins string
}

// APIConfig describes the journey-planning backend every outgoing request targets.
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

type StoreConfig struct {
	// DiscardStale drops the terminal state of a search that was superseded
	// by a newer one. Off by default: the last response to arrive wins.
	DiscardStale bool
}

type LogConfig struct {
	Level string
}

// Load reads configuration from the .env file in the working directory
// (if present) and from the environment.
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit env file path. A missing file is not an
// error; environment variables alone are enough.
func LoadFrom(envFile string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("API_TIMEOUT", defaultAPITimeoutSeconds)
	v.SetDefault("API_USER_AGENT", defaultUserAgent)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("STORE_DISCARD_STALE", false)

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			v.SetConfigFile(envFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         v.GetString("HTTP_HOST"),
			Port:         v.GetInt("HTTP_PORT"),
			Env:          v.GetString("APP_ENV"),
			AllowOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
		},
		API: APIConfig{
			BaseURL:   strings.TrimRight(strings.TrimSpace(v.GetString("API_BASE_URL")), "/"),
			Timeout:   time.Duration(v.GetInt("API_TIMEOUT")) * time.Second,
			UserAgent: v.GetString("API_USER_AGENT"),
		},
		Store: StoreConfig{
			DiscardStale: v.GetBool("STORE_DISCARD_STALE"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = defaultAPITimeoutSeconds * time.Second
	}

	return cfg, nil
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("API_BASE_URL must be an http(s) URL, got %q", c.API.BaseURL)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
