package gateway

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is a configuration for the gateway application
type Config struct {
	HTTPAddr    string `env:"HTTP_ADDR"`
	ISO8583Addr string `env:"ISO8583_ADDR"`
	// ISO8583Enabled starts the ISO 8583 verification listener next to HTTP.
	ISO8583Enabled bool `env:"ISO8583_ENABLED"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL"`
	// LogFormat is text or json.
	LogFormat string `env:"LOG_FORMAT"`
}

func DefaultConfig() *Config {
	return &Config{
		HTTPAddr:       "localhost:9090",
		ISO8583Addr:    "localhost:8583",
		ISO8583Enabled: true,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// LoadConfig reads the given .env files (missing ones are skipped) and then
// overrides DefaultConfig with environment variables.
func LoadConfig(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := DefaultConfig()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing env: %w", err)
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("unsupported LOG_FORMAT=%s", cfg.LogFormat)
	}

	return cfg, nil
}
