package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"

	"github.com/DanielPopoola/payment-connector/internal/domain"
)

const envPrefix = "CONNECTOR_"

type Config struct {
	Primary  Primary        `koanf:"primary"`
	Gateway  GatewayConfig  `koanf:"gateway"`
	Retry    RetryConfig    `koanf:"retry"`
	Logger   LoggerConfig   `koanf:"logger"`
	Contract ContractConfig `koanf:"contract"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type GatewayConfig struct {
	BaseURL string        `koanf:"base_url" validate:"required,url"`
	Timeout time.Duration `koanf:"timeout" validate:"required"`
	APIKey  domain.Secret `koanf:"api_key" validate:"required"`
}

type RetryConfig struct {
	BaseDelay  time.Duration `koanf:"base_delay"`
	MaxRetries int           `koanf:"max_retries" validate:"min=1"`
}

type LoggerConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `koanf:"format" validate:"omitempty,oneof=text json"`
}

type ContractConfig struct {
	ValidateRequests bool `koanf:"validate_requests"`
}

var defaults = map[string]any{
	"primary.env":                "development",
	"gateway.base_url":           "https://testapi.multisafepay.com/",
	"gateway.timeout":            "30s",
	"retry.base_delay":           "1s",
	"retry.max_retries":          3,
	"logger.level":               "info",
	"logger.format":              "text",
	"contract.validate_requests": true,
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		logger.Error("failed to load defaults", "error", err)
		return nil, err
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

// NewLogger builds the process logger. Unknown levels fall back to info.
func (c LoggerConfig) NewLogger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
