package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/DanielPopoola/payment-connector/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("CONNECTOR_GATEWAY__API_KEY", "sk_test_123")

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "development", cfg.Primary.Env)
		assert.Equal(t, "https://testapi.multisafepay.com/", cfg.Gateway.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.Gateway.Timeout)
		assert.Equal(t, "sk_test_123", cfg.Gateway.APIKey.Peek())
		assert.Equal(t, time.Second, cfg.Retry.BaseDelay)
		assert.Equal(t, 3, cfg.Retry.MaxRetries)
		assert.Equal(t, "info", cfg.Logger.Level)
		assert.True(t, cfg.Contract.ValidateRequests)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("CONNECTOR_PRIMARY__ENV", "production")
		t.Setenv("CONNECTOR_GATEWAY__BASE_URL", "https://api.multisafepay.com/")
		t.Setenv("CONNECTOR_GATEWAY__TIMEOUT", "5s")
		t.Setenv("CONNECTOR_GATEWAY__API_KEY", "sk_live_456")
		t.Setenv("CONNECTOR_RETRY__BASE_DELAY", "250ms")
		t.Setenv("CONNECTOR_RETRY__MAX_RETRIES", "5")
		t.Setenv("CONNECTOR_LOGGER__LEVEL", "debug")
		t.Setenv("CONNECTOR_LOGGER__FORMAT", "json")
		t.Setenv("CONNECTOR_CONTRACT__VALIDATE_REQUESTS", "false")

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "production", cfg.Primary.Env)
		assert.Equal(t, "https://api.multisafepay.com/", cfg.Gateway.BaseURL)
		assert.Equal(t, 5*time.Second, cfg.Gateway.Timeout)
		assert.Equal(t, 250*time.Millisecond, cfg.Retry.BaseDelay)
		assert.Equal(t, 5, cfg.Retry.MaxRetries)
		assert.Equal(t, "json", cfg.Logger.Format)
		assert.False(t, cfg.Contract.ValidateRequests)
	})

	t.Run("api key is required", func(t *testing.T) {
		t.Setenv("CONNECTOR_GATEWAY__API_KEY", "")

		_, err := config.LoadConfig()

		assert.Error(t, err)
	})

	t.Run("rejects invalid base url", func(t *testing.T) {
		t.Setenv("CONNECTOR_GATEWAY__API_KEY", "sk_test_123")
		t.Setenv("CONNECTOR_GATEWAY__BASE_URL", "not a url")

		_, err := config.LoadConfig()

		assert.Error(t, err)
	})

	t.Run("rejects unknown log format", func(t *testing.T) {
		t.Setenv("CONNECTOR_GATEWAY__API_KEY", "sk_test_123")
		t.Setenv("CONNECTOR_LOGGER__FORMAT", "xml")

		_, err := config.LoadConfig()

		assert.Error(t, err)
	})
}

func TestLoggerConfig_NewLogger(t *testing.T) {
	ctx := t.Context()

	debug := config.LoggerConfig{Level: "debug"}.NewLogger()
	assert.True(t, debug.Enabled(ctx, slog.LevelDebug))

	fallback := config.LoggerConfig{Level: "verbose"}.NewLogger()
	assert.False(t, fallback.Enabled(ctx, slog.LevelDebug))
	assert.True(t, fallback.Enabled(ctx, slog.LevelInfo))

	errOnly := config.LoggerConfig{Level: "error", Format: "json"}.NewLogger()
	assert.False(t, errOnly.Enabled(ctx, slog.LevelWarn))
}
