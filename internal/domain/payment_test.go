package domain_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/DanielPopoola/payment-connector/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money successfully", func(t *testing.T) {
		money, err := domain.NewMoney(5000, "EUR")

		require.NoError(t, err)
		assert.Equal(t, int64(5000), money.Amount)
		assert.Equal(t, domain.Currency("EUR"), money.Currency)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := domain.NewMoney(-100, "EUR")

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := domain.NewMoney(5000, "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "currency is required")
	})
}

func TestSecret_NeverPrinted(t *testing.T) {
	card := domain.Card{
		Number:     "4111111111111111",
		ExpMonth:   "12",
		ExpYear:    "2030",
		HolderName: "Jane Doe",
		CVC:        "123",
	}

	t.Run("fmt verbs", func(t *testing.T) {
		for _, out := range []string{
			fmt.Sprintf("%v", card),
			fmt.Sprintf("%+v", card),
			fmt.Sprintf("%#v", card),
			fmt.Sprintf("%s", card.Number),
		} {
			assert.NotContains(t, out, "4111111111111111")
			assert.NotContains(t, out, "Jane Doe")
		}
	})

	t.Run("json encoding", func(t *testing.T) {
		out, err := json.Marshal(card)
		require.NoError(t, err)

		assert.NotContains(t, string(out), "4111111111111111")
		assert.Contains(t, string(out), "[REDACTED]")
	})

	t.Run("slog", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		logger.Info("card", "number", card.Number, "cvc", card.CVC)

		assert.NotContains(t, buf.String(), "4111111111111111")
		assert.NotContains(t, buf.String(), `"123"`)
	})

	t.Run("peek exposes raw value", func(t *testing.T) {
		assert.Equal(t, "4111111111111111", card.Number.Peek())
	})

	t.Run("decodes raw value", func(t *testing.T) {
		var s domain.Secret
		require.NoError(t, json.Unmarshal([]byte(`"sk_test_123"`), &s))
		assert.Equal(t, "sk_test_123", s.Peek())
	})
}

func TestConnectorError(t *testing.T) {
	t.Run("constructors match sentinels", func(t *testing.T) {
		cases := []struct {
			err      error
			sentinel error
			code     string
		}{
			{domain.NewUnsupportedPaymentMethodError("wallet"), domain.ErrUnsupportedPaymentMethod, domain.ErrCodeUnsupportedPaymentMethod},
			{domain.NewAuthTypeError(), domain.ErrAuthType, domain.ErrCodeAuthType},
			{domain.NewParsingError("status", errors.New("boom")), domain.ErrParsing, domain.ErrCodeParsing},
			{domain.NewNotImplementedError("verify"), domain.ErrNotImplemented, domain.ErrCodeNotImplemented},
			{domain.NewMissingRequiredFieldError("payment_id"), domain.ErrMissingRequiredField, domain.ErrCodeMissingRequiredField},
		}
		for _, tc := range cases {
			wrapped := fmt.Errorf("connector: %w", tc.err)
			assert.ErrorIs(t, wrapped, tc.sentinel)
			assert.True(t, domain.IsErrorCode(wrapped, tc.code))
		}
	})

	t.Run("does not match other codes", func(t *testing.T) {
		err := domain.NewAuthTypeError()
		assert.NotErrorIs(t, err, domain.ErrParsing)
		assert.False(t, domain.IsErrorCode(errors.New("plain"), domain.ErrCodeParsing))
	})

	t.Run("auth type message", func(t *testing.T) {
		assert.Equal(t, "could not obtain expected auth type", domain.NewAuthTypeError().Error())
	})

	t.Run("unwraps cause", func(t *testing.T) {
		cause := errors.New("unexpected end of JSON input")
		err := domain.NewParsingError("payments response", cause)

		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "failed to parse payments response: unexpected end of JSON input", err.Error())
	})
}

type retryableErr struct{ retry bool }

func (e retryableErr) Error() string     { return "gateway failure" }
func (e retryableErr) IsRetryable() bool { return e.retry }

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domain.ErrorCategory
	}{
		{"nil", nil, ""},
		{"deadline", context.DeadlineExceeded, domain.CategoryTransient},
		{"canceled", context.Canceled, domain.CategoryPermanent},
		{"unsupported method", domain.NewUnsupportedPaymentMethodError("wallet"), domain.CategoryNotSupported},
		{"not implemented", domain.NewNotImplementedError("session"), domain.CategoryNotSupported},
		{"auth type", domain.NewAuthTypeError(), domain.CategoryClientError},
		{"parsing", domain.NewParsingError("status", nil), domain.CategoryPermanent},
		{"retryable gateway error", retryableErr{retry: true}, domain.CategoryTransient},
		{"non retryable gateway error", retryableErr{retry: false}, domain.CategoryPermanent},
		{"network error", errors.New("connection reset by peer"), domain.CategoryTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CategorizeError(tt.err))
		})
	}

	assert.True(t, domain.IsRetryable(retryableErr{retry: true}))
	assert.False(t, domain.IsRetryable(domain.NewParsingError("status", nil)))
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, domain.AttemptCharged.IsTerminal())
	assert.True(t, domain.AttemptVoided.IsTerminal())
	assert.False(t, domain.AttemptStarted.IsTerminal())
	assert.False(t, domain.AttemptVoidFailed.IsTerminal())

	assert.True(t, domain.RefundSuccess.IsTerminal())
	assert.False(t, domain.RefundPending.IsTerminal())
}
