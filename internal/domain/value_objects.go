package domain

import (
	"errors"
	"log/slog"
)

// MinorUnit is an amount in the currency's smallest unit (cents for EUR).
type MinorUnit = int64

type Money struct {
	Amount   MinorUnit
	Currency Currency
}

func NewMoney(amount MinorUnit, currency Currency) (Money, error) {
	if amount < 0 {
		return Money{}, NewInvalidAmountError(amount)
	}
	if currency == "" {
		return Money{}, errors.New("currency is required")
	}
	return Money{Amount: amount, Currency: currency}, nil
}

// Currency is an ISO 4217 alphabetic code.
type Currency string

func (c Currency) String() string {
	return string(c)
}

const redacted = "[REDACTED]"

// Secret holds sensitive data such as a card number or an API key.
// Every printable form is masked; only Peek exposes the raw value.
type Secret string

// Peek returns the raw value. Use it only when building a wire payload.
func (s Secret) Peek() string {
	return string(s)
}

func (s Secret) IsEmpty() bool {
	return s == ""
}

func (s Secret) String() string {
	return redacted
}

func (s Secret) GoString() string {
	return redacted
}

func (s Secret) LogValue() slog.Value {
	return slog.StringValue(redacted)
}

// MarshalText masks the value in JSON and text encodings of canonical records.
func (s Secret) MarshalText() ([]byte, error) {
	return []byte(redacted), nil
}

// UnmarshalText accepts the raw value so canonical records can be decoded.
func (s *Secret) UnmarshalText(text []byte) error {
	*s = Secret(text)
	return nil
}
