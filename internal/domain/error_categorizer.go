package domain

import (
	"context"
	"errors"
)

// ErrorCategory represents the nature of an error for retry logic
type ErrorCategory string

const (
	CategoryTransient    ErrorCategory = "TRANSIENT"
	CategoryPermanent    ErrorCategory = "PERMANENT"
	CategoryClientError  ErrorCategory = "CLIENT_ERROR"
	CategoryNotSupported ErrorCategory = "NOT_SUPPORTED"
)

// CategorizeError determines error category for retry and logging purposes
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.Canceled) {
		return CategoryPermanent
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CategoryTransient
	}

	// Translation failures never improve on retry.
	var connErr *ConnectorError
	if errors.As(err, &connErr) {
		switch connErr.Code {
		case ErrCodeUnsupportedPaymentMethod, ErrCodeNotImplemented:
			return CategoryNotSupported
		case ErrCodeAuthType, ErrCodeMissingRequiredField, ErrCodeInvalidAmount, ErrCodeRequestEncoding:
			return CategoryClientError
		default:
			return CategoryPermanent
		}
	}

	var retryable Retryable
	if errors.As(err, &retryable) {
		if retryable.IsRetryable() {
			return CategoryTransient
		}
		return CategoryPermanent
	}

	// Network level failures surface as plain errors.
	return CategoryTransient
}

// IsRetryable returns true if the error category suggests retry
func IsRetryable(err error) bool {
	return CategorizeError(err) == CategoryTransient
}
