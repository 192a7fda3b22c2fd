package domain

import (
	"errors"
	"fmt"
)

// ConnectorError represents a failure while translating to or from a gateway's wire format.
type ConnectorError struct {
	Code    string
	Message string
	Err     error
}

func (e *ConnectorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ConnectorError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a ConnectorError carrying the same code,
// so the sentinels below match any error built by the constructors.
func (e *ConnectorError) Is(target error) bool {
	t, ok := target.(*ConnectorError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Retryable interface for errors that can be retried
type Retryable interface {
	IsRetryable() bool
}

const (
	ErrCodeUnsupportedPaymentMethod = "UNSUPPORTED_PAYMENT_METHOD"
	ErrCodeAuthType                 = "AUTH_TYPE_ERROR"
	ErrCodeParsing                  = "PARSING_ERROR"
	ErrCodeNotImplemented           = "NOT_IMPLEMENTED"
	ErrCodeMissingRequiredField     = "MISSING_REQUIRED_FIELD"
	ErrCodeRequestEncoding          = "REQUEST_ENCODING_FAILED"
	ErrCodeInvalidAmount            = "INVALID_AMOUNT"
)

var (
	ErrUnsupportedPaymentMethod = &ConnectorError{Code: ErrCodeUnsupportedPaymentMethod, Message: "payment method not supported"}
	ErrAuthType                 = &ConnectorError{Code: ErrCodeAuthType, Message: "could not obtain expected auth type"}
	ErrParsing                  = &ConnectorError{Code: ErrCodeParsing, Message: "failed to parse connector response"}
	ErrNotImplemented           = &ConnectorError{Code: ErrCodeNotImplemented, Message: "not implemented"}
	ErrMissingRequiredField     = &ConnectorError{Code: ErrCodeMissingRequiredField, Message: "missing required field"}
	ErrRequestEncoding          = &ConnectorError{Code: ErrCodeRequestEncoding, Message: "failed to encode connector request"}
	ErrInvalidAmount            = &ConnectorError{Code: ErrCodeInvalidAmount, Message: "invalid amount"}
)

func NewUnsupportedPaymentMethodError(method string) *ConnectorError {
	return &ConnectorError{
		Code:    ErrCodeUnsupportedPaymentMethod,
		Message: fmt.Sprintf("payment method %s is not supported", method),
	}
}

func NewAuthTypeError() *ConnectorError {
	return &ConnectorError{
		Code:    ErrCodeAuthType,
		Message: "could not obtain expected auth type",
	}
}

// NewParsingError wraps a decode or mapping failure. what names the
// response part that failed; it must never carry card data.
func NewParsingError(what string, err error) *ConnectorError {
	return &ConnectorError{
		Code:    ErrCodeParsing,
		Message: fmt.Sprintf("failed to parse %s", what),
		Err:     err,
	}
}

func NewNotImplementedError(what string) *ConnectorError {
	return &ConnectorError{
		Code:    ErrCodeNotImplemented,
		Message: fmt.Sprintf("%s is not implemented", what),
	}
}

func NewMissingRequiredFieldError(field string) *ConnectorError {
	return &ConnectorError{
		Code:    ErrCodeMissingRequiredField,
		Message: fmt.Sprintf("%s is required", field),
	}
}

func NewRequestEncodingError(err error) *ConnectorError {
	return &ConnectorError{
		Code:    ErrCodeRequestEncoding,
		Message: "failed to encode connector request",
		Err:     err,
	}
}

func NewInvalidAmountError(amount int64) *ConnectorError {
	return &ConnectorError{
		Code:    ErrCodeInvalidAmount,
		Message: fmt.Sprintf("invalid amount %d", amount),
	}
}

// IsErrorCode checks if an error is a ConnectorError with a specific code
func IsErrorCode(err error, code string) bool {
	var connErr *ConnectorError
	if errors.As(err, &connErr) {
		return connErr.Code == code
	}
	return false
}
