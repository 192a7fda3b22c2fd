package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// GatewayError is a non-2xx answer. Body is kept for the connector's error
// mapper and is never part of the error text.
type GatewayError struct {
	StatusCode int
	Body       []byte
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway returned status %d", e.StatusCode)
}

func (e *GatewayError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

func IsGatewayError(err error) (*GatewayError, bool) {
	var gwErr *GatewayError
	ok := errors.As(err, &gwErr)
	return gwErr, ok
}
