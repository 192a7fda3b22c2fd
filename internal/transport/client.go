// Package transport executes requests built by a connector binding against
// the gateway over HTTP.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/DanielPopoola/payment-connector/internal/config"
	"github.com/DanielPopoola/payment-connector/internal/connector"
	"github.com/DanielPopoola/payment-connector/internal/domain"
)

const maxResponseBytes = 1 << 20

// Executor sends one connector request and returns the raw gateway answer.
type Executor interface {
	Execute(ctx context.Context, req connector.Request) (*Response, error)
}

// RequestValidator checks an outgoing body before it leaves the process.
type RequestValidator interface {
	ValidateRequest(flow connector.Flow, body []byte) error
}

type Response struct {
	StatusCode int
	Body       []byte
}

type HTTPClient struct {
	httpClient *http.Client
	validator  RequestValidator
	metrics    *Metrics
	logger     *slog.Logger
}

// NewHTTPClient returns an Executor bounded by cfg.Timeout. validator and
// metrics are optional.
func NewHTTPClient(cfg config.GatewayConfig, validator RequestValidator, metrics *Metrics, logger *slog.Logger) *HTTPClient {
	return &HTTPClient{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		validator: validator,
		metrics:   metrics,
		logger:    logger,
	}
}

func (c *HTTPClient) Execute(ctx context.Context, req connector.Request) (*Response, error) {
	start := time.Now()

	if c.validator != nil {
		if err := c.validator.ValidateRequest(req.Flow, req.Body); err != nil {
			c.metrics.observe(req.Flow, outcomeRejected, time.Since(start))
			return nil, domain.NewRequestEncodingError(err)
		}
	}

	var bodyReader io.Reader
	if len(req.Body) > 0 {
		bodyReader = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	for _, h := range req.Headers {
		httpReq.Header.Set(h.Name, h.Value)
	}

	c.logger.Debug("sending gateway request", "request", req, "payload", req.Payload)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.observe(req.Flow, outcomeTransport, time.Since(start))
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.metrics.observe(req.Flow, outcomeTransport, time.Since(start))
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	elapsed := time.Since(start)
	c.logger.Info("gateway request completed",
		"flow", req.Flow,
		"method", req.Method,
		"path", httpReq.URL.Path,
		"status", resp.StatusCode,
		"duration", elapsed,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.observe(req.Flow, outcomeGateway, elapsed)
		return nil, &GatewayError{
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}

	c.metrics.observe(req.Flow, outcomeSuccess, elapsed)
	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}
