package transport

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/DanielPopoola/payment-connector/internal/config"
	"github.com/DanielPopoola/payment-connector/internal/connector"
	"github.com/DanielPopoola/payment-connector/internal/domain"
)

type RetryClient struct {
	inner      Executor
	baseDelay  time.Duration
	maxRetries int
	metrics    *Metrics
	logger     *slog.Logger
}

func NewRetryClient(inner Executor, cfg config.RetryConfig, metrics *Metrics, logger *slog.Logger) *RetryClient {
	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &RetryClient{
		inner:      inner,
		baseDelay:  cfg.BaseDelay,
		maxRetries: maxRetries,
		metrics:    metrics,
		logger:     logger,
	}
}

// Execute repeats retryable failures with exponential backoff. Gateway
// rejections and connector errors are returned after the first attempt.
func (r *RetryClient) Execute(ctx context.Context, req connector.Request) (*Response, error) {
	var lastErr error

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		resp, err := r.inner.Execute(ctx, req)
		if err == nil {
			return resp, nil
		}

		lastErr = err

		if !domain.IsRetryable(err) {
			return nil, err
		}

		if attempt < r.maxRetries-1 {
			delay := r.backoff(attempt)
			r.logger.Warn("retrying gateway request",
				"flow", req.Flow,
				"attempt", attempt+1,
				"delay", delay,
				"error", err,
			)
			r.metrics.retried(req.Flow)

			if err := sleep(ctx, delay); err != nil {
				return nil, err
			}
		}
	}

	return nil, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

// backoff doubles the base delay per attempt and adds up to one base delay of jitter.
func (r *RetryClient) backoff(attempt int) time.Duration {
	base := r.baseDelay * time.Duration(1<<attempt)
	if r.baseDelay <= 0 {
		return base
	}
	return base + rand.N(r.baseDelay)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
