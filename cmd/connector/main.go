package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/DanielPopoola/payment-connector/internal/config"
	"github.com/DanielPopoola/payment-connector/internal/connector"
	"github.com/DanielPopoola/payment-connector/internal/connector/multisafepay"
	"github.com/DanielPopoola/payment-connector/internal/domain"
	"github.com/DanielPopoola/payment-connector/internal/transport"
)

func main() {
	flow := flag.String("flow", "", "flow to run: authorize, capture, void, psync, refund, rsync")
	input := flag.String("input", "-", "operation JSON file, or - for stdin")
	execute := flag.Bool("execute", false, "send the request to the gateway")
	dumpMetrics := flag.Bool("metrics", false, "print gateway metrics to stderr on exit")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	code := run(ctx, cfg, logger, reg, options{
		flow:    connector.Flow(*flow),
		input:   *input,
		execute: *execute,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
	})

	if *dumpMetrics {
		if err := writeMetrics(os.Stderr, reg); err != nil {
			logger.Error("failed to write metrics", "error", err)
		}
	}
	os.Exit(code)
}

type options struct {
	flow    connector.Flow
	input   string
	execute bool
	stdin   io.Reader
	stdout  io.Writer
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer, opts options) int {
	conn, err := multisafepay.New(cfg.Gateway.BaseURL)
	if err != nil {
		logger.Error("failed to create connector", "error", err)
		return 1
	}

	op, err := loadOperation(opts)
	if err != nil {
		logger.Error("failed to read operation", "input", opts.input, "error", err)
		return 1
	}

	auth := domain.HeaderKey{APIKey: cfg.Gateway.APIKey}
	c, err := prepare(conn, opts.flow, op, auth)
	if err != nil {
		logger.Error("failed to build gateway request",
			"flow", opts.flow,
			"category", domain.CategorizeError(err),
			"error", err,
		)
		return 1
	}

	logger.Info("built gateway request", "request", c.request, "payload", c.request.Payload)

	if !opts.execute {
		return printJSON(opts.stdout, logger, requestSummary(c.request))
	}

	var validator transport.RequestValidator
	if cfg.Contract.ValidateRequests {
		contract, err := multisafepay.LoadContract(ctx)
		if err != nil {
			logger.Error("failed to load wire contract", "error", err)
			return 1
		}
		validator = contract
	}

	metrics := transport.NewMetrics(reg)
	client := transport.NewRetryClient(
		transport.NewHTTPClient(cfg.Gateway, validator, metrics, logger),
		cfg.Retry,
		metrics,
		logger,
	)

	resp, err := client.Execute(ctx, c.request)
	if err != nil {
		if gwErr, ok := transport.IsGatewayError(err); ok {
			out := conn.BuildErrorResponse(gwErr.StatusCode, gwErr.Body)
			logger.Warn("gateway rejected request", "flow", opts.flow, "status", gwErr.StatusCode, "code", out.Code)
			printJSON(opts.stdout, logger, errorResult(opts.flow, out))
			return 2
		}
		logger.Error("gateway request failed",
			"flow", opts.flow,
			"category", domain.CategorizeError(err),
			"error", err,
		)
		return 1
	}

	out, err := c.handle(resp.Body)
	if err != nil {
		logger.Error("failed to handle gateway response", "flow", opts.flow, "error", err)
		return 1
	}
	return printJSON(opts.stdout, logger, out)
}

func loadOperation(opts options) (operation, error) {
	if opts.input == "-" {
		return readOperation(opts.stdin)
	}
	f, err := os.Open(opts.input)
	if err != nil {
		return operation{}, err
	}
	defer f.Close()
	return readOperation(f)
}

// requestSummary is the printable form of a built request. Credential
// headers are masked and the body is left out since it may carry card data.
func requestSummary(req connector.Request) map[string]any {
	headers := make(map[string]string, len(req.Headers))
	for _, h := range req.Headers {
		headers[h.Name] = h.LogValue().String()
	}
	return map[string]any{
		"flow":       req.Flow,
		"method":     req.Method,
		"url":        req.URL,
		"headers":    headers,
		"body_bytes": len(req.Body),
	}
}

func printJSON(w io.Writer, logger *slog.Logger, v any) int {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.Error("failed to write output", "error", err)
		return 1
	}
	return 0
}

func writeMetrics(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("error gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
