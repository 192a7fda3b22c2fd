package transport_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanielPopoola/payment-connector/internal/config"
	"github.com/DanielPopoola/payment-connector/internal/connector"
	"github.com/DanielPopoola/payment-connector/internal/connector/multisafepay"
	"github.com/DanielPopoola/payment-connector/internal/domain"
	"github.com/DanielPopoola/payment-connector/internal/testhelpers"
	"github.com/DanielPopoola/payment-connector/internal/transport"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newGatewayConfig() config.GatewayConfig {
	return config.GatewayConfig{Timeout: 5 * time.Second}
}

func TestHTTPClient_Execute(t *testing.T) {
	t.Run("sends the built request", func(t *testing.T) {
		var got *http.Request
		var gotBody []byte
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r
			gotBody, _ = io.ReadAll(r.Body)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success":true,"data":{"order_id":"o1","status":"completed"}}`))
		}))
		defer server.Close()

		c, err := multisafepay.New(server.URL)
		require.NoError(t, err)
		item := testhelpers.DefaultAuthorizeRouterData()
		req, err := c.BuildAuthorizeRequest(item)
		require.NoError(t, err)

		client := transport.NewHTTPClient(newGatewayConfig(), nil, nil, discardLogger())
		resp, err := client.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, http.MethodPost, got.Method)
		assert.Equal(t, "/v1/json/orders", got.URL.Path)
		assert.Equal(t, testhelpers.TestAPIKey, got.Header.Get("api_key"))
		assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
		assert.JSONEq(t, string(req.Body), string(gotBody))

		out, err := c.HandleAuthorizeResponse(item, resp.Body)
		require.NoError(t, err)
		assert.Equal(t, domain.AttemptCharged, out.Status)
	})

	t.Run("non-2xx becomes gateway error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"error_code":1032,"error_info":"Invalid API key"}`))
		}))
		defer server.Close()

		client := transport.NewHTTPClient(newGatewayConfig(), nil, nil, discardLogger())
		_, err := client.Execute(context.Background(), connector.Request{
			Flow:   connector.FlowPSync,
			Method: http.MethodGet,
			URL:    server.URL + "/v1/json/orders/o1",
		})

		require.Error(t, err)
		gwErr, ok := transport.IsGatewayError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, gwErr.StatusCode)
		assert.False(t, gwErr.IsRetryable())
		assert.NotContains(t, err.Error(), "Invalid API key")

		c, err := multisafepay.New(server.URL)
		require.NoError(t, err)
		mapped := c.BuildErrorResponse(gwErr.StatusCode, gwErr.Body)
		assert.Equal(t, "1032", mapped.Code)
	})

	t.Run("contract rejection skips the network", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		contract, err := multisafepay.LoadContract(context.Background())
		require.NoError(t, err)

		client := transport.NewHTTPClient(newGatewayConfig(), contract, nil, discardLogger())
		_, err = client.Execute(context.Background(), connector.Request{
			Flow:   connector.FlowVoid,
			Method: http.MethodPatch,
			URL:    server.URL + "/v1/json/orders/o1",
			Body:   []byte(`{"status":"void"}`),
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrRequestEncoding)
		assert.False(t, domain.IsRetryable(err))
		assert.False(t, called)
	})

	t.Run("records metrics by outcome", func(t *testing.T) {
		status := http.StatusOK
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		reg := prometheus.NewRegistry()
		metrics := transport.NewMetrics(reg)
		client := transport.NewHTTPClient(newGatewayConfig(), nil, metrics, discardLogger())
		req := connector.Request{Flow: connector.FlowRSync, Method: http.MethodGet, URL: server.URL}

		_, err := client.Execute(context.Background(), req)
		require.NoError(t, err)
		status = http.StatusBadGateway
		_, err = client.Execute(context.Background(), req)
		require.Error(t, err)

		expected := `
# HELP connector_gateway_requests_total Gateway calls by flow and outcome.
# TYPE connector_gateway_requests_total counter
connector_gateway_requests_total{flow="rsync",outcome="gateway_error"} 1
connector_gateway_requests_total{flow="rsync",outcome="success"} 1
`
		assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "connector_gateway_requests_total"))
		series, err := testutil.GatherAndCount(reg, "connector_gateway_request_duration_seconds")
		require.NoError(t, err)
		assert.Equal(t, 1, series)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		client := transport.NewHTTPClient(newGatewayConfig(), nil, nil, discardLogger())
		_, err := client.Execute(ctx, connector.Request{Flow: connector.FlowPSync, Method: http.MethodGet, URL: server.URL})

		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.False(t, domain.IsRetryable(err))
	})
}

func TestGatewayError_IsRetryable(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{http.StatusBadRequest, false},
		{http.StatusUnauthorized, false},
		{http.StatusNotFound, false},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusServiceUnavailable, true},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := &transport.GatewayError{StatusCode: tt.status}

			assert.Equal(t, tt.want, err.IsRetryable())
			assert.Equal(t, tt.want, domain.IsRetryable(err))
		})
	}
}
