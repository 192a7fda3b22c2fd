// Package connector holds the vocabulary shared by gateway bindings and the
// transport that executes what they build.
package connector

import (
	"log/slog"
	"slices"

	"github.com/DanielPopoola/payment-connector/internal/domain"
)

// Flow names one request/response exchange with a gateway.
type Flow string

const (
	FlowAuthorize    Flow = "authorize"
	FlowCapture      Flow = "capture"
	FlowVoid         Flow = "void"
	FlowPSync        Flow = "psync"
	FlowRefund       Flow = "refund"
	FlowRSync        Flow = "rsync"
	FlowVerify       Flow = "verify"
	FlowSession      Flow = "session"
	FlowSetupMandate Flow = "setup_mandate"
)

// Header is a single outgoing header. Masked headers carry credentials.
type Header struct {
	Name   string
	Value  string
	Masked bool
}

func (h Header) LogValue() slog.Value {
	if h.Masked {
		return slog.StringValue("[REDACTED]")
	}
	return slog.StringValue(h.Value)
}

// Request is a fully built gateway call. Body may contain card data and is
// never logged; log Payload instead, whose wire types mask sensitive fields.
type Request struct {
	Flow    Flow
	Method  string
	URL     string
	Headers []Header
	Body    []byte
	Payload any
}

func (r Request) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("flow", string(r.Flow)),
		slog.String("method", r.Method),
		slog.String("url", r.URL),
		slog.Int("body_bytes", len(r.Body)),
	)
}

// Capabilities advertises what a binding can translate, so callers can
// route around missing support before building anything.
type Capabilities struct {
	Flows          []Flow
	PaymentMethods []domain.PaymentMethodType
}

func (c Capabilities) SupportsFlow(flow Flow) bool {
	return slices.Contains(c.Flows, flow)
}

func (c Capabilities) SupportsPaymentMethod(method domain.PaymentMethodType) bool {
	return slices.Contains(c.PaymentMethods, method)
}

// CheckFlow returns a NotImplemented error for flows outside c.
func (c Capabilities) CheckFlow(flow Flow) error {
	if c.SupportsFlow(flow) {
		return nil
	}
	return domain.NewNotImplementedError("flow " + string(flow))
}
