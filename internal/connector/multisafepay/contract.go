package multisafepay

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/DanielPopoola/payment-connector/internal/connector"
)

//go:embed openapi.yaml
var contractDocument []byte

var (
	requestSchemas = map[connector.Flow]string{
		connector.FlowAuthorize: "PaymentsRequest",
		connector.FlowCapture:   "CaptureRequest",
		connector.FlowVoid:      "CancelRequest",
		connector.FlowRefund:    "RefundRequest",
	}
	responseSchemas = map[connector.Flow]string{
		connector.FlowAuthorize: "PaymentsResponse",
		connector.FlowCapture:   "PaymentsResponse",
		connector.FlowPSync:     "PaymentsResponse",
		connector.FlowVoid:      "CancelResponse",
		connector.FlowRefund:    "RefundResponse",
		connector.FlowRSync:     "RefundSyncResponse",
	}
)

// Contract checks JSON bodies against the gateway's wire schemas.
type Contract struct {
	doc *openapi3.T
}

func LoadContract(ctx context.Context) (*Contract, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(contractDocument)
	if err != nil {
		return nil, fmt.Errorf("error loading wire contract: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid wire contract: %w", err)
	}
	return &Contract{doc: doc}, nil
}

// ValidateRequest checks an outgoing body. Flows without a body pass.
func (c *Contract) ValidateRequest(flow connector.Flow, body []byte) error {
	name, ok := requestSchemas[flow]
	if !ok {
		if len(body) == 0 {
			return nil
		}
		return fmt.Errorf("flow %s sends no body", flow)
	}
	return c.Validate(name, body)
}

func (c *Contract) ValidateResponse(flow connector.Flow, body []byte) error {
	name, ok := responseSchemas[flow]
	if !ok {
		return fmt.Errorf("no response schema for flow %s", flow)
	}
	return c.Validate(name, body)
}

// Validate checks body against the named component schema.
func (c *Contract) Validate(schema string, body []byte) error {
	ref, ok := c.doc.Components.Schemas[schema]
	if !ok || ref.Value == nil {
		return fmt.Errorf("unknown schema %s", schema)
	}

	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return fmt.Errorf("body is not JSON: %w", err)
	}
	if err := ref.Value.VisitJSON(value); err != nil {
		// SchemaError.Error dumps the offending value, which may be card data.
		var schemaErr *openapi3.SchemaError
		if errors.As(err, &schemaErr) {
			return fmt.Errorf("body does not match %s at /%s: %s",
				schema, strings.Join(schemaErr.JSONPointer(), "/"), schemaErr.Reason)
		}
		return fmt.Errorf("body does not match %s", schema)
	}
	return nil
}
