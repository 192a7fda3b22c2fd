// Package multisafepay translates canonical payment operations into
// MultiSafepay's JSON API and maps its responses back. Nothing in this
// package performs I/O; the transport executes the requests it builds.
package multisafepay

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/DanielPopoola/payment-connector/internal/connector"
	"github.com/DanielPopoola/payment-connector/internal/domain"
)

const (
	Name           = "multisafepay"
	DefaultBaseURL = "https://testapi.multisafepay.com/"

	apiKeyHeader = "api_key"
	jsonMIME     = "application/json"
	ordersPath   = "v1/json/orders"
	refundsPath  = "refunds"

	NoErrorCode    = "No error code"
	NoErrorMessage = "No error message"
)

var capabilities = connector.Capabilities{
	Flows: []connector.Flow{
		connector.FlowAuthorize,
		connector.FlowCapture,
		connector.FlowVoid,
		connector.FlowPSync,
		connector.FlowRefund,
		connector.FlowRSync,
	},
	PaymentMethods: []domain.PaymentMethodType{domain.PaymentMethodCard},
}

type Connector struct {
	baseURL *url.URL
}

// New returns a connector targeting baseURL, or the test environment when empty.
func New(baseURL string) (*Connector, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", baseURL)
	}
	return &Connector{baseURL: u}, nil
}

func (c *Connector) Name() string {
	return Name
}

func (c *Connector) Capabilities() connector.Capabilities {
	return capabilities
}

// CheckFlow reports NotImplemented for flows this binding does not translate,
// such as verify, session or setup_mandate.
func (c *Connector) CheckFlow(flow connector.Flow) error {
	return capabilities.CheckFlow(flow)
}

func (c *Connector) BuildAuthorizeRequest(item domain.PaymentsAuthorizeRouterData) (connector.Request, error) {
	payload, err := NewPaymentsRequest(item)
	if err != nil {
		return connector.Request{}, err
	}
	return c.request(connector.FlowAuthorize, http.MethodPost, item.ConnectorAuthType, payload, ordersPath)
}

func (c *Connector) HandleAuthorizeResponse(item domain.PaymentsAuthorizeRouterData, body []byte) (domain.PaymentsAuthorizeRouterData, error) {
	resp, err := decodeResponse[PaymentsResponse]("payments response", body)
	if err != nil {
		return domain.PaymentsAuthorizeRouterData{}, err
	}
	return ApplyPaymentsResponse(resp, item)
}

func (c *Connector) BuildCaptureRequest(item domain.PaymentsCaptureRouterData) (connector.Request, error) {
	orderID := item.Request.ConnectorTransactionID
	if orderID == "" {
		return connector.Request{}, domain.NewMissingRequiredFieldError("connector_transaction_id")
	}
	return c.request(connector.FlowCapture, http.MethodPatch, item.ConnectorAuthType, NewCaptureRequest(item), ordersPath, url.PathEscape(orderID))
}

func (c *Connector) HandleCaptureResponse(item domain.PaymentsCaptureRouterData, body []byte) (domain.PaymentsCaptureRouterData, error) {
	resp, err := decodeResponse[PaymentsResponse]("payments response", body)
	if err != nil {
		return domain.PaymentsCaptureRouterData{}, err
	}
	return ApplyPaymentsResponse(resp, item)
}

func (c *Connector) BuildVoidRequest(item domain.PaymentsCancelRouterData) (connector.Request, error) {
	orderID := item.Request.ConnectorTransactionID
	if orderID == "" {
		return connector.Request{}, domain.NewMissingRequiredFieldError("connector_transaction_id")
	}
	return c.request(connector.FlowVoid, http.MethodPatch, item.ConnectorAuthType, NewCancelRequest(item), ordersPath, url.PathEscape(orderID))
}

func (c *Connector) HandleVoidResponse(item domain.PaymentsCancelRouterData, body []byte) (domain.PaymentsCancelRouterData, error) {
	resp, err := decodeResponse[CancelResponse]("cancel response", body)
	if err != nil {
		return domain.PaymentsCancelRouterData{}, err
	}
	return ApplyCancelResponse(resp, item)
}

func (c *Connector) BuildPSyncRequest(item domain.PaymentsSyncRouterData) (connector.Request, error) {
	orderID := item.Request.ConnectorTransactionID
	if orderID == "" {
		return connector.Request{}, domain.NewMissingRequiredFieldError("connector_transaction_id")
	}
	return c.request(connector.FlowPSync, http.MethodGet, item.ConnectorAuthType, nil, ordersPath, url.PathEscape(orderID))
}

func (c *Connector) HandlePSyncResponse(item domain.PaymentsSyncRouterData, body []byte) (domain.PaymentsSyncRouterData, error) {
	resp, err := decodeResponse[PaymentsResponse]("payments response", body)
	if err != nil {
		return domain.PaymentsSyncRouterData{}, err
	}
	return ApplyPaymentsResponse(resp, item)
}

func (c *Connector) BuildRefundRequest(item domain.RefundsRouterData) (connector.Request, error) {
	orderID := item.Request.ConnectorTransactionID
	if orderID == "" {
		return connector.Request{}, domain.NewMissingRequiredFieldError("connector_transaction_id")
	}
	return c.request(connector.FlowRefund, http.MethodPost, item.ConnectorAuthType, NewRefundRequest(item), ordersPath, url.PathEscape(orderID), refundsPath)
}

func (c *Connector) HandleRefundResponse(item domain.RefundsRouterData, body []byte) (domain.RefundsRouterData, error) {
	resp, err := decodeResponse[RefundResponse]("refund response", body)
	if err != nil {
		return domain.RefundsRouterData{}, err
	}
	return ApplyRefundResponse(resp, item)
}

func (c *Connector) BuildRSyncRequest(item domain.RefundsRouterData) (connector.Request, error) {
	orderID := item.Request.ConnectorTransactionID
	if orderID == "" {
		return connector.Request{}, domain.NewMissingRequiredFieldError("connector_transaction_id")
	}
	if item.Request.ConnectorRefundID == nil || *item.Request.ConnectorRefundID == "" {
		return connector.Request{}, domain.NewMissingRequiredFieldError("connector_refund_id")
	}
	return c.request(connector.FlowRSync, http.MethodGet, item.ConnectorAuthType, nil,
		ordersPath, url.PathEscape(orderID), refundsPath, url.PathEscape(*item.Request.ConnectorRefundID))
}

func (c *Connector) HandleRSyncResponse(item domain.RefundsRouterData, body []byte) (domain.RefundsRouterData, error) {
	resp, err := decodeResponse[RefundSyncResponse]("refund sync response", body)
	if err != nil {
		return domain.RefundsRouterData{}, err
	}
	return ApplyRefundSyncResponse(resp, item)
}

// BuildErrorResponse maps a rejected call onto the canonical error. Bodies
// that are not the gateway's envelope still yield a usable error.
func (c *Connector) BuildErrorResponse(statusCode int, body []byte) domain.ErrorResponse {
	out := domain.ErrorResponse{
		StatusCode: statusCode,
		Code:       NoErrorCode,
		Message:    NoErrorMessage,
	}

	var resp ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		if text := http.StatusText(statusCode); text != "" {
			out.Message = text
		}
		return out
	}

	if resp.ErrorCode != "" {
		out.Code = string(resp.ErrorCode)
	}
	if resp.ErrorInfo != "" {
		out.Message = resp.ErrorInfo
		reason := resp.ErrorInfo
		out.Reason = &reason
	}
	return out
}

func (c *Connector) request(
	flow connector.Flow,
	method string,
	auth domain.ConnectorAuthType,
	payload any,
	elem ...string,
) (connector.Request, error) {
	authType, err := NewAuthType(auth)
	if err != nil {
		return connector.Request{}, err
	}

	headers := []connector.Header{
		{Name: "Accept", Value: jsonMIME},
		{Name: apiKeyHeader, Value: authType.APIKey.Peek(), Masked: true},
	}

	var body []byte
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			return connector.Request{}, domain.NewRequestEncodingError(err)
		}
		headers = append(headers, connector.Header{Name: "Content-Type", Value: jsonMIME})
	}

	return connector.Request{
		Flow:    flow,
		Method:  method,
		URL:     c.baseURL.JoinPath(elem...).String(),
		Headers: headers,
		Body:    body,
		Payload: payload,
	}, nil
}
