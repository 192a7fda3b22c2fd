package multisafepay

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/DanielPopoola/payment-connector/internal/domain"
)

const (
	orderTypeDirect      = "direct"
	orderStatusCompleted = "completed"
	orderStatusCancelled = "cancelled"
)

// ID is a gateway identifier. MultiSafepay sends some identifiers as JSON
// numbers and others as strings; both decode to the same text.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("identifier must be a string or a number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// PaymentsRequest creates a direct card order.
type PaymentsRequest struct {
	Type        string      `json:"type"`
	Gateway     Gateway     `json:"gateway"`
	OrderID     string      `json:"order_id"`
	Currency    string      `json:"currency"`
	Amount      string      `json:"amount"`
	Description *string     `json:"description,omitempty"`
	GatewayInfo GatewayInfo `json:"gateway_info"`
}

type GatewayInfo struct {
	CardNumber     string `json:"card_number"`
	CardExpiryDate string `json:"card_expiry_date"`
	CardHolderName string `json:"card_holder_name"`
	CardCVC        string `json:"card_cvc"`
}

func (g GatewayInfo) String() string {
	return fmt.Sprintf("{card_number:%s card_expiry_date:[REDACTED] card_holder_name:[REDACTED] card_cvc:[REDACTED]}", maskCardNumber(g.CardNumber))
}

func (g GatewayInfo) GoString() string {
	return g.String()
}

func (g GatewayInfo) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("card_number", maskCardNumber(g.CardNumber)),
		slog.String("card_expiry_date", "[REDACTED]"),
		slog.String("card_holder_name", "[REDACTED]"),
		slog.String("card_cvc", "[REDACTED]"),
	)
}

func (r PaymentsRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", r.Type),
		slog.String("gateway", string(r.Gateway)),
		slog.String("order_id", r.OrderID),
		slog.String("currency", r.Currency),
		slog.String("amount", r.Amount),
		slog.Any("gateway_info", r.GatewayInfo),
	)
}

func maskCardNumber(number string) string {
	if len(number) <= 4 {
		return "[REDACTED]"
	}
	return "************" + number[len(number)-4:]
}

// CaptureRequest completes an authorized order. A nil Amount captures in full.
type CaptureRequest struct {
	Amount *int64 `json:"amount,omitempty"`
	Status string `json:"status"`
}

type CancelRequest struct {
	Status string `json:"status"`
}

type RefundRequest struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

// NewPaymentsRequest builds the order for an authorization. Only cards are
// accepted; every other payment method is rejected without a partial request.
func NewPaymentsRequest(item domain.PaymentsAuthorizeRouterData) (PaymentsRequest, error) {
	switch pm := item.Request.PaymentMethodData.(type) {
	case domain.Card:
		if item.PaymentID == "" {
			return PaymentsRequest{}, domain.NewMissingRequiredFieldError("payment_id")
		}
		return PaymentsRequest{
			Type:        orderTypeDirect,
			Gateway:     GatewayCreditCard,
			OrderID:     item.PaymentID,
			Currency:    item.Request.Currency.String(),
			Amount:      strconv.FormatInt(item.Request.Amount, 10),
			Description: cloneString(item.Description),
			GatewayInfo: GatewayInfo{
				CardNumber:     pm.Number.Peek(),
				CardExpiryDate: fmt.Sprintf("%s/%s", pm.ExpMonth.Peek(), pm.ExpYear.Peek()),
				CardHolderName: pm.HolderName.Peek(),
				CardCVC:        pm.CVC.Peek(),
			},
		}, nil
	case domain.Wallet, domain.BankTransfer, domain.PayLater:
		return PaymentsRequest{}, domain.NewUnsupportedPaymentMethodError(string(pm.Type()))
	case nil:
		return PaymentsRequest{}, domain.NewMissingRequiredFieldError("payment_method_data")
	default:
		return PaymentsRequest{}, domain.NewUnsupportedPaymentMethodError(string(pm.Type()))
	}
}

func NewCaptureRequest(item domain.PaymentsCaptureRouterData) CaptureRequest {
	return CaptureRequest{
		Amount: cloneInt64(item.Request.AmountToCapture),
		Status: orderStatusCompleted,
	}
}

func NewCancelRequest(_ domain.PaymentsCancelRouterData) CancelRequest {
	return CancelRequest{Status: orderStatusCancelled}
}

func NewRefundRequest(item domain.RefundsRouterData) RefundRequest {
	return RefundRequest{
		Currency: item.Request.Currency.String(),
		Amount:   item.Request.RefundAmount,
	}
}

// PaymentsResponse answers authorize, capture and payment sync calls.
type PaymentsResponse struct {
	Success bool          `json:"success"`
	Data    *PaymentsData `json:"data"`
}

type PaymentsData struct {
	TransactionID ID            `json:"transaction_id"`
	OrderID       ID            `json:"order_id"`
	Status        PaymentStatus `json:"status"`
}

// CancelResponse is flat: the gateway reports only whether the order was cancelled.
type CancelResponse struct {
	Success bool `json:"success"`
}

type RefundResponse struct {
	Success bool        `json:"success"`
	Data    *RefundData `json:"data"`
}

type RefundData struct {
	TransactionID ID `json:"transaction_id"`
	RefundID      ID `json:"refund_id"`
}

type RefundSyncResponse struct {
	Success bool            `json:"success"`
	Data    *RefundSyncData `json:"data"`
}

type RefundSyncData struct {
	TransactionID ID               `json:"transaction_id"`
	RefundID      ID               `json:"refund_id"`
	Status        RefundSyncStatus `json:"status"`
}

// ErrorResponse is the envelope MultiSafepay returns for rejected calls.
type ErrorResponse struct {
	Success   bool            `json:"success"`
	ErrorCode ID              `json:"error_code"`
	ErrorInfo string          `json:"error_info"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// ApplyPaymentsResponse returns a copy of item carrying the mapped attempt
// status and the gateway order id as resource id.
func ApplyPaymentsResponse[Req any](
	resp PaymentsResponse,
	item domain.RouterData[Req, domain.PaymentsResponseData],
) (domain.RouterData[Req, domain.PaymentsResponseData], error) {
	var zero domain.RouterData[Req, domain.PaymentsResponseData]

	if resp.Data == nil {
		return zero, domain.NewParsingError("payments response", errors.New("missing data"))
	}
	if resp.Data.Status == "" {
		return zero, domain.NewParsingError("payments response", errors.New("missing status"))
	}
	if resp.Data.OrderID == "" {
		return zero, domain.NewParsingError("payments response", errors.New("missing order_id"))
	}

	status, err := resp.Data.Status.AttemptStatus()
	if err != nil {
		return zero, err
	}

	out := item
	out.Status = status
	out.Response = transactionResponse(string(resp.Data.OrderID))
	out.ResponseErr = nil
	return out, nil
}

// ApplyCancelResponse maps the success flag; the resource stays the order
// being cancelled since the gateway echoes no identifier.
func ApplyCancelResponse(resp CancelResponse, item domain.PaymentsCancelRouterData) (domain.PaymentsCancelRouterData, error) {
	if item.Request.ConnectorTransactionID == "" {
		return domain.PaymentsCancelRouterData{}, domain.NewMissingRequiredFieldError("connector_transaction_id")
	}

	out := item
	out.Status = cancelAttemptStatus(resp.Success)
	out.Response = transactionResponse(item.Request.ConnectorTransactionID)
	out.ResponseErr = nil
	return out, nil
}

func ApplyRefundResponse(resp RefundResponse, item domain.RefundsRouterData) (domain.RefundsRouterData, error) {
	var refundID string
	if resp.Data != nil {
		refundID = string(resp.Data.RefundID)
	}
	if resp.Success && refundID == "" {
		return domain.RefundsRouterData{}, domain.NewParsingError("refund response", errors.New("missing refund_id"))
	}

	out := item
	out.Response = domain.RefundsResponseData{
		ConnectorRefundID: refundID,
		RefundStatus:      refundExecuteStatus(resp.Success),
	}
	out.ResponseErr = nil
	return out, nil
}

func ApplyRefundSyncResponse(resp RefundSyncResponse, item domain.RefundsRouterData) (domain.RefundsRouterData, error) {
	if resp.Data == nil {
		return domain.RefundsRouterData{}, domain.NewParsingError("refund sync response", errors.New("missing data"))
	}
	if resp.Data.Status == "" {
		return domain.RefundsRouterData{}, domain.NewParsingError("refund sync response", errors.New("missing status"))
	}
	if resp.Data.RefundID == "" {
		return domain.RefundsRouterData{}, domain.NewParsingError("refund sync response", errors.New("missing refund_id"))
	}

	status, err := resp.Data.Status.RefundStatus()
	if err != nil {
		return domain.RefundsRouterData{}, err
	}

	out := item
	out.Response = domain.RefundsResponseData{
		ConnectorRefundID: string(resp.Data.RefundID),
		RefundStatus:      status,
	}
	out.ResponseErr = nil
	return out, nil
}

// transactionResponse never carries redirection, mandate or metadata:
// direct card orders produce none of them.
func transactionResponse(resourceID string) domain.PaymentsResponseData {
	return domain.PaymentsResponseData{
		ResourceID:        domain.ResponseID{ConnectorTransactionID: resourceID},
		RedirectionData:   nil,
		Redirect:          false,
		MandateReference:  nil,
		ConnectorMetadata: nil,
	}
}

func decodeResponse[T any](what string, body []byte) (T, error) {
	var resp T
	if err := json.Unmarshal(body, &resp); err != nil {
		var zero T
		return zero, domain.NewParsingError(what, err)
	}
	return resp, nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneInt64(n *int64) *int64 {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}
