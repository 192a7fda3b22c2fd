// Package domain holds the payment engine's canonical, gateway-agnostic model
// that connector bindings translate to and from.
package domain

import "encoding/json"

// AttemptStatus represents the lifecycle state of a payment authorization attempt.
type AttemptStatus string

const (
	AttemptStarted              AttemptStatus = "started"
	AttemptAuthenticationFailed AttemptStatus = "authentication_failed"
	AttemptAuthorizationFailed  AttemptStatus = "authorization_failed"
	AttemptAuthorized           AttemptStatus = "authorized"
	AttemptCharged              AttemptStatus = "charged"
	AttemptVoided               AttemptStatus = "voided"
	AttemptVoidFailed           AttemptStatus = "void_failed"
	AttemptFailure              AttemptStatus = "failure"
	AttemptPending              AttemptStatus = "pending"
)

// IsTerminal reports whether no further gateway call can change the attempt.
func (s AttemptStatus) IsTerminal() bool {
	switch s {
	case AttemptCharged, AttemptVoided, AttemptFailure,
		AttemptAuthenticationFailed, AttemptAuthorizationFailed:
		return true
	default:
		return false
	}
}

// RefundStatus represents the lifecycle state of a refund.
type RefundStatus string

const (
	RefundPending      RefundStatus = "pending"
	RefundSuccess      RefundStatus = "success"
	RefundFailure      RefundStatus = "failure"
	RefundManualReview RefundStatus = "manual_review"
)

func (s RefundStatus) IsTerminal() bool {
	return s == RefundSuccess || s == RefundFailure
}

type PaymentsAuthorizeData struct {
	Amount            MinorUnit
	Currency          Currency
	PaymentMethodData PaymentMethod
	Email             *string
}

type PaymentsCaptureData struct {
	// AmountToCapture is nil when the full authorized amount is captured.
	AmountToCapture        *MinorUnit
	Currency               Currency
	ConnectorTransactionID string
}

type PaymentsCancelData struct {
	ConnectorTransactionID string
	CancellationReason     *string
}

type PaymentsSyncData struct {
	ConnectorTransactionID string
}

// RefundsData serves both refund execution and refund sync. ConnectorRefundID
// is set only once the gateway has acknowledged the refund.
type RefundsData struct {
	RefundID               string
	ConnectorTransactionID string
	Currency               Currency
	PaymentAmount          MinorUnit
	RefundAmount           MinorUnit
	ConnectorRefundID      *string
	Reason                 *string
}

// ResponseID identifies the resource the gateway created or reported on.
type ResponseID struct {
	ConnectorTransactionID string
}

// RedirectForm describes a customer redirect required to finish a payment.
type RedirectForm struct {
	Endpoint   string
	Method     string
	FormFields map[string]string
}

type PaymentsResponseData struct {
	ResourceID        ResponseID
	RedirectionData   *RedirectForm
	Redirect          bool
	MandateReference  *string
	ConnectorMetadata json.RawMessage
}

type RefundsResponseData struct {
	ConnectorRefundID string
	RefundStatus      RefundStatus
}

// ErrorResponse is the canonical form of a gateway error envelope.
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
	Reason     *string
}
