package multisafepay

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/DanielPopoola/payment-connector/internal/domain"
)

// Gateway is the payment method tag MultiSafepay routes an order through.
type Gateway string

const (
	GatewayVisa       Gateway = "VISA"
	GatewayAmex       Gateway = "AMEX"
	GatewayCreditCard Gateway = "CREDITCARD"
	GatewayMaestro    Gateway = "MAESTRO"
	GatewayMastercard Gateway = "MASTERCARD"
)

var gateways = []Gateway{GatewayVisa, GatewayAmex, GatewayCreditCard, GatewayMaestro, GatewayMastercard}

func (g *Gateway) UnmarshalJSON(data []byte) error {
	v, err := decodeEnum(data, "gateway", gateways)
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// PaymentStatus is the order status reported on payment responses.
type PaymentStatus string

const (
	PaymentStatusInitialized PaymentStatus = "initialized"
	PaymentStatusUncleared   PaymentStatus = "uncleared"
	PaymentStatusCompleted   PaymentStatus = "completed"
	PaymentStatusVoid        PaymentStatus = "void"
	PaymentStatusExpired     PaymentStatus = "expired"
	PaymentStatusDeclined    PaymentStatus = "declined"
)

// DefaultPaymentStatus is the gateway's own fallback status. It is mapped
// like any other value when the gateway sends it; it is never substituted
// for an unknown or missing one.
const DefaultPaymentStatus = PaymentStatusDeclined

var paymentStatuses = []PaymentStatus{
	PaymentStatusInitialized,
	PaymentStatusUncleared,
	PaymentStatusCompleted,
	PaymentStatusVoid,
	PaymentStatusExpired,
	PaymentStatusDeclined,
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	v, err := decodeEnum(data, "payment status", paymentStatuses)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// AttemptStatus maps the gateway status onto the canonical attempt status.
func (s PaymentStatus) AttemptStatus() (domain.AttemptStatus, error) {
	switch s {
	case PaymentStatusInitialized:
		return domain.AttemptStarted, nil
	case PaymentStatusUncleared:
		return domain.AttemptAuthorizationFailed, nil
	case PaymentStatusCompleted:
		return domain.AttemptCharged, nil
	case PaymentStatusVoid:
		return domain.AttemptVoided, nil
	case PaymentStatusExpired:
		return domain.AttemptFailure, nil
	case PaymentStatusDeclined:
		return domain.AttemptAuthenticationFailed, nil
	default:
		return "", domain.NewParsingError("payment status", fmt.Errorf("unmapped value %q", string(s)))
	}
}

// RefundSyncStatus is the refund status reported when querying a refund.
type RefundSyncStatus string

const (
	RefundSyncStatusReserved  RefundSyncStatus = "reserved"
	RefundSyncStatusCompleted RefundSyncStatus = "completed"
	RefundSyncStatusDeclined  RefundSyncStatus = "declined"
)

// DefaultRefundSyncStatus is the gateway's own fallback refund status.
const DefaultRefundSyncStatus = RefundSyncStatusCompleted

var refundSyncStatuses = []RefundSyncStatus{
	RefundSyncStatusReserved,
	RefundSyncStatusCompleted,
	RefundSyncStatusDeclined,
}

func (s *RefundSyncStatus) UnmarshalJSON(data []byte) error {
	v, err := decodeEnum(data, "refund status", refundSyncStatuses)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s RefundSyncStatus) RefundStatus() (domain.RefundStatus, error) {
	switch s {
	case RefundSyncStatusReserved:
		return domain.RefundPending, nil
	case RefundSyncStatusCompleted:
		return domain.RefundSuccess, nil
	case RefundSyncStatusDeclined:
		return domain.RefundFailure, nil
	default:
		return "", domain.NewParsingError("refund status", fmt.Errorf("unmapped value %q", string(s)))
	}
}

// cancelAttemptStatus maps the flat success flag of a cancel response.
func cancelAttemptStatus(success bool) domain.AttemptStatus {
	if success {
		return domain.AttemptVoided
	}
	return domain.AttemptVoidFailed
}

// refundExecuteStatus maps the success flag of a refund response. An accepted
// refund settles asynchronously, so success only means pending.
func refundExecuteStatus(success bool) domain.RefundStatus {
	if success {
		return domain.RefundPending
	}
	return domain.RefundFailure
}

// decodeEnum rejects anything outside allowed; the gateway vocabularies are
// closed and an unknown value must not be guessed at.
func decodeEnum[T ~string](data []byte, kind string, allowed []T) (T, error) {
	var zero T
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return zero, fmt.Errorf("%s must be a string: %w", kind, err)
	}
	v := T(raw)
	if !slices.Contains(allowed, v) {
		return zero, fmt.Errorf("unknown %s %q", kind, raw)
	}
	return v, nil
}
