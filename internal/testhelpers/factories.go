// Package testhelpers builds canonical records for package tests.
package testhelpers

import (
	"github.com/DanielPopoola/payment-connector/internal/domain"
	"github.com/google/uuid"
)

// HeaderKeyAuth returns the credential variant MultiSafepay accepts.
func HeaderKeyAuth() domain.ConnectorAuthType {
	return domain.HeaderKey{APIKey: TestAPIKey}
}

// DefaultAuthorizeRouterData returns a valid card authorization for 10.00 EUR.
func DefaultAuthorizeRouterData() domain.PaymentsAuthorizeRouterData {
	return domain.PaymentsAuthorizeRouterData{
		MerchantID:        "merchant-" + uuid.NewString(),
		PaymentID:         "pay_" + uuid.NewString(),
		AttemptID:         "att_" + uuid.NewString(),
		Status:            domain.AttemptStarted,
		ConnectorAuthType: HeaderKeyAuth(),
		Request: domain.PaymentsAuthorizeData{
			Amount:            1000,
			Currency:          "EUR",
			PaymentMethodData: VisaCard,
		},
	}
}

// DefaultCaptureRouterData returns a capture of orderID; a nil amount captures in full.
func DefaultCaptureRouterData(orderID string, amount *int64) domain.PaymentsCaptureRouterData {
	return domain.PaymentsCaptureRouterData{
		PaymentID:         orderID,
		AttemptID:         "att_" + uuid.NewString(),
		Status:            domain.AttemptAuthorized,
		ConnectorAuthType: HeaderKeyAuth(),
		Request: domain.PaymentsCaptureData{
			AmountToCapture:        amount,
			Currency:               "EUR",
			ConnectorTransactionID: orderID,
		},
	}
}

func DefaultCancelRouterData(orderID string) domain.PaymentsCancelRouterData {
	return domain.PaymentsCancelRouterData{
		PaymentID:         orderID,
		AttemptID:         "att_" + uuid.NewString(),
		Status:            domain.AttemptAuthorized,
		ConnectorAuthType: HeaderKeyAuth(),
		Request: domain.PaymentsCancelData{
			ConnectorTransactionID: orderID,
		},
	}
}

func DefaultSyncRouterData(orderID string) domain.PaymentsSyncRouterData {
	return domain.PaymentsSyncRouterData{
		PaymentID:         orderID,
		AttemptID:         "att_" + uuid.NewString(),
		Status:            domain.AttemptPending,
		ConnectorAuthType: HeaderKeyAuth(),
		Request: domain.PaymentsSyncData{
			ConnectorTransactionID: orderID,
		},
	}
}

// DefaultRefundRouterData returns a 5.00 EUR refund of a 10.00 EUR order.
// connectorRefundID is nil until the gateway has acknowledged the refund.
func DefaultRefundRouterData(orderID string, connectorRefundID *string) domain.RefundsRouterData {
	return domain.RefundsRouterData{
		PaymentID:         orderID,
		AttemptID:         "att_" + uuid.NewString(),
		Status:            domain.AttemptCharged,
		ConnectorAuthType: HeaderKeyAuth(),
		Request: domain.RefundsData{
			RefundID:               "ref_" + uuid.NewString(),
			ConnectorTransactionID: orderID,
			Currency:               "EUR",
			PaymentAmount:          1000,
			RefundAmount:           500,
			ConnectorRefundID:      connectorRefundID,
		},
	}
}

func Ptr[T any](v T) *T {
	return &v
}
