package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/DanielPopoola/payment-connector/internal/connector"
	"github.com/DanielPopoola/payment-connector/internal/connector/multisafepay"
	"github.com/DanielPopoola/payment-connector/internal/domain"
)

// operation is the flat input document. Each flow reads only the fields it needs.
type operation struct {
	MerchantID  string          `json:"merchant_id"`
	PaymentID   string          `json:"payment_id"`
	Description *string         `json:"description"`
	Amount      int64           `json:"amount"`
	Currency    domain.Currency `json:"currency"`
	Email       *string         `json:"email"`
	Card        *cardInput      `json:"card"`

	ConnectorTransactionID string  `json:"connector_transaction_id"`
	AmountToCapture        *int64  `json:"amount_to_capture"`
	CancellationReason     *string `json:"cancellation_reason"`

	RefundID          string  `json:"refund_id"`
	RefundAmount      int64   `json:"refund_amount"`
	ConnectorRefundID *string `json:"connector_refund_id"`
	Reason            *string `json:"reason"`
}

type cardInput struct {
	Number     domain.Secret `json:"number"`
	ExpMonth   domain.Secret `json:"exp_month"`
	ExpYear    domain.Secret `json:"exp_year"`
	HolderName domain.Secret `json:"holder_name"`
	CVC        domain.Secret `json:"cvc"`
}

func readOperation(r io.Reader) (operation, error) {
	var op operation
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&op); err != nil {
		return operation{}, fmt.Errorf("error decoding operation: %w", err)
	}
	return op, nil
}

// result is what the command prints once a flow has run.
type result struct {
	Flow                   connector.Flow       `json:"flow"`
	Status                 domain.AttemptStatus `json:"status,omitempty"`
	ConnectorTransactionID string               `json:"connector_transaction_id,omitempty"`
	RefundStatus           domain.RefundStatus  `json:"refund_status,omitempty"`
	ConnectorRefundID      string               `json:"connector_refund_id,omitempty"`
	Error                  *errorOutput         `json:"error,omitempty"`
}

type errorOutput struct {
	StatusCode int     `json:"status_code"`
	Code       string  `json:"code"`
	Message    string  `json:"message"`
	Reason     *string `json:"reason,omitempty"`
}

// call is a built gateway request plus the parser for its answer.
type call struct {
	request connector.Request
	handle  func(body []byte) (result, error)
}

func prepare(conn *multisafepay.Connector, flow connector.Flow, op operation, auth domain.ConnectorAuthType) (call, error) {
	if err := conn.CheckFlow(flow); err != nil {
		return call{}, err
	}

	switch flow {
	case connector.FlowAuthorize:
		item, err := op.authorizeRouterData(auth)
		if err != nil {
			return call{}, err
		}
		req, err := conn.BuildAuthorizeRequest(item)
		return call{request: req, handle: func(body []byte) (result, error) {
			out, err := conn.HandleAuthorizeResponse(item, body)
			return paymentResult(flow, out.Status, out.Response), err
		}}, err

	case connector.FlowCapture:
		item := domain.PaymentsCaptureRouterData{
			MerchantID:        op.MerchantID,
			PaymentID:         op.PaymentID,
			AttemptID:         uuid.NewString(),
			Status:            domain.AttemptAuthorized,
			ConnectorAuthType: auth,
			Request: domain.PaymentsCaptureData{
				AmountToCapture:        op.AmountToCapture,
				Currency:               op.Currency,
				ConnectorTransactionID: op.ConnectorTransactionID,
			},
		}
		req, err := conn.BuildCaptureRequest(item)
		return call{request: req, handle: func(body []byte) (result, error) {
			out, err := conn.HandleCaptureResponse(item, body)
			return paymentResult(flow, out.Status, out.Response), err
		}}, err

	case connector.FlowVoid:
		item := domain.PaymentsCancelRouterData{
			MerchantID:        op.MerchantID,
			PaymentID:         op.PaymentID,
			AttemptID:         uuid.NewString(),
			Status:            domain.AttemptAuthorized,
			ConnectorAuthType: auth,
			Request: domain.PaymentsCancelData{
				ConnectorTransactionID: op.ConnectorTransactionID,
				CancellationReason:     op.CancellationReason,
			},
		}
		req, err := conn.BuildVoidRequest(item)
		return call{request: req, handle: func(body []byte) (result, error) {
			out, err := conn.HandleVoidResponse(item, body)
			return paymentResult(flow, out.Status, out.Response), err
		}}, err

	case connector.FlowPSync:
		item := domain.PaymentsSyncRouterData{
			MerchantID:        op.MerchantID,
			PaymentID:         op.PaymentID,
			AttemptID:         uuid.NewString(),
			Status:            domain.AttemptPending,
			ConnectorAuthType: auth,
			Request: domain.PaymentsSyncData{
				ConnectorTransactionID: op.ConnectorTransactionID,
			},
		}
		req, err := conn.BuildPSyncRequest(item)
		return call{request: req, handle: func(body []byte) (result, error) {
			out, err := conn.HandlePSyncResponse(item, body)
			return paymentResult(flow, out.Status, out.Response), err
		}}, err

	case connector.FlowRefund, connector.FlowRSync:
		item := op.refundRouterData(auth)
		if flow == connector.FlowRefund {
			req, err := conn.BuildRefundRequest(item)
			return call{request: req, handle: func(body []byte) (result, error) {
				out, err := conn.HandleRefundResponse(item, body)
				return refundResult(flow, out.Response), err
			}}, err
		}
		req, err := conn.BuildRSyncRequest(item)
		return call{request: req, handle: func(body []byte) (result, error) {
			out, err := conn.HandleRSyncResponse(item, body)
			return refundResult(flow, out.Response), err
		}}, err

	default:
		return call{}, domain.NewNotImplementedError("flow " + string(flow))
	}
}

func (op operation) authorizeRouterData(auth domain.ConnectorAuthType) (domain.PaymentsAuthorizeRouterData, error) {
	money, err := domain.NewMoney(op.Amount, op.Currency)
	if err != nil {
		return domain.PaymentsAuthorizeRouterData{}, err
	}

	paymentID := op.PaymentID
	if paymentID == "" {
		paymentID = "pay_" + uuid.NewString()
	}

	var pm domain.PaymentMethod
	if op.Card != nil {
		pm = domain.Card{
			Number:     op.Card.Number,
			ExpMonth:   op.Card.ExpMonth,
			ExpYear:    op.Card.ExpYear,
			HolderName: op.Card.HolderName,
			CVC:        op.Card.CVC,
		}
	}

	return domain.PaymentsAuthorizeRouterData{
		MerchantID:        op.MerchantID,
		PaymentID:         paymentID,
		AttemptID:         uuid.NewString(),
		Status:            domain.AttemptStarted,
		Description:       op.Description,
		ConnectorAuthType: auth,
		Request: domain.PaymentsAuthorizeData{
			Amount:            money.Amount,
			Currency:          money.Currency,
			PaymentMethodData: pm,
			Email:             op.Email,
		},
	}, nil
}

func (op operation) refundRouterData(auth domain.ConnectorAuthType) domain.RefundsRouterData {
	refundID := op.RefundID
	if refundID == "" {
		refundID = "ref_" + uuid.NewString()
	}
	return domain.RefundsRouterData{
		MerchantID:        op.MerchantID,
		PaymentID:         op.PaymentID,
		AttemptID:         uuid.NewString(),
		Status:            domain.AttemptCharged,
		ConnectorAuthType: auth,
		Request: domain.RefundsData{
			RefundID:               refundID,
			ConnectorTransactionID: op.ConnectorTransactionID,
			Currency:               op.Currency,
			PaymentAmount:          op.Amount,
			RefundAmount:           op.RefundAmount,
			ConnectorRefundID:      op.ConnectorRefundID,
			Reason:                 op.Reason,
		},
	}
}

func paymentResult(flow connector.Flow, status domain.AttemptStatus, resp domain.PaymentsResponseData) result {
	return result{
		Flow:                   flow,
		Status:                 status,
		ConnectorTransactionID: resp.ResourceID.ConnectorTransactionID,
	}
}

func refundResult(flow connector.Flow, resp domain.RefundsResponseData) result {
	return result{
		Flow:              flow,
		RefundStatus:      resp.RefundStatus,
		ConnectorRefundID: resp.ConnectorRefundID,
	}
}

func errorResult(flow connector.Flow, resp domain.ErrorResponse) result {
	return result{
		Flow: flow,
		Error: &errorOutput{
			StatusCode: resp.StatusCode,
			Code:       resp.Code,
			Message:    resp.Message,
			Reason:     resp.Reason,
		},
	}
}
