package domain

// RouterData is the in-flight record the orchestrator hands to a connector and
// expects back with Status and Response populated. Connectors copy it; they
// never mutate the value they were given.
type RouterData[Req any, Resp any] struct {
	MerchantID        string
	PaymentID         string
	AttemptID         string
	Status            AttemptStatus
	Description       *string
	ConnectorAuthType ConnectorAuthType

	Request  Req
	Response Resp

	// ResponseErr is set instead of Response when the gateway rejected the call.
	ResponseErr *ErrorResponse
}

type (
	PaymentsAuthorizeRouterData = RouterData[PaymentsAuthorizeData, PaymentsResponseData]
	PaymentsCaptureRouterData   = RouterData[PaymentsCaptureData, PaymentsResponseData]
	PaymentsCancelRouterData    = RouterData[PaymentsCancelData, PaymentsResponseData]
	PaymentsSyncRouterData      = RouterData[PaymentsSyncData, PaymentsResponseData]
	RefundsRouterData           = RouterData[RefundsData, RefundsResponseData]
)
