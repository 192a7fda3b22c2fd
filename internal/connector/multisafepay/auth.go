package multisafepay

import "github.com/DanielPopoola/payment-connector/internal/domain"

// AuthType is the credential MultiSafepay accepts: one API key, sent as a header.
type AuthType struct {
	APIKey domain.Secret
}

// NewAuthType extracts the API key from a HeaderKey credential. Every other
// variant is an AuthTypeError.
func NewAuthType(auth domain.ConnectorAuthType) (AuthType, error) {
	switch a := auth.(type) {
	case domain.HeaderKey:
		return AuthType{APIKey: a.APIKey}, nil
	default:
		return AuthType{}, domain.NewAuthTypeError()
	}
}
