package domain

// ConnectorAuthType is the credential container a connector is configured
// with. The variant set is closed: HeaderKey, BodyKey, SignatureKey, NoKey.
type ConnectorAuthType interface {
	AuthTypeName() string
	isConnectorAuthType()
}

// HeaderKey carries a single API key sent in a request header.
type HeaderKey struct {
	APIKey Secret
}

// BodyKey carries an API key plus a secondary key sent in the request body.
type BodyKey struct {
	APIKey Secret
	Key1   Secret
}

// SignatureKey carries the material to sign requests.
type SignatureKey struct {
	APIKey    Secret
	Key1      Secret
	APISecret Secret
}

type NoKey struct{}

func (HeaderKey) AuthTypeName() string    { return "HeaderKey" }
func (BodyKey) AuthTypeName() string      { return "BodyKey" }
func (SignatureKey) AuthTypeName() string { return "SignatureKey" }
func (NoKey) AuthTypeName() string        { return "NoKey" }

func (HeaderKey) isConnectorAuthType()    {}
func (BodyKey) isConnectorAuthType()      {}
func (SignatureKey) isConnectorAuthType() {}
func (NoKey) isConnectorAuthType()        {}
