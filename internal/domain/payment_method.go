package domain

type PaymentMethodType string

const (
	PaymentMethodCard         PaymentMethodType = "card"
	PaymentMethodWallet       PaymentMethodType = "wallet"
	PaymentMethodBankTransfer PaymentMethodType = "bank_transfer"
	PaymentMethodPayLater     PaymentMethodType = "pay_later"
)

// PaymentMethod is the closed set of instruments a customer can pay with.
type PaymentMethod interface {
	Type() PaymentMethodType
	isPaymentMethod()
}

// Card fields are secrets. They print as [REDACTED] and must only be read
// through Peek when a wire request is built.
type Card struct {
	Number     Secret
	ExpMonth   Secret
	ExpYear    Secret
	HolderName Secret
	CVC        Secret
}

type Wallet struct {
	Provider string
	Token    Secret
}

type BankTransfer struct {
	BankName string
	IBAN     Secret
}

type PayLater struct {
	Provider string
}

func (Card) Type() PaymentMethodType         { return PaymentMethodCard }
func (Wallet) Type() PaymentMethodType       { return PaymentMethodWallet }
func (BankTransfer) Type() PaymentMethodType { return PaymentMethodBankTransfer }
func (PayLater) Type() PaymentMethodType     { return PaymentMethodPayLater }

func (Card) isPaymentMethod()         {}
func (Wallet) isPaymentMethod()       {}
func (BankTransfer) isPaymentMethod() {}
func (PayLater) isPaymentMethod()     {}
