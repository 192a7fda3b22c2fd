package testhelpers

import "github.com/DanielPopoola/payment-connector/internal/domain"

// Test cards from the MultiSafepay sandbox documentation
var (
	VisaCard = domain.Card{
		Number:     "4111111111111111",
		ExpMonth:   "12",
		ExpYear:    "2030",
		HolderName: "Jane Doe",
		CVC:        "123",
	}

	MastercardCard = domain.Card{
		Number:     "5500000000000004",
		ExpMonth:   "09",
		ExpYear:    "2030",
		HolderName: "John Roe",
		CVC:        "789",
	}

	ExpiredCard = domain.Card{
		Number:     "5105105105105100",
		ExpMonth:   "03",
		ExpYear:    "2020",
		HolderName: "Old Card",
		CVC:        "321",
	}
)

// TestAPIKey is a sandbox-shaped key, never a real credential.
const TestAPIKey = "sk_test_123"
