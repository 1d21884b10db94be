package wayforpay

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

const (
	CurrencyUAH = "UAH"

	// StatusApproved is the only transaction status that confirms payment.
	StatusApproved = "Approved"

	// DefaultOrderTimeout caps how long the gateway accepts payment for an
	// undiscounted order.
	DefaultOrderTimeout = 24 * 60 * 60 // seconds
)

// Product is one cart line in the gateway request. Name, Count and Price
// travel as parallel arrays and enter the signature in that order.
type Product struct {
	Name  string
	Count int
	Price decimal.Decimal
}

// PaymentOrder is everything needed to build a signed purchase request.
type PaymentOrder struct {
	OrderReference string
	OrderDate      int64 // unix seconds
	Amount         decimal.Decimal
	Currency       string
	Products       []Product

	ClientName  string
	ClientPhone string
	ClientEmail string

	// OrderTimeout (seconds) bounds how long the gateway accepts payment.
	// For discounted orders it is set to the reservation's remaining
	// lifetime so payment cannot outlive the discount guarantee.
	OrderTimeout int
}

// Callback is the asynchronous transaction-result notification. Numeric
// fields are kept as json.Number so the signature is recomputed over the
// exact text the gateway sent, not a re-formatted float.
type Callback struct {
	MerchantAccount   string      `json:"merchantAccount"`
	OrderReference    string      `json:"orderReference"`
	Amount            json.Number `json:"amount"`
	Currency          string      `json:"currency"`
	AuthCode          string      `json:"authCode"`
	CardPan           string      `json:"cardPan"`
	TransactionStatus string      `json:"transactionStatus"`
	ReasonCode        json.Number `json:"reasonCode"`
	MerchantSignature string      `json:"merchantSignature"`
}

// CallbackResponse is the signed acknowledgement the gateway requires to
// close out a transaction.
type CallbackResponse struct {
	OrderReference string `json:"orderReference"`
	Status         string `json:"status"` // accept or decline
	Time           int64  `json:"time"`
	Signature      string `json:"signature"`
}
