// Package queue holds the message contracts and Kafka plumbing shared by
// the API producer and the background workers.
package queue

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment status values carried on the status topic and stored in the
// ledger.
const (
	StatusPending = "Pending"
	StatusSuccess = "Success"
	StatusFailed  = "Failed"
)

// Payment method values.
const (
	MethodCheck = "Check"
	MethodCard  = "Card"
)

// CheckPaymentRequest asks the check worker to process one photographed
// check. ImageData is base64-encoded on the wire by encoding/json.
type CheckPaymentRequest struct {
	PaymentID  string `json:"payment_id"`
	CustomerID string `json:"customer_id"`
	ImageData  []byte `json:"image_data"`
}

// CardPaymentRequest asks the card worker to process a card payment.
type CardPaymentRequest struct {
	PaymentID  string          `json:"payment_id"`
	CustomerID string          `json:"customer_id"`
	CardNumber string          `json:"card_number"`
	ExpiryDate string          `json:"expiry_date"`
	CVV        string          `json:"cvv"`
	Amount     decimal.Decimal `json:"amount"`
}

// PaymentStatus reports the outcome of a payment request. Amount is zero
// when processing failed before an amount could be determined.
type PaymentStatus struct {
	PaymentID     string          `json:"payment_id"`
	CustomerID    string          `json:"customer_id"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	ErrorMessage  string          `json:"error_message,omitempty"`
	PaymentMethod string          `json:"payment_method"`
	Timestamp     time.Time       `json:"timestamp"`
}
