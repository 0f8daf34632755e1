package models

import "time"

// LedgerEntry records the lifecycle of one payment request. The API creates
// it as Pending and the check worker upserts the final outcome. Amounts are
// stored in the smallest currency unit (cents).
type LedgerEntry struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	PaymentID     string    `gorm:"size:64;not null;uniqueIndex" json:"payment_id"`
	CustomerID    string    `gorm:"size:36;index;not null" json:"customer_id"`
	AmountCents   int64     `gorm:"not null" json:"amount_cents"`
	Currency      string    `gorm:"size:8;not null;default:USD" json:"currency"`
	Status        string    `gorm:"size:16;index;not null" json:"status"`
	ErrorMessage  string    `gorm:"size:255" json:"error_message,omitempty"`
	PaymentMethod string    `gorm:"size:16" json:"payment_method"`
	CheckNumber   string    `gorm:"size:16" json:"check_number,omitempty"`
	Payee         string    `gorm:"size:255" json:"payee,omitempty"`
}
