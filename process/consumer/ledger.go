package consumer

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"checkflow/models"
	"checkflow/pkg/checkparse"
	"checkflow/pkg/queue"
)

var centsFactor = decimal.NewFromInt(100)

// GormLedger stores payment outcomes in postgres. Rows are keyed by
// payment id: the API pre-creates a Pending row, so Record updates it when
// present and inserts otherwise.
type GormLedger struct {
	DB *gorm.DB
}

func (g *GormLedger) Record(status queue.PaymentStatus, check checkparse.Check) error {
	entry := models.LedgerEntry{
		PaymentID:     status.PaymentID,
		CustomerID:    status.CustomerID,
		AmountCents:   status.Amount.Mul(centsFactor).IntPart(),
		Currency:      "USD",
		Status:        status.Status,
		ErrorMessage:  status.ErrorMessage,
		PaymentMethod: status.PaymentMethod,
		CheckNumber:   check.Micr.CheckNumber.Value,
		Payee:         check.Payee.Name,
	}

	var existing models.LedgerEntry
	err := g.DB.Where("payment_id = ?", status.PaymentID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := g.DB.Create(&entry).Error; err != nil {
			return fmt.Errorf("create ledger entry: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("load ledger entry: %w", err)
	}
	updates := map[string]any{
		"amount_cents":   entry.AmountCents,
		"status":         entry.Status,
		"error_message":  entry.ErrorMessage,
		"payment_method": entry.PaymentMethod,
		"check_number":   entry.CheckNumber,
		"payee":          entry.Payee,
	}
	if err := g.DB.Model(&existing).Updates(updates).Error; err != nil {
		return fmt.Errorf("update ledger entry: %w", err)
	}
	return nil
}
