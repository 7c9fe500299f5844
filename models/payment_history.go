// models/payment_history.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentTxType string

const (
	PaymentTxCreate       PaymentTxType = "create"
	PaymentTxDeduction    PaymentTxType = "deduction"
	PaymentTxStatusChange PaymentTxType = "status_change"
)

// Append-only, same discipline as DebtHistory.
type PaymentHistory struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	PaymentID uint `gorm:"index;not null" json:"payment_id"`

	TransactionType PaymentTxType   `gorm:"size:20;not null" json:"transaction_type"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"amount"`

	Notes       string    `gorm:"size:255" json:"notes,omitempty"`
	PerformedBy uint      `gorm:"index" json:"performed_by"`
	CreatedAt   time.Time `json:"created_at"`
}
