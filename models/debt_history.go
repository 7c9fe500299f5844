// models/debt_history.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DebtTxType string

const (
	DebtTxPayment      DebtTxType = "payment"
	DebtTxInterest     DebtTxType = "interest"
	DebtTxAdjustment   DebtTxType = "adjustment"
	DebtTxCancellation DebtTxType = "cancellation"
	DebtTxRefund       DebtTxType = "refund"
)

// DebtHistory is the append-only audit trail: one row per mutating debt
// operation. Rows are never updated or deleted.
type DebtHistory struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	DebtID uint `gorm:"index;not null" json:"debt_id"`

	AmountPaid      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount_paid"`
	PreviousBalance decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"previous_balance"`
	NewBalance      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"new_balance"`

	TransactionType DebtTxType `gorm:"size:20;not null;index" json:"transaction_type"`
	PaymentMethod   string     `gorm:"size:32" json:"payment_method,omitempty"`

	// Unique when present; nulls do not collide.
	ReferenceNumber *string `gorm:"size:64;uniqueIndex" json:"reference_number,omitempty"`

	// Set on refund rows only: the payment row this refund reverses. The
	// unique index is what makes a double reversal impossible.
	ReversalOfID *uint `gorm:"uniqueIndex" json:"reversal_of_id,omitempty"`

	Notes           string    `gorm:"size:255" json:"notes,omitempty"`
	PerformedBy     uint      `gorm:"index" json:"performed_by"`
	TransactionDate time.Time `gorm:"not null" json:"transaction_date"`

	CreatedAt time.Time `json:"created_at"`
}
