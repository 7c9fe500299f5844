// models/debt.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DebtStatus string

const (
	DebtPending       DebtStatus = "pending"
	DebtActive        DebtStatus = "active"
	DebtPartiallyPaid DebtStatus = "partially_paid"
	DebtPaid          DebtStatus = "paid"
	DebtSettled       DebtStatus = "settled"
	DebtCancelled     DebtStatus = "cancelled"
	DebtOverdue       DebtStatus = "overdue"
)

// Locked reports whether the debt is in a terminal status. Locked debts
// reject interest, payments, adjustments, and field updates.
func (s DebtStatus) Locked() bool {
	return s == DebtPaid || s == DebtSettled || s == DebtCancelled
}

func ValidDebtStatus(s string) bool {
	switch DebtStatus(s) {
	case DebtPending, DebtActive, DebtPartiallyPaid, DebtPaid, DebtSettled, DebtCancelled, DebtOverdue:
		return true
	}
	return false
}

type Debt struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	WorkerID  uint    `gorm:"index;not null" json:"worker_id"`
	Worker    *Worker `gorm:"constraint:OnUpdate:CASCADE" json:"worker,omitempty"`
	SessionID uint    `gorm:"index;not null" json:"session_id"`

	// OriginalAmount is the principal at creation and never changes.
	// Amount carries the current principal after adjustments.
	OriginalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"original_amount"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`

	// Balance is the authoritative amount still owed. TotalInterest and
	// TotalPaid are audit aggregates, not inputs to Balance.
	Balance       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"balance"`
	TotalInterest decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_interest"`
	TotalPaid     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_paid"`

	Status       DebtStatus      `gorm:"size:20;not null;default:pending;index" json:"status"`
	InterestRate decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0" json:"interest_rate"`
	PaymentTerm  string          `gorm:"size:20" json:"payment_term,omitempty"` // daily / monthly / annually

	DueDate         *time.Time `json:"due_date,omitempty"`
	Reason          string     `gorm:"size:255" json:"reason,omitempty"`
	Notes           string     `gorm:"type:text" json:"notes,omitempty"`
	LastPaymentDate *time.Time `json:"last_payment_date,omitempty"`

	Histories []DebtHistory `gorm:"constraint:OnUpdate:CASCADE" json:"histories,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
