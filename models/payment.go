// models/payment.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentCancelled PaymentStatus = "cancelled"
)

func ValidPaymentStatus(s string) bool {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentCompleted, PaymentCancelled:
		return true
	}
	return false
}

type Payment struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	WorkerID uint    `gorm:"not null;uniqueIndex:idx_payment_pitak_worker_session" json:"worker_id"`
	Worker   *Worker `json:"worker,omitempty"`

	// Nullable: manual payments may not belong to a pitak. Auto-generated
	// payments always carry one, so the composite index prevents the
	// cascade from paying the same (pitak, worker, session) twice.
	PitakID   *uint `gorm:"uniqueIndex:idx_payment_pitak_worker_session" json:"pitak_id,omitempty"`
	SessionID uint  `gorm:"not null;uniqueIndex:idx_payment_pitak_worker_session" json:"session_id"`

	GrossPay           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"gross_pay"`
	ManualDeduction    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"manual_deduction"`
	TotalDebtDeduction decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_debt_deduction"`
	OtherDeductions    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"other_deductions"`
	NetPay             decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"net_pay"`

	Status          PaymentStatus `gorm:"size:16;not null;default:pending;index" json:"status"`
	ReferenceNumber string        `gorm:"size:64;index" json:"reference_number"`

	PeriodStart *time.Time `json:"period_start,omitempty"`
	PeriodEnd   *time.Time `json:"period_end,omitempty"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	Notes       string     `gorm:"size:255" json:"notes,omitempty"`

	Histories []PaymentHistory `json:"histories,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
