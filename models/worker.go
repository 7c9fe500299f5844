// models/worker.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type WorkerStatus string

const (
	WorkerActive   WorkerStatus = "active"
	WorkerInactive WorkerStatus = "inactive"
)

type Worker struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:180;not null;index" json:"name"`

	KabisilyaID *uint  `gorm:"index" json:"kabisilya_id,omitempty"`
	ContactNo   string `gorm:"size:32" json:"contact_no,omitempty"`
	Address     string `gorm:"size:255" json:"address,omitempty"`

	Status WorkerStatus `gorm:"size:16;not null;default:active;index" json:"status"`

	// Running aggregates. Maintained by applyWorkerDelta inside the same
	// transaction as the debt mutation; recoverable via recompute.
	TotalDebt      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_debt"`
	TotalPaid      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_paid"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"current_balance"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
