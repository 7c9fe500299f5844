// models/assignment.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AssignmentStatus string

const (
	AssignmentActive    AssignmentStatus = "active"
	AssignmentCompleted AssignmentStatus = "completed"
)

type Assignment struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	WorkerID uint    `gorm:"not null;uniqueIndex:idx_assignment_worker_pitak" json:"worker_id"`
	Worker   *Worker `json:"worker,omitempty"`
	PitakID  uint    `gorm:"not null;uniqueIndex:idx_assignment_worker_pitak" json:"pitak_id"`

	LuwangCount decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0" json:"luwang_count"`
	Status      AssignmentStatus `gorm:"size:16;not null;default:active;index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
