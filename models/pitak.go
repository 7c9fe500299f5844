// models/pitak.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PitakStatus string

const (
	PitakActive    PitakStatus = "active"
	PitakCompleted PitakStatus = "completed"
)

type Pitak struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	BukidID uint   `gorm:"index;not null" json:"bukid_id"`
	Name    string `gorm:"size:120;not null" json:"name"`

	Status      PitakStatus     `gorm:"size:16;not null;default:active;index" json:"status"`
	StartDate   *time.Time      `json:"start_date,omitempty"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	TotalLuwang decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total_luwang"`

	Assignments []Assignment `json:"assignments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
