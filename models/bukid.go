// models/bukid.go
package models

import "time"

type BukidStatus string

const (
	BukidActive    BukidStatus = "active"
	BukidCompleted BukidStatus = "completed"
)

type Bukid struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	SessionID uint   `gorm:"index;not null" json:"session_id"`
	Name      string `gorm:"size:120;not null" json:"name"`
	Location  string `gorm:"size:255" json:"location,omitempty"`

	// Optional foreman group the bukid is assigned to.
	KabisilyaID *uint `gorm:"index" json:"kabisilya_id,omitempty"`

	Status BukidStatus `gorm:"size:16;not null;default:active;index" json:"status"`
	Notes  string      `gorm:"size:255" json:"notes,omitempty"`

	Pitaks []Pitak `json:"pitaks,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
