// models/session.go
package models

import "time"

type SessionStatus string

const (
	SessionActive SessionStatus = "active"
	SessionClosed SessionStatus = "closed"
)

// Session is the seasonal scope; debts, bukids, and payments hang off the
// session marked IsDefault. SetDefaultSession keeps exactly one default.
type Session struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:120;not null" json:"name"`

	StartDate *time.Time    `json:"start_date,omitempty"`
	EndDate   *time.Time    `json:"end_date,omitempty"`
	IsDefault bool          `gorm:"not null;default:false;index" json:"is_default"`
	Status    SessionStatus `gorm:"size:16;not null;default:active" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
