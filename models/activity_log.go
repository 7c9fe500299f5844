// models/activity_log.go
package models

import "time"

// ActivityLog records who did what after a successful mutation. Best-effort:
// a failed insert is logged and swallowed, never bubbled to the caller.
type ActivityLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index" json:"user_id"`
	Action      string    `gorm:"size:64;not null;index" json:"action"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
