// models/setting.go
package models

import "time"

// Setting is a key/value row for runtime business configuration
// (rate_per_luwang, default_interest_rate, debt_limit).
type Setting struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Key   string `gorm:"size:64;not null;uniqueIndex" json:"key"`
	Value string `gorm:"size:255;not null" json:"value"`

	UpdatedAt time.Time `json:"updated_at"`
}
