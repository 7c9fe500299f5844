// models/kabisilya.go
package models

import "time"

// Kabisilya is a worker group under a foreman. Peripheral: bukids and
// workers may reference one, nothing in the debt or cascade flows requires it.
type Kabisilya struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:120;not null;uniqueIndex" json:"name"`
	Foreman  string `gorm:"size:180" json:"foreman,omitempty"`
	ContactNo string `gorm:"size:32" json:"contact_no,omitempty"`

	Workers []Worker `json:"workers,omitempty"`
	Bukids  []Bukid  `json:"bukids,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
