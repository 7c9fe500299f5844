// controllers/activity.go
package controllers

import (
	"log"

	"github.com/CyberArcenal/Kabisilya-Management-sub007/config"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/models"
)

// logActivity records an audit entry after a successful mutation. Fire and
// forget: a failed write must never fail the operation that triggered it.
func logActivity(userID uint, action, description string) {
	entry := models.ActivityLog{
		UserID:      userID,
		Action:      action,
		Description: description,
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		log.Printf("warning: activity log write failed: %v", err)
	}
}
