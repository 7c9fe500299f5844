// config/seed.go
package config

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/CyberArcenal/Kabisilya-Management-sub007/models"
)

// SeedDefaults fills in the rows the app cannot run without: business
// settings, an admin account, and a default session. Existing rows win.
func SeedDefaults(db *gorm.DB) {
	seedSetting(db, SettingRatePerLuwang, "50.00")
	seedSetting(db, SettingDefaultInterestRate, "5.00")
	seedSetting(db, SettingDebtLimit, "10000.00")

	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		admin := models.User{
			Username:     "admin",
			FullName:     "Administrator",
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
			IsActive:     true,
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Printf("warning: failed to seed admin user: %v", err)
		} else {
			log.Printf("seeded default admin user (change the password)")
		}
	}

	var sessionCount int64
	db.Model(&models.Session{}).Count(&sessionCount)
	if sessionCount == 0 {
		s := models.Session{Name: "Initial Season", IsDefault: true, Status: models.SessionActive}
		if err := db.Create(&s).Error; err != nil {
			log.Printf("warning: failed to seed default session: %v", err)
		}
	}
}

func seedSetting(db *gorm.DB, key, value string) {
	var count int64
	db.Model(&models.Setting{}).Where("key = ?", key).Count(&count)
	if count == 0 {
		if err := db.Create(&models.Setting{Key: key, Value: value}).Error; err != nil {
			log.Printf("warning: failed to seed setting %s: %v", key, err)
		}
	}
}
