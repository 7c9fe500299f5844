// config/settings.go
package config

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/CyberArcenal/Kabisilya-Management-sub007/models"
)

// Business settings keys. Values live in the settings table so they can be
// changed without a redeploy.
const (
	SettingRatePerLuwang       = "rate_per_luwang"
	SettingDefaultInterestRate = "default_interest_rate"
	SettingDebtLimit           = "debt_limit"
)

var ErrNoDefaultSession = errors.New("no default session configured")

// DefaultSession returns the session every session-scoped write attaches to.
// Callers must treat an error here as a configuration failure, not a 404.
func DefaultSession(db *gorm.DB) (*models.Session, error) {
	var s models.Session
	err := db.Where("is_default = ?", true).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoDefaultSession
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func SettingDecimal(db *gorm.DB, key string) (decimal.Decimal, error) {
	var s models.Setting
	err := db.Where("key = ?", key).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, fmt.Errorf("setting %q is not configured", key)
	}
	if err != nil {
		return decimal.Zero, err
	}
	v, err := decimal.NewFromString(s.Value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("setting %q has a non-numeric value %q", key, s.Value)
	}
	return v, nil
}

func SetSetting(db *gorm.DB, key, value string) error {
	var s models.Setting
	err := db.Where("key = ?", key).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(&models.Setting{Key: key, Value: value}).Error
	}
	if err != nil {
		return err
	}
	return db.Model(&s).Update("value", value).Error
}
