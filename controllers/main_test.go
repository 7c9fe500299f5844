package controllers

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/CyberArcenal/Kabisilya-Management-sub007/config"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/models"
)

// newTestDB opens a per-test in-memory database. The DSN is keyed by test
// name so parallel tests never share state; cache=shared keeps the database
// alive across the connection pool.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Setting{},
		&models.ActivityLog{},
		&models.Session{},
		&models.Kabisilya{},
		&models.Worker{},
		&models.Bukid{},
		&models.Pitak{},
		&models.Assignment{},
		&models.Debt{},
		&models.DebtHistory{},
		&models.Payment{},
		&models.PaymentHistory{},
	))

	config.DB = db
	return db
}

// seedBase creates the rows every scenario needs: a default session, the
// business settings, and one active worker.
func seedBase(t *testing.T, db *gorm.DB) (*models.Session, *models.Worker) {
	t.Helper()

	session := &models.Session{Name: "Test Season", IsDefault: true, Status: models.SessionActive}
	require.NoError(t, db.Create(session).Error)

	require.NoError(t, config.SetSetting(db, config.SettingRatePerLuwang, "50.00"))
	require.NoError(t, config.SetSetting(db, config.SettingDefaultInterestRate, "5.00"))
	require.NoError(t, config.SetSetting(db, config.SettingDebtLimit, "10000.00"))

	worker := &models.Worker{Name: "Juan Dela Cruz", Status: models.WorkerActive}
	require.NoError(t, db.Create(worker).Error)

	return session, worker
}

func mustCreateDebt(t *testing.T, db *gorm.DB, workerID uint, amount string) *models.Debt {
	t.Helper()

	var created *models.Debt
	err := db.Transaction(func(tx *gorm.DB) error {
		d, err := createDebt(tx, workerID, dec(amount), "test debt", nil, nil, "monthly")
		if err != nil {
			return err
		}
		created = d
		return nil
	})
	require.NoError(t, err)
	return created
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func reloadDebt(t *testing.T, db *gorm.DB, id uint) models.Debt {
	t.Helper()
	var d models.Debt
	require.NoError(t, db.First(&d, id).Error)
	return d
}

func reloadWorker(t *testing.T, db *gorm.DB, id uint) models.Worker {
	t.Helper()
	var w models.Worker
	require.NoError(t, db.First(&w, id).Error)
	return w
}
