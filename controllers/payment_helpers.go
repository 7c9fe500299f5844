// controllers/payment_helpers.go
package controllers

import (
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/CyberArcenal/Kabisilya-Management-sub007/models"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/utils"
)

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// sqlite wording, seen under the test driver
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// createPaymentIfAbsent creates the auto-generated payment for one
// (pitak, worker, session), or returns the existing one. A concurrent
// duplicate insert is absorbed: the create runs under a savepoint, a unique
// violation rolls back to it and the pre-existing row wins. Any other error
// aborts the caller's transaction.
func createPaymentIfAbsent(tx *gorm.DB, workerID, pitakID, sessionID uint, gross decimal.Decimal, periodStart *time.Time, periodEnd time.Time, performedBy uint) (*models.Payment, bool, error) {
	var existing models.Payment
	err := tx.Where("pitak_id = ? AND worker_id = ? AND session_id = ?", pitakID, workerID, sessionID).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	pid := pitakID
	p := models.Payment{
		WorkerID:        workerID,
		PitakID:         &pid,
		SessionID:       sessionID,
		GrossPay:        gross,
		NetPay:          gross,
		Status:          models.PaymentPending,
		ReferenceNumber: utils.GenPaymentRef(periodEnd),
		PeriodStart:     periodStart,
		PeriodEnd:       &periodEnd,
	}

	if err := tx.SavePoint("sp_payment_create").Error; err != nil {
		return nil, false, err
	}
	if err := tx.Create(&p).Error; err != nil {
		if !isUniqueViolation(err) {
			return nil, false, err
		}
		if err := tx.RollbackTo("sp_payment_create").Error; err != nil {
			return nil, false, err
		}
		err = tx.Where("pitak_id = ? AND worker_id = ? AND session_id = ?", pitakID, workerID, sessionID).
			First(&existing).Error
		if err != nil {
			return nil, false, err
		}
		return &existing, false, nil
	}

	h := models.PaymentHistory{
		PaymentID:       p.ID,
		TransactionType: models.PaymentTxCreate,
		Amount:          gross,
		Notes:           "auto-generated on bukid completion",
		PerformedBy:     performedBy,
	}
	if err := tx.Create(&h).Error; err != nil {
		return nil, false, err
	}
	return &p, true, nil
}
