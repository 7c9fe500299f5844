package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/CyberArcenal/Kabisilya-Management-sub007/models"
)

func seedField(t *testing.T, db *gorm.DB, sessionID, workerID uint, luwang string) (*models.Bukid, *models.Pitak, *models.Assignment) {
	t.Helper()

	bukid := &models.Bukid{SessionID: sessionID, Name: "North Field", Status: models.BukidActive}
	require.NoError(t, db.Create(bukid).Error)

	start := time.Now().UTC().AddDate(0, 0, -14)
	pitak := &models.Pitak{BukidID: bukid.ID, Name: "Pitak 1", Status: models.PitakActive, StartDate: &start}
	require.NoError(t, db.Create(pitak).Error)

	a := &models.Assignment{WorkerID: workerID, PitakID: pitak.ID, LuwangCount: dec(luwang), Status: models.AssignmentActive}
	require.NoError(t, db.Create(a).Error)

	return bukid, pitak, a
}

func TestCompleteBukidGeneratesPayments(t *testing.T) {
	db := newTestDB(t)
	session, worker := seedBase(t, db)
	bukid, pitak, assignment := seedField(t, db, session.ID, worker.ID, "10.00")

	var res *cascadeResult
	err := db.Transaction(func(tx *gorm.DB) error {
		r, err := completeBukid(tx, bukid.ID, "harvest done", 1)
		res = r
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.UpdatedPitakCount)
	assert.Equal(t, 1, res.UpdatedAssignmentCount)
	assert.Equal(t, 1, res.GeneratedPaymentsCount)
	assert.Equal(t, 0, res.SkippedPaymentsCount)

	var p models.Payment
	require.NoError(t, db.Where("worker_id = ? AND pitak_id = ?", worker.ID, pitak.ID).First(&p).Error)
	// 10 luwang * 50.00 rate
	assert.Equal(t, "500.00", p.GrossPay.StringFixed(2))
	assert.Equal(t, "500.00", p.NetPay.StringFixed(2))
	assert.Equal(t, models.PaymentPending, p.Status)
	assert.Equal(t, session.ID, p.SessionID)
	assert.NotEmpty(t, p.ReferenceNumber)

	var h models.PaymentHistory
	require.NoError(t, db.Where("payment_id = ?", p.ID).First(&h).Error)
	assert.Equal(t, models.PaymentTxCreate, h.TransactionType)

	var gotPitak models.Pitak
	require.NoError(t, db.First(&gotPitak, pitak.ID).Error)
	assert.Equal(t, models.PitakCompleted, gotPitak.Status)
	require.NotNil(t, gotPitak.EndDate)

	var gotAssignment models.Assignment
	require.NoError(t, db.First(&gotAssignment, assignment.ID).Error)
	assert.Equal(t, models.AssignmentCompleted, gotAssignment.Status)

	var gotBukid models.Bukid
	require.NoError(t, db.First(&gotBukid, bukid.ID).Error)
	assert.Equal(t, models.BukidCompleted, gotBukid.Status)

	// payment generation never touches worker aggregates
	w := reloadWorker(t, db, worker.ID)
	assert.Equal(t, "0.00", w.CurrentBalance.StringFixed(2))
}

func TestCompleteBukidIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	session, worker := seedBase(t, db)
	bukid, _, _ := seedField(t, db, session.ID, worker.ID, "10.00")

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := completeBukid(tx, bukid.ID, "", 1)
		return err
	})
	require.NoError(t, err)

	var res *cascadeResult
	err = db.Transaction(func(tx *gorm.DB) error {
		r, err := completeBukid(tx, bukid.ID, "", 1)
		res = r
		return err
	})
	require.NoError(t, err)

	assert.Zero(t, res.UpdatedPitakCount)
	assert.Zero(t, res.UpdatedAssignmentCount)
	assert.Zero(t, res.GeneratedPaymentsCount)
	assert.Zero(t, res.SkippedPaymentsCount)

	var payments int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&payments).Error)
	assert.EqualValues(t, 1, payments)
}

func TestCompleteBukidSkipsExistingPayment(t *testing.T) {
	db := newTestDB(t)
	session, worker := seedBase(t, db)
	bukid, pitak, _ := seedField(t, db, session.ID, worker.ID, "10.00")

	pid := pitak.ID
	existing := models.Payment{
		WorkerID:        worker.ID,
		PitakID:         &pid,
		SessionID:       session.ID,
		GrossPay:        dec("123.45"),
		NetPay:          dec("123.45"),
		Status:          models.PaymentPending,
		ReferenceNumber: "PAY-MANUAL-1",
	}
	require.NoError(t, db.Create(&existing).Error)

	var res *cascadeResult
	err := db.Transaction(func(tx *gorm.DB) error {
		r, err := completeBukid(tx, bukid.ID, "", 1)
		res = r
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, 0, res.GeneratedPaymentsCount)
	assert.Equal(t, 1, res.SkippedPaymentsCount)
	assert.Equal(t, 1, res.UpdatedPitakCount)

	// the existing payment is untouched
	var p models.Payment
	require.NoError(t, db.Where("worker_id = ? AND pitak_id = ?", worker.ID, pitak.ID).First(&p).Error)
	assert.Equal(t, "123.45", p.GrossPay.StringFixed(2))
}

func TestCreatePaymentIfAbsentReturnsExisting(t *testing.T) {
	db := newTestDB(t)
	session, worker := seedBase(t, db)
	_, pitak, _ := seedField(t, db, session.ID, worker.ID, "10.00")

	now := time.Now().UTC()
	var first, second *models.Payment
	var firstCreated, secondCreated bool
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		first, firstCreated, err = createPaymentIfAbsent(tx, worker.ID, pitak.ID, session.ID, dec("500.00"), nil, now, 1)
		if err != nil {
			return err
		}
		second, secondCreated, err = createPaymentIfAbsent(tx, worker.ID, pitak.ID, session.ID, dec("500.00"), nil, now, 1)
		return err
	})
	require.NoError(t, err)

	assert.True(t, firstCreated)
	assert.False(t, secondCreated)
	assert.Equal(t, first.ID, second.ID)

	var payments int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&payments).Error)
	assert.EqualValues(t, 1, payments)
}
