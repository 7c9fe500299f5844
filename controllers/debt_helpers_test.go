package controllers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/CyberArcenal/Kabisilya-Management-sub007/models"
)

func TestCreateDebt(t *testing.T) {
	db := newTestDB(t)
	session, worker := seedBase(t, db)

	d := mustCreateDebt(t, db, worker.ID, "1000.00")

	assert.Equal(t, worker.ID, d.WorkerID)
	assert.Equal(t, session.ID, d.SessionID)
	assert.Equal(t, models.DebtPending, d.Status)
	assert.Equal(t, "1000.00", d.OriginalAmount.StringFixed(2))
	assert.Equal(t, "1000.00", d.Amount.StringFixed(2))
	assert.Equal(t, "1000.00", d.Balance.StringFixed(2))
	// interest rate falls back to the configured default
	assert.Equal(t, "5.00", d.InterestRate.StringFixed(2))

	w := reloadWorker(t, db, worker.ID)
	assert.Equal(t, "1000.00", w.TotalDebt.StringFixed(2))
	assert.Equal(t, "0.00", w.TotalPaid.StringFixed(2))
	assert.Equal(t, "1000.00", w.CurrentBalance.StringFixed(2))

	var histories int64
	require.NoError(t, db.Model(&models.DebtHistory{}).Where("debt_id = ?", d.ID).Count(&histories).Error)
	assert.Zero(t, histories, "creation writes no history row")
}

func TestCreateDebtRejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	_, worker := seedBase(t, db)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := createDebt(tx, worker.ID, dec("0"), "zero", nil, nil, "monthly")
		return err
	})
	require.Error(t, err)

	err = db.Transaction(func(tx *gorm.DB) error {
		_, err := createDebt(tx, 9999, dec("100.00"), "ghost worker", nil, nil, "monthly")
		return err
	})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateDebtRequiresDefaultSession(t *testing.T) {
	db := newTestDB(t)
	session, worker := seedBase(t, db)
	require.NoError(t, db.Model(&models.Session{}).Where("id = ?", session.ID).Update("is_default", false).Error)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := createDebt(tx, worker.ID, dec("100.00"), "no session", nil, nil, "monthly")
		return err
	})
	require.Error(t, err)
}

func TestAddInterest(t *testing.T) {
	db := newTestDB(t)
	_, worker := seedBase(t, db)
	d := mustCreateDebt(t, db, worker.ID, "1000.00")

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := addDebtInterest(tx, d.ID, dec("50.00"), 1, "monthly interest")
		return err
	})
	require.NoError(t, err)

	got := reloadDebt(t, db, d.ID)
	assert.Equal(t, "1050.00", got.Balance.StringFixed(2))
	assert.Equal(t, "50.00", got.TotalInterest.StringFixed(2))
	assert.Equal(t, "1000.00", got.Amount.StringFixed(2), "interest never touches principal")

	w := reloadWorker(t, db, worker.ID)
	assert.Equal(t, "1050.00", w.TotalDebt.StringFixed(2))
	assert.Equal(t, "1050.00", w.CurrentBalance.StringFixed(2))

	var h models.DebtHistory
	require.NoError(t, db.Where("debt_id = ?", d.ID).First(&h).Error)
	assert.Equal(t, models.DebtTxInterest, h.TransactionType)
	assert.Equal(t, "1000.00", h.PreviousBalance.StringFixed(2))
	assert.Equal(t, "1050.00", h.NewBalance.StringFixed(2))
}

func TestAddInterestLockedDebtRejected(t *testing.T) {
	db := newTestDB(t)
	_, worker := seedBase(t, db)
	d := mustCreateDebt(t, db, worker.ID, "1000.00")
	require.NoError(t, db.Model(&models.Debt{}).Where("id = ?", d.ID).Update("status", models.DebtPaid).Error)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := addDebtInterest(tx, d.ID, dec("50.00"), 1, "")
		return err
	})
	require.ErrorIs(t, err, errStateConflict)

	got := reloadDebt(t, db, d.ID)
	assert.Equal(t, "1000.00", got.Balance.StringFixed(2), "rejected mutation leaves balance untouched")
	var histories int64
	require.NoError(t, db.Model(&models.DebtHistory{}).Where("debt_id = ?", d.ID).Count(&histories).Error)
	assert.Zero(t, histories)
}

func TestPaymentStatusTransitions(t *testing.T) {
	db := newTestDB(t)
	_, worker := seedBase(t, db)
	d := mustCreateDebt(t, db, worker.ID, "1000.00")

	ref1 := "PAY-TEST-1"
	err := db.Transaction(func(tx *gorm.DB) error {
		_, _, err := applyDebtPayment(tx, d.ID, dec("400.00"), "cash", &ref1, 1, "")
		return err
	})
	require.NoError(t, err)

	got := reloadDebt(t, db, d.ID)
	assert.Equal(t, models.DebtPartiallyPaid, got.Status)
	assert.Equal(t, "600.00", got.Balance.StringFixed(2))
	assert.Equal(t, "400.00", got.TotalPaid.StringFixed(2))
	require.NotNil(t, got.LastPaymentDate)

	ref2 := "PAY-TEST-2"
	err = db.Transaction(func(tx *gorm.DB) error {
		_, _, err := applyDebtPayment(tx, d.ID, dec("600.00"), "cash", &ref2, 1, "")
		return err
	})
	require.NoError(t, err)

	got = reloadDebt(t, db, d.ID)
	assert.Equal(t, models.DebtPaid, got.Status)
	assert.Equal(t, "0.00", got.Balance.StringFixed(2))

	w := reloadWorker(t, db, worker.ID)
	assert.Equal(t, "1000.00", w.TotalDebt.StringFixed(2))
	assert.Equal(t, "1000.00", w.TotalPaid.StringFixed(2))
	assert.Equal(t, "0.00", w.CurrentBalance.StringFixed(2))
}

func TestPaymentExceedingBalanceRejected(t *testing.T) {
	db := newTestDB(t)
	_, worker := seedBase(t, db)
	d := mustCreateDebt(t, db, worker.ID, "500.00")

	err := db.Transaction(func(tx *gorm.DB) error {
		_, _, err := applyDebtPayment(tx, d.ID, dec("500.01"), "cash", nil, 1, "")
		return err
	})
	require.ErrorIs(t, err, errStateConflict)

	got := reloadDebt(t, db, d.ID)
	assert.Equal(t, "500.00", got.Balance.StringFixed(2))
	assert.Equal(t, models.DebtPending, got.Status)
}

func TestReversePaymentRoundTrip(t *testing.T) {
	db := newTestDB(t)
	_, worker := seedBase(t, db)
	d := mustCreateDebt(t, db, worker.ID, "1000.00")

	var payment *models.DebtHistory
	err := db.Transaction(func(tx *gorm.DB) error {
		_, h, err := applyDebtPayment(tx, d.ID, dec("300.00"), "cash", nil, 1, "")
		payment = h
		return err
	})
	require.NoError(t, err)

	err = db.Transaction(func(tx *gorm.DB) error {
		_, err := reverseDebtPayment(tx, payment.ID, "posted to wrong worker", 1)
		return err
	})
	require.NoError(t, err)

	got := reloadDebt(t, db, d.ID)
	assert.Equal(t, "1000.00", got.Balance.StringFixed(2))
	assert.Equal(t, "0.00", got.TotalPaid.StringFixed(2))
	assert.Equal(t, models.DebtPending, got.Status)

	w := reloadWorker(t, db, worker.ID)
	assert.Equal(t, "0.00", w.TotalPaid.StringFixed(2))
	assert.Equal(t, "1000.00", w.CurrentBalance.StringFixed(2))

	var refund models.DebtHistory
	require.NoError(t, db.Where("reversal_of_id = ?", payment.ID).First(&refund).Error)
	assert.Equal(t, models.DebtTxRefund, refund.TransactionType)
	assert.Equal(t, "300.00", refund.AmountPaid.StringFixed(2))

	// the same payment cannot be reversed twice
	err = db.Transaction(func(tx *gorm.DB) error {
		_, err := reverseDebtPayment(tx, payment.ID, "again", 1)
		return err
	})
	require.ErrorIs(t, err, errStateConflict)
}

func TestReverseNonPaymentEntryRejected(t *testing.T) {
	db := newTestDB(t)
	_, worker := seedBase(t, db)
	d := mustCreateDebt(t, db, worker.ID, "1000.00")

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := addDebtInterest(tx, d.ID, dec("10.00"), 1, "")
		return err
	})
	require.NoError(t, err)

	var h models.DebtHistory
	require.NoError(t, db.Where("debt_id = ?", d.ID).First(&h).Error)

	err = db.Transaction(func(tx *gorm.DB) error {
		_, err := reverseDebtPayment(tx, h.ID, "not a payment", 1)
		return err
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, errStateConflict)
}

func TestAdjustDebt(t *testing.T) {
	db := newTestDB(t)
	_, worker := seedBase(t, db)
	d := mustCreateDebt(t, db, worker.ID, "1000.00")

	// positive adjustment grows the current principal, not the original
	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := adjustDebtBalance(tx, d.ID, dec("200.00"), "extra advance", 1)
		return err
	})
	require.NoError(t, err)

	got := reloadDebt(t, db, d.ID)
	assert.Equal(t, "1200.00", got.Amount.StringFixed(2))
	assert.Equal(t, "1000.00", got.OriginalAmount.StringFixed(2))
	assert.Equal(t, "1200.00", got.Balance.StringFixed(2))

	// negative adjustment counts as repayment
	err = db.Transaction(func(tx *gorm.DB) error {
		_, err := adjustDebtBalance(tx, d.ID, dec("-300.00"), "partial forgiveness", 1)
		return err
	})
	require.NoError(t, err)

	got = reloadDebt(t, db, d.ID)
	assert.Equal(t, "900.00", got.Balance.StringFixed(2))
	assert.Equal(t, "300.00", got.TotalPaid.StringFixed(2))
	assert.Equal(t, models.DebtPartiallyPaid, got.Status)

	w := reloadWorker(t, db, worker.ID)
	assert.Equal(t, "1200.00", w.TotalDebt.StringFixed(2))
	assert.Equal(t, "300.00", w.TotalPaid.StringFixed(2))
	assert.Equal(t, "900.00", w.CurrentBalance.StringFixed(2))
}

func TestAdjustBelowZeroRejected(t *testing.T) {
	db := newTestDB(t)
	_, worker := seedBase(t, db)
	d := mustCreateDebt(t, db, worker.ID, "500.00")

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := adjustDebtBalance(tx, d.ID, dec("-600.00"), "too much", 1)
		return err
	})
	require.ErrorIs(t, err, errStateConflict)

	got := reloadDebt(t, db, d.ID)
	assert.Equal(t, "500.00", got.Balance.StringFixed(2))
	var histories int64
	require.NoError(t, db.Model(&models.DebtHistory{}).Where("debt_id = ?", d.ID).Count(&histories).Error)
	assert.Zero(t, histories)
	w := reloadWorker(t, db, worker.ID)
	assert.Equal(t, "500.00", w.CurrentBalance.StringFixed(2))
}

func TestUpdateDebtAmountIsAdjustment(t *testing.T) {
	db := newTestDB(t)
	_, worker := seedBase(t, db)
	d := mustCreateDebt(t, db, worker.ID, "1000.00")

	amount := dec("1500.00")
	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := updateDebtFields(tx, d.ID, debtUpdateInput{Amount: &amount}, 1)
		return err
	})
	require.NoError(t, err)

	got := reloadDebt(t, db, d.ID)
	assert.Equal(t, "1500.00", got.Amount.StringFixed(2))
	assert.Equal(t, "1500.00", got.Balance.StringFixed(2))
	assert.Equal(t, "1000.00", got.OriginalAmount.StringFixed(2))

	var h models.DebtHistory
	require.NoError(t, db.Where("debt_id = ?", d.ID).First(&h).Error)
	assert.Equal(t, models.DebtTxAdjustment, h.TransactionType)
	assert.Equal(t, "500.00", h.AmountPaid.StringFixed(2))

	w := reloadWorker(t, db, worker.ID)
	assert.Equal(t, "1500.00", w.TotalDebt.StringFixed(2))
}

func TestCancelDebt(t *testing.T) {
	db := newTestDB(t)
	_, worker := seedBase(t, db)
	d := mustCreateDebt(t, db, worker.ID, "1000.00")

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := addDebtInterest(tx, d.ID, dec("50.00"), 1, "")
		return err
	})
	require.NoError(t, err)

	err = db.Transaction(func(tx *gorm.DB) error {
		_, err := cancelDebt(tx, d.ID, "entered twice", 1)
		return err
	})
	require.NoError(t, err)

	got := reloadDebt(t, db, d.ID)
	assert.Equal(t, models.DebtCancelled, got.Status)
	assert.Equal(t, "0.00", got.Balance.StringFixed(2))
	assert.Contains(t, got.Notes, "entered twice")

	w := reloadWorker(t, db, worker.ID)
	assert.Equal(t, "0.00", w.TotalDebt.StringFixed(2))
	assert.Equal(t, "0.00", w.CurrentBalance.StringFixed(2))

	// cancelling again is a conflict
	err = db.Transaction(func(tx *gorm.DB) error {
		_, err := cancelDebt(tx, d.ID, "again", 1)
		return err
	})
	require.ErrorIs(t, err, errStateConflict)
}

func TestSettleWritesOffBalance(t *testing.T) {
	db := newTestDB(t)
	_, worker := seedBase(t, db)
	d := mustCreateDebt(t, db, worker.ID, "1000.00")

	err := db.Transaction(func(tx *gorm.DB) error {
		_, _, err := applyDebtPayment(tx, d.ID, dec("700.00"), "cash", nil, 1, "")
		return err
	})
	require.NoError(t, err)

	err = db.Transaction(func(tx *gorm.DB) error {
		_, err := setDebtStatus(tx, d.ID, models.DebtSettled, "agreed settlement", false, 1)
		return err
	})
	require.NoError(t, err)

	got := reloadDebt(t, db, d.ID)
	assert.Equal(t, models.DebtSettled, got.Status)
	assert.Equal(t, "0.00", got.Balance.StringFixed(2))

	var writeOff models.DebtHistory
	require.NoError(t, db.Where("debt_id = ? AND payment_method = ?", d.ID, "settlement").First(&writeOff).Error)
	assert.Equal(t, models.DebtTxPayment, writeOff.TransactionType)
	assert.Equal(t, "300.00", writeOff.AmountPaid.StringFixed(2))
	assert.Equal(t, "0.00", writeOff.NewBalance.StringFixed(2))

	w := reloadWorker(t, db, worker.ID)
	assert.Equal(t, "0.00", w.CurrentBalance.StringFixed(2))

	// leaving a locked status requires force
	err = db.Transaction(func(tx *gorm.DB) error {
		_, err := setDebtStatus(tx, d.ID, models.DebtActive, "", false, 1)
		return err
	})
	require.ErrorIs(t, err, errStateConflict)

	err = db.Transaction(func(tx *gorm.DB) error {
		_, err := setDebtStatus(tx, d.ID, models.DebtActive, "reopened", true, 1)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, models.DebtActive, reloadDebt(t, db, d.ID).Status)
}

func TestSetStatusSameStatusRejected(t *testing.T) {
	db := newTestDB(t)
	_, worker := seedBase(t, db)
	d := mustCreateDebt(t, db, worker.ID, "100.00")

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := setDebtStatus(tx, d.ID, models.DebtPending, "", false, 1)
		return err
	})
	require.ErrorIs(t, err, errStateConflict)
}

func TestPaymentStatusFor(t *testing.T) {
	principal := dec("100.00")
	assert.Equal(t, models.DebtPaid, paymentStatusFor(decimal.Zero, principal))
	assert.Equal(t, models.DebtPaid, paymentStatusFor(dec("-0.01"), principal))
	assert.Equal(t, models.DebtPartiallyPaid, paymentStatusFor(dec("40.00"), principal))
	assert.Equal(t, models.DebtActive, paymentStatusFor(dec("100.00"), principal))
	assert.Equal(t, models.DebtActive, paymentStatusFor(dec("120.00"), principal))
}
