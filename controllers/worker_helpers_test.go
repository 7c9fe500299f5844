package controllers

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/CyberArcenal/Kabisilya-Management-sub007/models"
)

func TestApplyWorkerDeltaFloorsAtZero(t *testing.T) {
	db := newTestDB(t)
	_, worker := seedBase(t, db)

	err := db.Transaction(func(tx *gorm.DB) error {
		return applyWorkerDelta(tx, worker.ID, dec("100.00"), decimal.Zero, dec("100.00"))
	})
	require.NoError(t, err)

	// over-subtraction clamps instead of going negative
	err = db.Transaction(func(tx *gorm.DB) error {
		return applyWorkerDelta(tx, worker.ID, dec("-150.00"), decimal.Zero, dec("-150.00"))
	})
	require.NoError(t, err)

	w := reloadWorker(t, db, worker.ID)
	assert.Equal(t, "0.00", w.TotalDebt.StringFixed(2))
	assert.Equal(t, "0.00", w.CurrentBalance.StringFixed(2))
}

func TestApplyWorkerDeltaZeroIsNoop(t *testing.T) {
	db := newTestDB(t)
	_, worker := seedBase(t, db)
	before := reloadWorker(t, db, worker.ID)

	err := db.Transaction(func(tx *gorm.DB) error {
		return applyWorkerDelta(tx, worker.ID, decimal.Zero, decimal.Zero, decimal.Zero)
	})
	require.NoError(t, err)

	after := reloadWorker(t, db, worker.ID)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
}

func TestRecomputeWorkerAggregates(t *testing.T) {
	db := newTestDB(t)
	_, worker := seedBase(t, db)

	d1 := mustCreateDebt(t, db, worker.ID, "1000.00")
	d2 := mustCreateDebt(t, db, worker.ID, "500.00")

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := addDebtInterest(tx, d1.ID, dec("50.00"), 1, ""); err != nil {
			return err
		}
		if _, _, err := applyDebtPayment(tx, d1.ID, dec("200.00"), "cash", nil, 1, ""); err != nil {
			return err
		}
		_, err := cancelDebt(tx, d2.ID, "duplicate entry", 1)
		return err
	})
	require.NoError(t, err)

	live := reloadWorker(t, db, worker.ID)

	// scramble the aggregates, then recompute from the debts table
	require.NoError(t, db.Model(&models.Worker{}).Where("id = ?", worker.ID).Updates(map[string]interface{}{
		"total_debt":      dec("9999.00"),
		"total_paid":      dec("9999.00"),
		"current_balance": dec("9999.00"),
	}).Error)

	err = db.Transaction(func(tx *gorm.DB) error {
		_, err := recomputeWorkerAggregates(tx, worker.ID)
		return err
	})
	require.NoError(t, err)

	rebuilt := reloadWorker(t, db, worker.ID)
	assert.Equal(t, live.TotalDebt.StringFixed(2), rebuilt.TotalDebt.StringFixed(2))
	assert.Equal(t, live.TotalPaid.StringFixed(2), rebuilt.TotalPaid.StringFixed(2))
	assert.Equal(t, live.CurrentBalance.StringFixed(2), rebuilt.CurrentBalance.StringFixed(2))

	// cancelled debt contributes nothing to debt or balance
	assert.Equal(t, "1050.00", rebuilt.TotalDebt.StringFixed(2))
	assert.Equal(t, "200.00", rebuilt.TotalPaid.StringFixed(2))
	assert.Equal(t, "850.00", rebuilt.CurrentBalance.StringFixed(2))
}

func TestAppendNote(t *testing.T) {
	assert.Equal(t, "existing", appendNote("existing", ""))

	got := appendNote("", "first")
	assert.Contains(t, got, "first")

	got = appendNote(got, "second")
	assert.Contains(t, got, "first")
	assert.Contains(t, got, "second")
	assert.Len(t, strings.Split(got, "\n"), 2)
}
