// controllers/worker_helpers.go
package controllers

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/CyberArcenal/Kabisilya-Management-sub007/models"
)

// lockForUpdate takes a row lock before a read-modify-write. The sqlite
// driver used by the tests has no row locks; its writes serialize anyway.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// appendNote grows an append-only notes log; existing lines are never edited.
func appendNote(existing, note string) string {
	if note == "" {
		return existing
	}
	line := fmt.Sprintf("[%s] %s", time.Now().UTC().Format("2006-01-02 15:04"), note)
	if existing == "" {
		return line
	}
	return existing + "\n" + line
}

// applyWorkerDelta is the only place worker aggregates move. Every
// debt-mutating operation calls it inside its own transaction with the
// equal-and-opposite delta, so the aggregates stay reconcilable with the
// debts themselves. All three fields floor at zero.
func applyWorkerDelta(tx *gorm.DB, workerID uint, debtDelta, paidDelta, balanceDelta decimal.Decimal) error {
	if debtDelta.IsZero() && paidDelta.IsZero() && balanceDelta.IsZero() {
		return nil
	}

	var w models.Worker
	if err := lockForUpdate(tx).First(&w, workerID).Error; err != nil {
		return err
	}

	return tx.Model(&models.Worker{}).
		Where("id = ?", w.ID).
		Updates(map[string]interface{}{
			"total_debt":      floorZero(w.TotalDebt.Add(debtDelta)),
			"total_paid":      floorZero(w.TotalPaid.Add(paidDelta)),
			"current_balance": floorZero(w.CurrentBalance.Add(balanceDelta)),
		}).Error
}

// recomputeWorkerAggregates rebuilds the worker aggregates from the debts
// table: non-cancelled debts contribute principal plus interest to
// total_debt and their balance to current_balance; total_paid counts every
// debt, cancelled included, because that money really moved.
func recomputeWorkerAggregates(tx *gorm.DB, workerID uint) (*models.Worker, error) {
	var w models.Worker
	if err := lockForUpdate(tx).First(&w, workerID).Error; err != nil {
		return nil, err
	}

	var debts []models.Debt
	if err := tx.Where("worker_id = ?", workerID).Find(&debts).Error; err != nil {
		return nil, err
	}

	totalDebt, totalPaid, balance := decimal.Zero, decimal.Zero, decimal.Zero
	for _, d := range debts {
		totalPaid = totalPaid.Add(d.TotalPaid)
		if d.Status == models.DebtCancelled {
			continue
		}
		totalDebt = totalDebt.Add(d.Amount).Add(d.TotalInterest)
		balance = balance.Add(d.Balance)
	}

	w.TotalDebt = totalDebt
	w.TotalPaid = totalPaid
	w.CurrentBalance = balance

	err := tx.Model(&models.Worker{}).
		Where("id = ?", w.ID).
		Updates(map[string]interface{}{
			"total_debt":      totalDebt,
			"total_paid":      totalPaid,
			"current_balance": balance,
		}).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}
