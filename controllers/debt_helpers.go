// controllers/debt_helpers.go
//
// Transaction-scoped core of the debt lifecycle. Every function here takes
// the caller's *gorm.DB transaction and never opens its own: the handler
// that wraps the call owns commit and rollback. One DebtHistory row per
// mutation, worker aggregates moved through applyWorkerDelta in the same
// transaction.
package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/CyberArcenal/Kabisilya-Management-sub007/config"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/models"
)

func lockDebt(tx *gorm.DB, id uint) (*models.Debt, error) {
	var d models.Debt
	if err := lockForUpdate(tx).First(&d, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("debt %d: %w", id, err)
		}
		return nil, err
	}
	return &d, nil
}

type debtHistoryEntry struct {
	TxType          models.DebtTxType
	Amount          decimal.Decimal
	PreviousBalance decimal.Decimal
	NewBalance      decimal.Decimal
	PaymentMethod   string
	ReferenceNumber *string
	ReversalOfID    *uint
	Notes           string
	PerformedBy     uint
	When            time.Time
}

func appendDebtHistory(tx *gorm.DB, debtID uint, e debtHistoryEntry) (*models.DebtHistory, error) {
	row := models.DebtHistory{
		DebtID:          debtID,
		AmountPaid:      e.Amount,
		PreviousBalance: e.PreviousBalance,
		NewBalance:      e.NewBalance,
		TransactionType: e.TxType,
		PaymentMethod:   e.PaymentMethod,
		ReferenceNumber: e.ReferenceNumber,
		ReversalOfID:    e.ReversalOfID,
		Notes:           e.Notes,
		PerformedBy:     e.PerformedBy,
		TransactionDate: e.When,
	}
	if err := tx.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// paymentStatusFor derives the status after money moved against the balance.
// principal is the current principal (Amount), not the immutable original.
func paymentStatusFor(balance, principal decimal.Decimal) models.DebtStatus {
	switch {
	case balance.LessThanOrEqual(decimal.Zero):
		return models.DebtPaid
	case balance.LessThan(principal):
		return models.DebtPartiallyPaid
	}
	return models.DebtActive
}

// createDebt needs a valid worker and a configured default session. The new
// debt starts at balance = amount = originalAmount, status pending.
func createDebt(tx *gorm.DB, workerID uint, amount decimal.Decimal, reason string, dueDate *time.Time, interestRate *decimal.Decimal, paymentTerm string) (*models.Debt, error) {
	if !amount.IsPositive() {
		return nil, errors.New("debt amount must be greater than zero")
	}

	var w models.Worker
	if err := tx.First(&w, workerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("worker %d: %w", workerID, err)
		}
		return nil, err
	}

	session, err := config.DefaultSession(tx)
	if err != nil {
		return nil, err
	}

	rate := decimal.Zero
	if interestRate != nil {
		rate = *interestRate
	} else if r, err := config.SettingDecimal(tx, config.SettingDefaultInterestRate); err == nil {
		rate = r
	}
	if rate.IsNegative() {
		return nil, errors.New("interest rate must not be negative")
	}

	d := models.Debt{
		WorkerID:       w.ID,
		SessionID:      session.ID,
		OriginalAmount: amount,
		Amount:         amount,
		Balance:        amount,
		Status:         models.DebtPending,
		InterestRate:   rate,
		PaymentTerm:    paymentTerm,
		DueDate:        dueDate,
		Reason:         reason,
	}
	if err := tx.Create(&d).Error; err != nil {
		return nil, err
	}

	if err := applyWorkerDelta(tx, w.ID, amount, decimal.Zero, amount); err != nil {
		return nil, err
	}
	return &d, nil
}

func addDebtInterest(tx *gorm.DB, debtID uint, amount decimal.Decimal, performedBy uint, notes string) (*models.Debt, error) {
	if !amount.IsPositive() {
		return nil, errors.New("interest amount must be greater than zero")
	}

	d, err := lockDebt(tx, debtID)
	if err != nil {
		return nil, err
	}
	if d.Status.Locked() {
		return nil, conflictf("debt %d is %s and accepts no further interest", d.ID, d.Status)
	}

	prev := d.Balance
	d.Balance = d.Balance.Add(amount)
	d.TotalInterest = d.TotalInterest.Add(amount)

	err = tx.Model(&models.Debt{}).
		Where("id = ?", d.ID).
		Updates(map[string]interface{}{
			"balance":        d.Balance,
			"total_interest": d.TotalInterest,
		}).Error
	if err != nil {
		return nil, err
	}

	if _, err := appendDebtHistory(tx, d.ID, debtHistoryEntry{
		TxType:          models.DebtTxInterest,
		Amount:          amount,
		PreviousBalance: prev,
		NewBalance:      d.Balance,
		Notes:           notes,
		PerformedBy:     performedBy,
		When:            time.Now().UTC(),
	}); err != nil {
		return nil, err
	}

	if err := applyWorkerDelta(tx, d.WorkerID, amount, decimal.Zero, amount); err != nil {
		return nil, err
	}
	return d, nil
}

// applyDebtPayment moves amount against the debt balance. Also used by the
// payroll deduction flow with method "payroll_deduction".
func applyDebtPayment(tx *gorm.DB, debtID uint, amount decimal.Decimal, method string, refNumber *string, performedBy uint, notes string) (*models.Debt, *models.DebtHistory, error) {
	if !amount.IsPositive() {
		return nil, nil, errors.New("payment amount must be greater than zero")
	}
	if method == "" {
		return nil, nil, errors.New("payment method is required")
	}

	d, err := lockDebt(tx, debtID)
	if err != nil {
		return nil, nil, err
	}
	if d.Status.Locked() {
		return nil, nil, conflictf("debt %d is %s and accepts no further payments", d.ID, d.Status)
	}
	if amount.GreaterThan(d.Balance) {
		return nil, nil, conflictf("payment %s exceeds outstanding balance %s",
			amount.StringFixed(2), d.Balance.StringFixed(2))
	}

	now := time.Now().UTC()
	prev := d.Balance
	d.Balance = d.Balance.Sub(amount)
	d.TotalPaid = d.TotalPaid.Add(amount)
	d.Status = paymentStatusFor(d.Balance, d.Amount)
	d.LastPaymentDate = &now

	err = tx.Model(&models.Debt{}).
		Where("id = ?", d.ID).
		Updates(map[string]interface{}{
			"balance":           d.Balance,
			"total_paid":        d.TotalPaid,
			"status":            d.Status,
			"last_payment_date": now,
		}).Error
	if err != nil {
		return nil, nil, err
	}

	h, err := appendDebtHistory(tx, d.ID, debtHistoryEntry{
		TxType:          models.DebtTxPayment,
		Amount:          amount,
		PreviousBalance: prev,
		NewBalance:      d.Balance,
		PaymentMethod:   method,
		ReferenceNumber: refNumber,
		Notes:           notes,
		PerformedBy:     performedBy,
		When:            now,
	})
	if err != nil {
		return nil, nil, err
	}

	if err := applyWorkerDelta(tx, d.WorkerID, decimal.Zero, amount, amount.Neg()); err != nil {
		return nil, nil, err
	}
	return d, h, nil
}

// reverseDebtPayment undoes one payment history row. The refund row carries
// ReversalOfID pointing at the reversed payment; the unique index on that
// column is what makes a second reversal impossible.
func reverseDebtPayment(tx *gorm.DB, historyID uint, reason string, performedBy uint) (*models.Debt, error) {
	var h models.DebtHistory
	if err := tx.First(&h, historyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("debt history %d: %w", historyID, err)
		}
		return nil, err
	}
	if h.TransactionType != models.DebtTxPayment {
		return nil, errors.New("only payment entries can be reversed")
	}

	d, err := lockDebt(tx, h.DebtID)
	if err != nil {
		return nil, err
	}
	if d.Status == models.DebtSettled || d.Status == models.DebtCancelled {
		return nil, conflictf("debt %d is %s; payments can no longer be reversed", d.ID, d.Status)
	}

	var existing models.DebtHistory
	err = tx.Where("reversal_of_id = ?", h.ID).First(&existing).Error
	if err == nil {
		return nil, conflictf("payment %d has already been reversed", h.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	amount := h.AmountPaid
	prev := d.Balance
	d.Balance = d.Balance.Add(amount)
	d.TotalPaid = floorZero(d.TotalPaid.Sub(amount))
	if d.Balance.GreaterThanOrEqual(d.Amount) {
		d.Status = models.DebtPending
	} else {
		d.Status = models.DebtPartiallyPaid
	}

	err = tx.Model(&models.Debt{}).
		Where("id = ?", d.ID).
		Updates(map[string]interface{}{
			"balance":    d.Balance,
			"total_paid": d.TotalPaid,
			"status":     d.Status,
		}).Error
	if err != nil {
		return nil, err
	}

	reversalOf := h.ID
	if _, err := appendDebtHistory(tx, d.ID, debtHistoryEntry{
		TxType:          models.DebtTxRefund,
		Amount:          amount,
		PreviousBalance: prev,
		NewBalance:      d.Balance,
		ReversalOfID:    &reversalOf,
		Notes:           reason,
		PerformedBy:     performedBy,
		When:            time.Now().UTC(),
	}); err != nil {
		return nil, err
	}

	if err := applyWorkerDelta(tx, d.WorkerID, decimal.Zero, amount.Neg(), amount); err != nil {
		return nil, err
	}
	return d, nil
}

// adjustDebtBalance applies a signed correction. Positive adjustments grow
// the current principal (Amount); negative ones count as repayment.
// OriginalAmount never changes.
func adjustDebtBalance(tx *gorm.DB, debtID uint, amount decimal.Decimal, reason string, performedBy uint) (*models.Debt, error) {
	if amount.IsZero() {
		return nil, errors.New("adjustment amount must not be zero")
	}

	d, err := lockDebt(tx, debtID)
	if err != nil {
		return nil, err
	}
	if d.Status.Locked() {
		return nil, conflictf("debt %d is %s and cannot be adjusted", d.ID, d.Status)
	}

	newBalance := d.Balance.Add(amount)
	if newBalance.IsNegative() {
		return nil, conflictf("adjustment of %s would push balance below zero", amount.StringFixed(2))
	}

	prev := d.Balance
	debtDelta, paidDelta := decimal.Zero, decimal.Zero
	updates := map[string]interface{}{"balance": newBalance}

	if amount.IsPositive() {
		d.Amount = d.Amount.Add(amount)
		updates["amount"] = d.Amount
		debtDelta = amount
	} else {
		d.TotalPaid = d.TotalPaid.Add(amount.Neg())
		updates["total_paid"] = d.TotalPaid
		paidDelta = amount.Neg()
	}

	d.Balance = newBalance
	d.Status = paymentStatusFor(newBalance, d.Amount)
	updates["status"] = d.Status

	if err := tx.Model(&models.Debt{}).Where("id = ?", d.ID).Updates(updates).Error; err != nil {
		return nil, err
	}

	if _, err := appendDebtHistory(tx, d.ID, debtHistoryEntry{
		TxType:          models.DebtTxAdjustment,
		Amount:          amount,
		PreviousBalance: prev,
		NewBalance:      newBalance,
		Notes:           reason,
		PerformedBy:     performedBy,
		When:            time.Now().UTC(),
	}); err != nil {
		return nil, err
	}

	if err := applyWorkerDelta(tx, d.WorkerID, debtDelta, paidDelta, amount); err != nil {
		return nil, err
	}
	return d, nil
}

type debtUpdateInput struct {
	Amount       *decimal.Decimal `json:"amount"`
	Reason       *string          `json:"reason"`
	DueDate      *time.Time       `json:"due_date"`
	InterestRate *decimal.Decimal `json:"interest_rate"`
	PaymentTerm  *string          `json:"payment_term"`
	Note         *string          `json:"note"`
}

// updateDebtFields edits the mutable fields. Changing Amount is an
// adjustment in disguise: the difference moves balance and worker
// aggregates and leaves an adjustment history row.
func updateDebtFields(tx *gorm.DB, debtID uint, in debtUpdateInput, performedBy uint) (*models.Debt, error) {
	d, err := lockDebt(tx, debtID)
	if err != nil {
		return nil, err
	}
	if d.Status.Locked() {
		return nil, conflictf("debt %d is %s and cannot be updated", d.ID, d.Status)
	}

	updates := map[string]interface{}{}
	if in.Reason != nil {
		updates["reason"] = *in.Reason
	}
	if in.DueDate != nil {
		updates["due_date"] = *in.DueDate
	}
	if in.InterestRate != nil {
		if in.InterestRate.IsNegative() {
			return nil, errors.New("interest rate must not be negative")
		}
		updates["interest_rate"] = *in.InterestRate
	}
	if in.PaymentTerm != nil {
		updates["payment_term"] = *in.PaymentTerm
	}
	if in.Note != nil {
		d.Notes = appendNote(d.Notes, *in.Note)
		updates["notes"] = d.Notes
	}

	if in.Amount != nil && !in.Amount.Equal(d.Amount) {
		if !in.Amount.IsPositive() {
			return nil, errors.New("debt amount must be greater than zero")
		}
		diff := in.Amount.Sub(d.Amount)
		newBalance := d.Balance.Add(diff)
		if newBalance.IsNegative() {
			return nil, conflictf("amount change of %s would push balance below zero", diff.StringFixed(2))
		}

		prev := d.Balance
		d.Amount = *in.Amount
		d.Balance = newBalance
		d.Status = paymentStatusFor(newBalance, d.Amount)
		updates["amount"] = d.Amount
		updates["balance"] = d.Balance
		updates["status"] = d.Status

		if _, err := appendDebtHistory(tx, d.ID, debtHistoryEntry{
			TxType:          models.DebtTxAdjustment,
			Amount:          diff,
			PreviousBalance: prev,
			NewBalance:      newBalance,
			Notes:           "amount updated",
			PerformedBy:     performedBy,
			When:            time.Now().UTC(),
		}); err != nil {
			return nil, err
		}

		if err := applyWorkerDelta(tx, d.WorkerID, diff, decimal.Zero, diff); err != nil {
			return nil, err
		}
	}

	if len(updates) == 0 {
		return d, nil
	}
	if err := tx.Model(&models.Debt{}).Where("id = ?", d.ID).Updates(updates).Error; err != nil {
		return nil, err
	}
	return d, nil
}

// cancelDebt is a soft cancel: the row stays, the balance zeroes, the
// worker aggregates give the debt back.
func cancelDebt(tx *gorm.DB, debtID uint, reason string, performedBy uint) (*models.Debt, error) {
	d, err := lockDebt(tx, debtID)
	if err != nil {
		return nil, err
	}
	if d.Status == models.DebtCancelled {
		return nil, conflictf("debt %d is already cancelled", d.ID)
	}
	if d.Status.Locked() {
		return nil, conflictf("debt %d is %s and cannot be cancelled", d.ID, d.Status)
	}

	prev := d.Balance
	d.Notes = appendNote(d.Notes, "cancelled: "+reason)
	d.Status = models.DebtCancelled
	d.Balance = decimal.Zero

	err = tx.Model(&models.Debt{}).
		Where("id = ?", d.ID).
		Updates(map[string]interface{}{
			"status":  models.DebtCancelled,
			"balance": decimal.Zero,
			"notes":   d.Notes,
		}).Error
	if err != nil {
		return nil, err
	}

	if _, err := appendDebtHistory(tx, d.ID, debtHistoryEntry{
		TxType:          models.DebtTxCancellation,
		Amount:          prev,
		PreviousBalance: prev,
		NewBalance:      decimal.Zero,
		Notes:           reason,
		PerformedBy:     performedBy,
		When:            time.Now().UTC(),
	}); err != nil {
		return nil, err
	}

	// Remove the debt's full footprint (principal plus interest) so the
	// aggregates keep reconciling with the recompute definition.
	debtDelta := d.Amount.Add(d.TotalInterest).Neg()
	if err := applyWorkerDelta(tx, d.WorkerID, debtDelta, decimal.Zero, prev.Neg()); err != nil {
		return nil, err
	}
	return d, nil
}

// setDebtStatus is the raw status override behind updateDebtStatus and the
// bulk endpoint. Leaving a locked status requires force. Setting settled
// zeroes the balance and logs the write-off as a payment-typed entry.
func setDebtStatus(tx *gorm.DB, debtID uint, status models.DebtStatus, note string, force bool, performedBy uint) (*models.Debt, error) {
	d, err := lockDebt(tx, debtID)
	if err != nil {
		return nil, err
	}
	if d.Status == status {
		return nil, conflictf("debt %d is already %s", d.ID, status)
	}
	if d.Status.Locked() && !force {
		return nil, conflictf("debt %d is %s; changing status requires force override", d.ID, d.Status)
	}

	d.Notes = appendNote(d.Notes, note)
	updates := map[string]interface{}{
		"status": status,
		"notes":  d.Notes,
	}

	if status == models.DebtSettled {
		zeroed := d.Balance
		updates["balance"] = decimal.Zero

		if zeroed.IsPositive() {
			if _, err := appendDebtHistory(tx, d.ID, debtHistoryEntry{
				TxType:          models.DebtTxPayment,
				Amount:          zeroed,
				PreviousBalance: zeroed,
				NewBalance:      decimal.Zero,
				PaymentMethod:   "settlement",
				Notes:           "balance written off on settle",
				PerformedBy:     performedBy,
				When:            time.Now().UTC(),
			}); err != nil {
				return nil, err
			}
			if err := applyWorkerDelta(tx, d.WorkerID, decimal.Zero, decimal.Zero, zeroed.Neg()); err != nil {
				return nil, err
			}
		}
		d.Balance = decimal.Zero
	}

	if err := tx.Model(&models.Debt{}).Where("id = ?", d.ID).Updates(updates).Error; err != nil {
		return nil, err
	}
	d.Status = status
	return d, nil
}
