// controllers/payment_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/CyberArcenal/Kabisilya-Management-sub007/config"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/models"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/utils"
)

func ListPayments(c *gin.Context) {
	q := config.DB.Model(&models.Payment{}).Preload("Worker").Order("id DESC")

	if workerID := c.Query("worker_id"); workerID != "" {
		q = q.Where("worker_id = ?", workerID)
	}
	if status := c.Query("status"); status != "" {
		if !models.ValidPaymentStatus(status) {
			utils.Error(c, http.StatusBadRequest, "invalid status filter", nil)
			return
		}
		q = q.Where("status = ?", status)
	}
	if sessionID := c.Query("session_id"); sessionID != "" {
		q = q.Where("session_id = ?", sessionID)
	}

	var rows []models.Payment
	if err := q.Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to list payments", err)
		return
	}
	utils.Success(c, "ok", rows)
}

func GetPayment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payment id", err)
		return
	}

	var p models.Payment
	err = config.DB.
		Preload("Worker").
		Preload("Histories", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_histories.id ASC")
		}).
		First(&p, id).Error
	if err != nil {
		utils.Error(c, httpStatusFor(err), "payment not found", err)
		return
	}
	utils.Success(c, "ok", p)
}

type ProcessPaymentInput struct {
	ManualDeduction decimal.Decimal `json:"manual_deduction"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
	DebtDeduction   decimal.Decimal `json:"debt_deduction"`
	Notes           string          `json:"notes"`
}

// processPayment finalizes a pending payroll payment. The debt deduction is
// spread across the worker's outstanding debts oldest-due-first through the
// same payment core the manual endpoint uses, so history rows and worker
// aggregates come out identical. This is the only flow where a Payment
// touches worker aggregates, and it does so via the debts.
func processPayment(tx *gorm.DB, paymentID uint, in ProcessPaymentInput, performedBy uint) (*models.Payment, error) {
	if in.ManualDeduction.IsNegative() || in.OtherDeductions.IsNegative() || in.DebtDeduction.IsNegative() {
		return nil, fmt.Errorf("deductions must not be negative")
	}

	var p models.Payment
	if err := lockForUpdate(tx).First(&p, paymentID).Error; err != nil {
		return nil, err
	}
	if p.Status != models.PaymentPending {
		return nil, conflictf("payment %d is %s; only pending payments can be processed", p.ID, p.Status)
	}

	applied := decimal.Zero
	remaining := in.DebtDeduction
	if remaining.IsPositive() {
		var debts []models.Debt
		err := tx.Where("worker_id = ? AND balance > 0", p.WorkerID).
			Where("status IN ?", []models.DebtStatus{
				models.DebtPending, models.DebtActive, models.DebtPartiallyPaid, models.DebtOverdue,
			}).
			Order("due_date ASC, id ASC").
			Find(&debts).Error
		if err != nil {
			return nil, err
		}

		for _, d := range debts {
			if !remaining.IsPositive() {
				break
			}
			chunk := decimal.Min(remaining, d.Balance)
			ref := utils.GenDeductionRef(p.ReferenceNumber, d.ID)
			note := fmt.Sprintf("payroll deduction from payment %d", p.ID)
			if _, _, err := applyDebtPayment(tx, d.ID, chunk, "payroll_deduction", &ref, performedBy, note); err != nil {
				return nil, err
			}
			remaining = remaining.Sub(chunk)
			applied = applied.Add(chunk)
		}
	}

	net := p.GrossPay.Sub(in.ManualDeduction).Sub(applied).Sub(in.OtherDeductions)
	if net.IsNegative() {
		return nil, conflictf("deductions exceed gross pay %s", p.GrossPay.StringFixed(2))
	}

	now := time.Now().UTC()
	p.Notes = appendNote(p.Notes, in.Notes)
	err := tx.Model(&models.Payment{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"manual_deduction":     in.ManualDeduction,
			"other_deductions":     in.OtherDeductions,
			"total_debt_deduction": applied,
			"net_pay":              net,
			"status":               models.PaymentCompleted,
			"processed_at":         now,
			"notes":                p.Notes,
		}).Error
	if err != nil {
		return nil, err
	}

	if applied.IsPositive() {
		h := models.PaymentHistory{
			PaymentID:       p.ID,
			TransactionType: models.PaymentTxDeduction,
			Amount:          applied,
			Notes:           "debt deduction applied",
			PerformedBy:     performedBy,
		}
		if err := tx.Create(&h).Error; err != nil {
			return nil, err
		}
	}
	h := models.PaymentHistory{
		PaymentID:       p.ID,
		TransactionType: models.PaymentTxStatusChange,
		Amount:          net,
		Notes:           "processed: pending -> completed",
		PerformedBy:     performedBy,
	}
	if err := tx.Create(&h).Error; err != nil {
		return nil, err
	}

	p.ManualDeduction = in.ManualDeduction
	p.OtherDeductions = in.OtherDeductions
	p.TotalDebtDeduction = applied
	p.NetPay = net
	p.Status = models.PaymentCompleted
	p.ProcessedAt = &now
	return &p, nil
}

func ProcessPayment(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payment id", err)
		return
	}

	var in ProcessPaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	var processed *models.Payment
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		p, err := processPayment(tx, uint(id), in, uid)
		if err != nil {
			return err
		}
		processed = p
		return nil
	})
	if err != nil {
		utils.Error(c, httpStatusFor(err), "failed to process payment", err)
		return
	}

	logActivity(uid, "payment.process", fmt.Sprintf("processed payment %d, net %s", id, processed.NetPay.StringFixed(2)))
	utils.Success(c, "payment processed", processed)
}

type PaymentStatusInput struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

func UpdatePaymentStatus(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payment id", err)
		return
	}

	var in PaymentStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "status is required", err)
		return
	}
	if !models.ValidPaymentStatus(in.Status) {
		utils.Error(c, http.StatusBadRequest, "unknown payment status", nil)
		return
	}

	var updated models.Payment
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var p models.Payment
		if err := lockForUpdate(tx).First(&p, id).Error; err != nil {
			return err
		}
		if p.Status != models.PaymentPending {
			return conflictf("payment %d is %s; only pending payments can change status", p.ID, p.Status)
		}

		err := tx.Model(&p).Updates(map[string]interface{}{
			"status": in.Status,
			"notes":  appendNote(p.Notes, in.Notes),
		}).Error
		if err != nil {
			return err
		}

		h := models.PaymentHistory{
			PaymentID:       p.ID,
			TransactionType: models.PaymentTxStatusChange,
			Notes:           fmt.Sprintf("%s -> %s", models.PaymentPending, in.Status),
			PerformedBy:     uid,
		}
		if err := tx.Create(&h).Error; err != nil {
			return err
		}
		updated = p
		updated.Status = models.PaymentStatus(in.Status)
		return nil
	})
	if err != nil {
		utils.Error(c, httpStatusFor(err), "failed to update payment status", err)
		return
	}

	logActivity(uid, "payment.status", fmt.Sprintf("set payment %d to %s", id, in.Status))
	utils.Success(c, "payment status updated", updated)
}
