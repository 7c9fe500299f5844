// controllers/debt_ops_controller.go
//
// Money-moving debt endpoints: interest, payments, reversals, adjustments,
// status overrides, limit check, interest calculator, overdue sweep.
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
	"github.com/CyberArcenal/Kabisilya-Management-sub007/service"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/utils"
)

type AddInterestInput struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Notes  string          `json:"notes"`
}

func AddInterest(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid debt id", err)
		return
	}

	var in AddInterestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	var updated *models.Debt
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		d, err := addDebtInterest(tx, uint(id), in.Amount, uid, in.Notes)
		if err != nil {
			return err
		}
		updated = d
		return nil
	})
	if err != nil {
		utils.Error(c, httpStatusFor(err), "failed to add interest", err)
		return
	}

	logActivity(uid, "debt.interest", "added interest to debt "+strconv.Itoa(id))
	utils.Success(c, "interest added", updated)
}

type MakePaymentInput struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod   string          `json:"payment_method" binding:"required"`
	ReferenceNumber string          `json:"reference_number" binding:"required"`
	Notes           string          `json:"notes"`
}

func MakePayment(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid debt id", err)
		return
	}

	var in MakePaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "amount, payment_method and reference_number are required", err)
		return
	}

	var (
		updated *models.Debt
		history *models.DebtHistory
	)
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		d, h, err := applyDebtPayment(tx, uint(id), in.Amount, in.PaymentMethod, &in.ReferenceNumber, uid, in.Notes)
		if err != nil {
			return err
		}
		updated, history = d, h
		return nil
	})
	if err != nil {
		utils.Error(c, httpStatusFor(err), "failed to record payment", err)
		return
	}

	logActivity(uid, "debt.payment", fmt.Sprintf("payment of %s on debt %d", in.Amount.StringFixed(2), id))
	utils.Success(c, "payment recorded", gin.H{"debt": updated, "history": history})
}

type ReversePaymentInput struct {
	Reason string `json:"reason" binding:"required"`
}

func ReversePayment(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	historyID, err := strconv.Atoi(c.Param("historyID"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid history id", err)
		return
	}

	var in ReversePaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "reversal reason is required", err)
		return
	}

	var updated *models.Debt
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		d, err := reverseDebtPayment(tx, uint(historyID), in.Reason, uid)
		if err != nil {
			return err
		}
		updated = d
		return nil
	})
	if err != nil {
		utils.Error(c, httpStatusFor(err), "failed to reverse payment", err)
		return
	}

	logActivity(uid, "debt.reverse", "reversed payment history "+strconv.Itoa(historyID))
	utils.Success(c, "payment reversed", updated)
}

type AdjustDebtInput struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Reason string          `json:"reason" binding:"required"`
}

func AdjustDebt(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid debt id", err)
		return
	}

	var in AdjustDebtInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "amount and reason are required", err)
		return
	}

	var updated *models.Debt
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		d, err := adjustDebtBalance(tx, uint(id), in.Amount, in.Reason, uid)
		if err != nil {
			return err
		}
		updated = d
		return nil
	})
	if err != nil {
		utils.Error(c, httpStatusFor(err), "failed to adjust debt", err)
		return
	}

	logActivity(uid, "debt.adjust", fmt.Sprintf("adjusted debt %d by %s", id, in.Amount.StringFixed(2)))
	utils.Success(c, "debt adjusted", updated)
}

type UpdateDebtStatusInput struct {
	Status        string `json:"status" binding:"required"`
	Note          string `json:"note"`
	ForceOverride bool   `json:"force_override"`
}

func UpdateDebtStatus(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid debt id", err)
		return
	}

	var in UpdateDebtStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "status is required", err)
		return
	}
	if !models.ValidDebtStatus(in.Status) {
		utils.Error(c, http.StatusBadRequest, "unknown debt status", nil)
		return
	}

	var updated *models.Debt
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		d, err := setDebtStatus(tx, uint(id), models.DebtStatus(in.Status), in.Note, in.ForceOverride, uid)
		if err != nil {
			return err
		}
		updated = d
		return nil
	})
	if err != nil {
		utils.Error(c, httpStatusFor(err), "failed to update debt status", err)
		return
	}

	logActivity(uid, "debt.status", fmt.Sprintf("set debt %d status to %s", id, in.Status))
	utils.Success(c, "status updated", updated)
}

type BulkUpdateDebtStatusInput struct {
	IDs           []uint `json:"ids" binding:"required,min=1"`
	Status        string `json:"status" binding:"required"`
	Note          string `json:"note"`
	ForceOverride bool   `json:"force_override"`
}

// The whole batch is one transaction: the first failing id rolls back
// everything already applied.
func BulkUpdateDebtStatus(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	var in BulkUpdateDebtStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "ids and status are required", err)
		return
	}
	if !models.ValidDebtStatus(in.Status) {
		utils.Error(c, http.StatusBadRequest, "unknown debt status", nil)
		return
	}

	updatedCount := 0
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		for _, id := range in.IDs {
			if _, err := setDebtStatus(tx, id, models.DebtStatus(in.Status), in.Note, in.ForceOverride, uid); err != nil {
				return fmt.Errorf("debt %d: %w", id, err)
			}
			updatedCount++
		}
		return nil
	})
	if err != nil {
		utils.Error(c, httpStatusFor(err), "bulk status update failed", err)
		return
	}

	logActivity(uid, "debt.bulk_status", fmt.Sprintf("set %d debts to %s", updatedCount, in.Status))
	utils.Success(c, "statuses updated", gin.H{"updated_count": updatedCount})
}

// CheckDebtLimit is a pure read: would this worker exceed the configured
// debt limit if the new amount were created?
func CheckDebtLimit(c *gin.Context) {
	workerID, err := strconv.Atoi(c.Query("worker_id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "worker_id is required", err)
		return
	}
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil || !amount.IsPositive() {
		utils.Error(c, http.StatusBadRequest, "amount must be a positive number", err)
		return
	}

	var w models.Worker
	if err := config.DB.First(&w, workerID).Error; err != nil {
		utils.Error(c, httpStatusFor(err), "worker not found", err)
		return
	}

	limit, err := config.SettingDecimal(config.DB, config.SettingDebtLimit)
	if err != nil {
		utils.Error(c, http.StatusUnprocessableEntity, "debt limit is not configured", err)
		return
	}

	projected := w.CurrentBalance.Add(amount)
	utils.Success(c, "ok", gin.H{
		"is_within_limit": projected.LessThanOrEqual(limit),
		"remaining_limit": floorZero(limit.Sub(projected)),
	})
}

// CalculateInterest exposes the pure interest formula; nothing is written.
func CalculateInterest(c *gin.Context) {
	principal, err := decimal.NewFromString(c.Query("principal"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "principal must be a number", err)
		return
	}

	var rate decimal.Decimal
	if raw := c.Query("rate"); raw != "" {
		rate, err = decimal.NewFromString(raw)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "rate must be a number", err)
			return
		}
	} else {
		rate, err = config.SettingDecimal(config.DB, config.SettingDefaultInterestRate)
		if err != nil {
			utils.Error(c, http.StatusUnprocessableEntity, "default interest rate is not configured", err)
			return
		}
	}

	days, err := strconv.Atoi(c.Query("days"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "days must be an integer", err)
		return
	}

	compounding := c.DefaultQuery("compounding", "daily")
	interest, total, err := service.CalculateInterest(principal, rate, days, compounding)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid interest parameters", err)
		return
	}

	utils.Success(c, "ok", gin.H{
		"principal": principal,
		"rate":      rate,
		"days":      days,
		"interest":  interest,
		"total":     total,
	})
}

// MarkOverdueDebts flips past-due active debts to overdue. Overdue stays
// payable; it is a flag, not a terminal status.
func MarkOverdueDebts(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	var affected int64
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Debt{}).
			Where("status IN ?", []models.DebtStatus{models.DebtActive, models.DebtPartiallyPaid}).
			Where("due_date IS NOT NULL AND due_date < ?", time.Now().UTC()).
			Where("balance > 0").
			Update("status", models.DebtOverdue)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to mark overdue debts", err)
		return
	}

	logActivity(uid, "debt.overdue_sweep", fmt.Sprintf("marked %d debts overdue", affected))
	utils.Success(c, "overdue sweep complete", gin.H{"marked_count": affected})
}
