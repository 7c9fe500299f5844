// controllers/debt_controller.go
package controllers

import (
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

type CreateDebtInput struct {
	WorkerID     uint             `json:"worker_id" binding:"required"`
	Amount       decimal.Decimal  `json:"amount" binding:"required"`
	Reason       string           `json:"reason"`
	DueDate      *time.Time       `json:"due_date"`
	InterestRate *decimal.Decimal `json:"interest_rate"`
	PaymentTerm  string           `json:"payment_term"`
}

func CreateDebt(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	var in CreateDebtInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	var created *models.Debt
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		d, err := createDebt(tx, in.WorkerID, in.Amount, in.Reason, in.DueDate, in.InterestRate, in.PaymentTerm)
		if err != nil {
			return err
		}
		created = d
		return nil
	})
	if err != nil {
		utils.Error(c, httpStatusFor(err), "failed to create debt", err)
		return
	}

	logActivity(uid, "debt.create", "created debt for worker "+strconv.Itoa(int(in.WorkerID)))
	utils.Success(c, "debt created", created)
}

func ListDebts(c *gin.Context) {
	q := config.DB.Model(&models.Debt{}).Preload("Worker").Order("id DESC")

	if workerID := c.Query("worker_id"); workerID != "" {
		q = q.Where("worker_id = ?", workerID)
	}
	if status := c.Query("status"); status != "" {
		if !models.ValidDebtStatus(status) {
			utils.Error(c, http.StatusBadRequest, "invalid status filter", nil)
			return
		}
		q = q.Where("status = ?", status)
	}
	if sessionID := c.Query("session_id"); sessionID != "" {
		q = q.Where("session_id = ?", sessionID)
	}

	var rows []models.Debt
	if err := q.Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to list debts", err)
		return
	}
	utils.Success(c, "ok", rows)
}

func GetDebt(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid debt id", err)
		return
	}

	var d models.Debt
	err = config.DB.
		Preload("Worker").
		Preload("Histories", func(db *gorm.DB) *gorm.DB {
			return db.Order("debt_histories.id ASC")
		}).
		First(&d, id).Error
	if err != nil {
		utils.Error(c, httpStatusFor(err), "debt not found", err)
		return
	}
	utils.Success(c, "ok", d)
}

type UpdateDebtBody = debtUpdateInput

func UpdateDebt(c *gin.Context) {
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

	var in UpdateDebtBody
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	var updated *models.Debt
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		d, err := updateDebtFields(tx, uint(id), in, uid)
		if err != nil {
			return err
		}
		updated = d
		return nil
	})
	if err != nil {
		utils.Error(c, httpStatusFor(err), "failed to update debt", err)
		return
	}

	logActivity(uid, "debt.update", "updated debt "+strconv.Itoa(id))
	utils.Success(c, "debt updated", updated)
}

type CancelDebtInput struct {
	Reason string `json:"reason" binding:"required"`
}

// DELETE is a soft cancel; debt rows are never hard-deleted.
func CancelDebt(c *gin.Context) {
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

	var in CancelDebtInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "cancellation reason is required", err)
		return
	}

	var cancelled *models.Debt
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		d, err := cancelDebt(tx, uint(id), in.Reason, uid)
		if err != nil {
			return err
		}
		cancelled = d
		return nil
	})
	if err != nil {
		utils.Error(c, httpStatusFor(err), "failed to cancel debt", err)
		return
	}

	logActivity(uid, "debt.cancel", "cancelled debt "+strconv.Itoa(id))
	utils.Success(c, "debt cancelled", cancelled)
}

func WorkerDebts(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid worker id", err)
		return
	}

	var w models.Worker
	if err := config.DB.First(&w, id).Error; err != nil {
		utils.Error(c, httpStatusFor(err), "worker not found", err)
		return
	}

	var rows []models.Debt
	if err := config.DB.Where("worker_id = ?", w.ID).Order("id DESC").Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to list worker debts", err)
		return
	}
	utils.Success(c, "ok", gin.H{"worker": w, "debts": rows})
}
