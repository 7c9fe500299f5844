// controllers/report_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/CyberArcenal/Kabisilya-Management-sub007/config"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/models"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/service"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/utils"
)

func WorkerBalanceReport(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))

	rows, total, err := service.NewService(config.DB).WorkerBalances(c.Request.Context(), service.WorkerBalanceFilter{
		Query:    c.Query("q"),
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to build balance report", err)
		return
	}
	utils.Success(c, "ok", gin.H{"rows": rows, "total": total})
}

func WorkerProductivityReport(c *gin.Context) {
	sessionID, err := strconv.Atoi(c.Query("session_id"))
	if err != nil {
		session, serr := config.DefaultSession(config.DB)
		if serr != nil {
			utils.Error(c, http.StatusUnprocessableEntity, "session_id missing and no default session", serr)
			return
		}
		sessionID = int(session.ID)
	}

	rows, err := service.NewService(config.DB).WorkerProductivity(c.Request.Context(), uint(sessionID))
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to build productivity report", err)
		return
	}
	utils.Success(c, "ok", rows)
}

func DebtAgingReport(c *gin.Context) {
	buckets, err := service.NewService(config.DB).DebtAging(c.Request.Context())
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to build aging report", err)
		return
	}
	utils.Success(c, "ok", buckets)
}

// Dashboard returns the headline counts and totals for the landing screen.
func Dashboard(c *gin.Context) {
	var (
		workers         int64
		activeDebts     int64
		pendingPayments int64
		activeBukids    int64
		outstanding     decimal.Decimal
	)

	db := config.DB
	if err := db.Model(&models.Worker{}).Where("status = ?", models.WorkerActive).Count(&workers).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to build dashboard", err)
		return
	}
	db.Model(&models.Debt{}).
		Where("status NOT IN ?", []models.DebtStatus{models.DebtPaid, models.DebtSettled, models.DebtCancelled}).
		Where("balance > 0").
		Count(&activeDebts)
	db.Model(&models.Payment{}).Where("status = ?", models.PaymentPending).Count(&pendingPayments)
	db.Model(&models.Bukid{}).Where("status = ?", models.BukidActive).Count(&activeBukids)
	db.Model(&models.Debt{}).
		Where("status NOT IN ?", []models.DebtStatus{models.DebtPaid, models.DebtSettled, models.DebtCancelled}).
		Select("COALESCE(SUM(balance), 0)").
		Scan(&outstanding)

	utils.Success(c, "ok", gin.H{
		"active_workers":      workers,
		"active_debts":        activeDebts,
		"outstanding_balance": outstanding,
		"pending_payments":    pendingPayments,
		"active_bukids":       activeBukids,
	})
}
