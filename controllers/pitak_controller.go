// controllers/pitak_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/CyberArcenal/Kabisilya-Management-sub007/config"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/models"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/utils"
)

type PitakInput struct {
	BukidID     uint             `json:"bukid_id" binding:"required"`
	Name        string           `json:"name" binding:"required"`
	StartDate   *time.Time       `json:"start_date"`
	TotalLuwang *decimal.Decimal `json:"total_luwang"`
}

func CreatePitak(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	var in PitakInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "bukid_id and name are required", err)
		return
	}

	var b models.Bukid
	if err := config.DB.First(&b, in.BukidID).Error; err != nil {
		utils.Error(c, httpStatusFor(err), "bukid not found", err)
		return
	}
	if b.Status == models.BukidCompleted {
		utils.Error(c, http.StatusConflict, "bukid is completed; no new pitaks", nil)
		return
	}

	p := models.Pitak{
		BukidID:   b.ID,
		Name:      in.Name,
		Status:    models.PitakActive,
		StartDate: in.StartDate,
	}
	if in.TotalLuwang != nil {
		p.TotalLuwang = *in.TotalLuwang
	}
	if err := config.DB.Create(&p).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to create pitak", err)
		return
	}

	logActivity(uid, "pitak.create", "created pitak "+p.Name)
	utils.Success(c, "pitak created", p)
}

func ListPitaks(c *gin.Context) {
	q := config.DB.Model(&models.Pitak{}).Preload("Assignments.Worker").Order("id ASC")
	if bukidID := c.Query("bukid_id"); bukidID != "" {
		q = q.Where("bukid_id = ?", bukidID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var rows []models.Pitak
	if err := q.Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to list pitaks", err)
		return
	}
	utils.Success(c, "ok", rows)
}

type PitakUpdateInput struct {
	Name        *string          `json:"name"`
	StartDate   *time.Time       `json:"start_date"`
	EndDate     *time.Time       `json:"end_date"`
	TotalLuwang *decimal.Decimal `json:"total_luwang"`
}

// Completing a pitak on its own never generates payments; only the bukid
// cascade does.
func UpdatePitak(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid pitak id", err)
		return
	}

	var in PitakUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	var p models.Pitak
	if err := config.DB.First(&p, id).Error; err != nil {
		utils.Error(c, httpStatusFor(err), "pitak not found", err)
		return
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.StartDate != nil {
		updates["start_date"] = *in.StartDate
	}
	if in.EndDate != nil {
		updates["end_date"] = *in.EndDate
	}
	if in.TotalLuwang != nil {
		updates["total_luwang"] = *in.TotalLuwang
	}
	if len(updates) > 0 {
		if err := config.DB.Model(&p).Updates(updates).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "failed to update pitak", err)
			return
		}
	}

	logActivity(uid, "pitak.update", "updated pitak "+strconv.Itoa(id))
	utils.Success(c, "pitak updated", p)
}
