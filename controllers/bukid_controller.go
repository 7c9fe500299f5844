// controllers/bukid_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CyberArcenal/Kabisilya-Management-sub007/config"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/models"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/utils"
)

type BukidInput struct {
	Name        string `json:"name" binding:"required"`
	Location    string `json:"location"`
	KabisilyaID *uint  `json:"kabisilya_id"`
	Notes       string `json:"notes"`
}

func CreateBukid(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	var in BukidInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "name is required", err)
		return
	}

	var created models.Bukid
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		session, err := config.DefaultSession(tx)
		if err != nil {
			return err
		}
		created = models.Bukid{
			SessionID:   session.ID,
			Name:        in.Name,
			Location:    in.Location,
			KabisilyaID: in.KabisilyaID,
			Status:      models.BukidActive,
			Notes:       in.Notes,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		utils.Error(c, httpStatusFor(err), "failed to create bukid", err)
		return
	}

	logActivity(uid, "bukid.create", "created bukid "+created.Name)
	utils.Success(c, "bukid created", created)
}

func ListBukids(c *gin.Context) {
	q := config.DB.Model(&models.Bukid{}).Preload("Pitaks").Order("id DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if sessionID := c.Query("session_id"); sessionID != "" {
		q = q.Where("session_id = ?", sessionID)
	}

	var rows []models.Bukid
	if err := q.Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to list bukids", err)
		return
	}
	utils.Success(c, "ok", rows)
}

func GetBukid(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid bukid id", err)
		return
	}

	var b models.Bukid
	if err := config.DB.Preload("Pitaks.Assignments.Worker").First(&b, id).Error; err != nil {
		utils.Error(c, httpStatusFor(err), "bukid not found", err)
		return
	}
	utils.Success(c, "ok", b)
}

func UpdateBukid(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid bukid id", err)
		return
	}

	var in BukidInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	var b models.Bukid
	if err := config.DB.First(&b, id).Error; err != nil {
		utils.Error(c, httpStatusFor(err), "bukid not found", err)
		return
	}

	err = config.DB.Model(&b).Updates(map[string]interface{}{
		"name":         in.Name,
		"location":     in.Location,
		"kabisilya_id": in.KabisilyaID,
		"notes":        in.Notes,
	}).Error
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to update bukid", err)
		return
	}

	logActivity(uid, "bukid.update", "updated bukid "+strconv.Itoa(id))
	utils.Success(c, "bukid updated", b)
}

// cascadeResult reports what completing a bukid actually did.
type cascadeResult struct {
	UpdatedPitakCount      int `json:"updated_pitak_count"`
	UpdatedAssignmentCount int `json:"updated_assignment_count"`
	GeneratedPaymentsCount int `json:"generated_payments_count"`
	SkippedPaymentsCount   int `json:"skipped_payments_count"`
}

// completeBukid cascades a bukid completion: every non-completed pitak is
// completed, its active assignments are completed, and one pending payment
// per (pitak, worker, session) is generated at luwangCount * ratePerLuwang.
// Re-running on an already-completed bukid finds no pitaks and is a no-op.
func completeBukid(tx *gorm.DB, bukidID uint, notes string, performedBy uint) (*cascadeResult, error) {
	session, err := config.DefaultSession(tx)
	if err != nil {
		return nil, err
	}
	rate, err := config.SettingDecimal(tx, config.SettingRatePerLuwang)
	if err != nil {
		return nil, err
	}

	res := &cascadeResult{}
	now := time.Now().UTC()

	var pitaks []models.Pitak
	err = tx.Where("bukid_id = ? AND status <> ?", bukidID, models.PitakCompleted).
		Order("id ASC").
		Find(&pitaks).Error
	if err != nil {
		return nil, err
	}

	for i := range pitaks {
		p := &pitaks[i]

		var assignments []models.Assignment
		err = tx.Where("pitak_id = ? AND status = ?", p.ID, models.AssignmentActive).
			Order("id ASC").
			Find(&assignments).Error
		if err != nil {
			return nil, err
		}

		assignmentIDs := make([]uint, 0, len(assignments))
		for _, a := range assignments {
			gross := a.LuwangCount.Mul(rate).Round(2)
			_, created, err := createPaymentIfAbsent(tx, a.WorkerID, p.ID, session.ID, gross, p.StartDate, now, performedBy)
			if err != nil {
				return nil, err
			}
			if created {
				res.GeneratedPaymentsCount++
			} else {
				res.SkippedPaymentsCount++
			}
			assignmentIDs = append(assignmentIDs, a.ID)
		}

		if len(assignmentIDs) > 0 {
			err = tx.Model(&models.Assignment{}).
				Where("id IN ?", assignmentIDs).
				Update("status", models.AssignmentCompleted).Error
			if err != nil {
				return nil, err
			}
			res.UpdatedAssignmentCount += len(assignmentIDs)
		}

		err = tx.Model(&models.Pitak{}).
			Where("id = ?", p.ID).
			Updates(map[string]interface{}{
				"status":   models.PitakCompleted,
				"end_date": now,
			}).Error
		if err != nil {
			return nil, err
		}
		res.UpdatedPitakCount++
	}

	err = tx.Model(&models.Bukid{}).
		Where("id = ?", bukidID).
		Updates(map[string]interface{}{
			"status": models.BukidCompleted,
			"notes":  notes,
		}).Error
	if err != nil {
		return nil, err
	}
	return res, nil
}

type BukidStatusInput struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// UpdateBukidStatus is the only place payments are auto-generated.
func UpdateBukidStatus(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid bukid id", err)
		return
	}

	var in BukidStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "status is required", err)
		return
	}
	if in.Status != string(models.BukidActive) && in.Status != string(models.BukidCompleted) {
		utils.Error(c, http.StatusBadRequest, "status must be active or completed", nil)
		return
	}

	var result *cascadeResult
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var b models.Bukid
		if err := lockForUpdate(tx).First(&b, id).Error; err != nil {
			return err
		}

		if in.Status != string(models.BukidCompleted) {
			return tx.Model(&b).Updates(map[string]interface{}{
				"status": in.Status,
				"notes":  in.Notes,
			}).Error
		}

		r, err := completeBukid(tx, b.ID, in.Notes, uid)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		utils.Error(c, httpStatusFor(err), "failed to update bukid status", err)
		return
	}

	if result == nil {
		logActivity(uid, "bukid.status", fmt.Sprintf("set bukid %d to %s", id, in.Status))
		utils.Success(c, "bukid status updated", nil)
		return
	}

	logActivity(uid, "bukid.complete", fmt.Sprintf(
		"completed bukid %d: %d pitaks, %d assignments, %d payments (%d skipped)",
		id, result.UpdatedPitakCount, result.UpdatedAssignmentCount,
		result.GeneratedPaymentsCount, result.SkippedPaymentsCount))
	utils.Success(c, "bukid completed", result)
}
