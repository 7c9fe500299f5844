// controllers/assignment_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/CyberArcenal/Kabisilya-Management-sub007/config"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/models"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/utils"
)

type AssignmentInput struct {
	WorkerID    uint             `json:"worker_id" binding:"required"`
	PitakID     uint             `json:"pitak_id" binding:"required"`
	LuwangCount *decimal.Decimal `json:"luwang_count"`
}

// CreateAssignment is a find-or-create on the (worker, pitak) unique key:
// assigning the same worker twice returns the existing assignment instead
// of erroring, same recovery pattern as the cascade's payment creation.
func CreateAssignment(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	var in AssignmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "worker_id and pitak_id are required", err)
		return
	}

	var (
		result  models.Assignment
		created bool
	)
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var w models.Worker
		if err := tx.First(&w, in.WorkerID).Error; err != nil {
			return err
		}
		if w.Status != models.WorkerActive {
			return conflictf("worker %d is inactive", w.ID)
		}
		var p models.Pitak
		if err := tx.First(&p, in.PitakID).Error; err != nil {
			return err
		}
		if p.Status == models.PitakCompleted {
			return conflictf("pitak %d is completed; no new assignments", p.ID)
		}

		var existing models.Assignment
		err := tx.Where("worker_id = ? AND pitak_id = ?", in.WorkerID, in.PitakID).First(&existing).Error
		if err == nil {
			result = existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		a := models.Assignment{
			WorkerID: in.WorkerID,
			PitakID:  in.PitakID,
			Status:   models.AssignmentActive,
		}
		if in.LuwangCount != nil {
			a.LuwangCount = *in.LuwangCount
		}

		if err := tx.SavePoint("sp_assignment_create").Error; err != nil {
			return err
		}
		if err := tx.Create(&a).Error; err != nil {
			if !isUniqueViolation(err) {
				return err
			}
			if err := tx.RollbackTo("sp_assignment_create").Error; err != nil {
				return err
			}
			if err := tx.Where("worker_id = ? AND pitak_id = ?", in.WorkerID, in.PitakID).First(&existing).Error; err != nil {
				return err
			}
			result = existing
			return nil
		}
		result = a
		created = true
		return nil
	})
	if err != nil {
		utils.Error(c, httpStatusFor(err), "failed to create assignment", err)
		return
	}

	if created {
		logActivity(uid, "assignment.create", "assigned worker "+strconv.Itoa(int(in.WorkerID))+" to pitak "+strconv.Itoa(int(in.PitakID)))
		utils.Success(c, "assignment created", result)
		return
	}
	utils.Success(c, "assignment already exists", result)
}

func ListAssignments(c *gin.Context) {
	q := config.DB.Model(&models.Assignment{}).Preload("Worker").Order("id ASC")
	if pitakID := c.Query("pitak_id"); pitakID != "" {
		q = q.Where("pitak_id = ?", pitakID)
	}
	if workerID := c.Query("worker_id"); workerID != "" {
		q = q.Where("worker_id = ?", workerID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var rows []models.Assignment
	if err := q.Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to list assignments", err)
		return
	}
	utils.Success(c, "ok", rows)
}

type LuwangInput struct {
	LuwangCount decimal.Decimal `json:"luwang_count" binding:"required"`
}

// UpdateLuwang records work output. Locked once the assignment is completed:
// the payment for it has already been computed from this number.
func UpdateLuwang(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid assignment id", err)
		return
	}

	var in LuwangInput
	if err := c.ShouldBindJSON(&in); err != nil || in.LuwangCount.IsNegative() {
		utils.Error(c, http.StatusBadRequest, "luwang_count must be a non-negative number", err)
		return
	}

	var a models.Assignment
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&a, id).Error; err != nil {
			return err
		}
		if a.Status == models.AssignmentCompleted {
			return conflictf("assignment %d is completed; luwang count is frozen", a.ID)
		}
		a.LuwangCount = in.LuwangCount
		return tx.Model(&models.Assignment{}).Where("id = ?", a.ID).
			Update("luwang_count", in.LuwangCount).Error
	})
	if err != nil {
		utils.Error(c, httpStatusFor(err), "failed to update luwang count", err)
		return
	}

	logActivity(uid, "assignment.luwang", "updated luwang count on assignment "+strconv.Itoa(id))
	utils.Success(c, "luwang count updated", a)
}
