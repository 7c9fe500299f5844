// controllers/worker_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CyberArcenal/Kabisilya-Management-sub007/config"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/models"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/utils"
)

type WorkerInput struct {
	Name        string `json:"name" binding:"required"`
	KabisilyaID *uint  `json:"kabisilya_id"`
	ContactNo   string `json:"contact_no"`
	Address     string `json:"address"`
}

func CreateWorker(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	var in WorkerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "name is required", err)
		return
	}

	w := models.Worker{
		Name:        in.Name,
		KabisilyaID: in.KabisilyaID,
		ContactNo:   in.ContactNo,
		Address:     in.Address,
		Status:      models.WorkerActive,
	}
	if err := config.DB.Create(&w).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to create worker", err)
		return
	}

	logActivity(uid, "worker.create", "created worker "+w.Name)
	utils.Success(c, "worker created", w)
}

func ListWorkers(c *gin.Context) {
	q := config.DB.Model(&models.Worker{}).Order("name ASC")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if search := c.Query("q"); search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	if kabisilyaID := c.Query("kabisilya_id"); kabisilyaID != "" {
		q = q.Where("kabisilya_id = ?", kabisilyaID)
	}

	var rows []models.Worker
	if err := q.Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to list workers", err)
		return
	}
	utils.Success(c, "ok", rows)
}

func GetWorker(c *gin.Context) {
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
	utils.Success(c, "ok", w)
}

func UpdateWorker(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid worker id", err)
		return
	}

	var in WorkerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	var w models.Worker
	if err := config.DB.First(&w, id).Error; err != nil {
		utils.Error(c, httpStatusFor(err), "worker not found", err)
		return
	}

	err = config.DB.Model(&w).Updates(map[string]interface{}{
		"name":         in.Name,
		"kabisilya_id": in.KabisilyaID,
		"contact_no":   in.ContactNo,
		"address":      in.Address,
	}).Error
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to update worker", err)
		return
	}

	logActivity(uid, "worker.update", "updated worker "+strconv.Itoa(id))
	utils.Success(c, "worker updated", w)
}

type WorkerStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// Workers are never deleted; they flip between active and inactive.
func UpdateWorkerStatus(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid worker id", err)
		return
	}

	var in WorkerStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "status is required", err)
		return
	}
	if in.Status != string(models.WorkerActive) && in.Status != string(models.WorkerInactive) {
		utils.Error(c, http.StatusBadRequest, "status must be active or inactive", nil)
		return
	}

	var w models.Worker
	if err := config.DB.First(&w, id).Error; err != nil {
		utils.Error(c, httpStatusFor(err), "worker not found", err)
		return
	}

	if err := config.DB.Model(&w).Update("status", in.Status).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to update worker status", err)
		return
	}

	logActivity(uid, "worker.status", "set worker "+strconv.Itoa(id)+" to "+in.Status)
	utils.Success(c, "worker status updated", w)
}

// RecomputeWorker rebuilds the aggregates from the debts table. Maintenance
// endpoint for when the incremental deltas are suspected to have drifted.
func RecomputeWorker(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid worker id", err)
		return
	}

	var w *models.Worker
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		rw, err := recomputeWorkerAggregates(tx, uint(id))
		if err != nil {
			return err
		}
		w = rw
		return nil
	})
	if err != nil {
		utils.Error(c, httpStatusFor(err), "failed to recompute worker aggregates", err)
		return
	}

	logActivity(uid, "worker.recompute", "recomputed aggregates for worker "+strconv.Itoa(id))
	utils.Success(c, "worker aggregates recomputed", w)
}
