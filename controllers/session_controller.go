// controllers/session_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CyberArcenal/Kabisilya-Management-sub007/config"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/models"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/utils"
)

type SessionInput struct {
	Name      string     `json:"name" binding:"required"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

func CreateSession(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	var in SessionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "name is required", err)
		return
	}

	s := models.Session{
		Name:      in.Name,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Status:    models.SessionActive,
	}
	if err := config.DB.Create(&s).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to create session", err)
		return
	}

	logActivity(uid, "session.create", "created session "+s.Name)
	utils.Success(c, "session created", s)
}

func ListSessions(c *gin.Context) {
	var rows []models.Session
	if err := config.DB.Order("id DESC").Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to list sessions", err)
		return
	}
	utils.Success(c, "ok", rows)
}

// SetDefaultSession moves the default flag in one transaction so there is
// never more or less than one default.
func SetDefaultSession(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid session id", err)
		return
	}

	var target models.Session
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&target, id).Error; err != nil {
			return err
		}
		if target.Status != models.SessionActive {
			return conflictf("session %d is closed and cannot be the default", target.ID)
		}

		err := tx.Model(&models.Session{}).
			Where("is_default = ?", true).
			Update("is_default", false).Error
		if err != nil {
			return err
		}
		return tx.Model(&models.Session{}).
			Where("id = ?", target.ID).
			Update("is_default", true).Error
	})
	if err != nil {
		utils.Error(c, httpStatusFor(err), "failed to set default session", err)
		return
	}

	logActivity(uid, "session.default", "set default session to "+strconv.Itoa(id))
	target.IsDefault = true
	utils.Success(c, "default session updated", target)
}

type SessionStatusInput struct {
	Status string `json:"status" binding:"required"`
}

func UpdateSessionStatus(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid session id", err)
		return
	}

	var in SessionStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "status is required", err)
		return
	}
	if in.Status != string(models.SessionActive) && in.Status != string(models.SessionClosed) {
		utils.Error(c, http.StatusBadRequest, "status must be active or closed", nil)
		return
	}

	var s models.Session
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&s, id).Error; err != nil {
			return err
		}
		if in.Status == string(models.SessionClosed) && s.IsDefault {
			return conflictf("session %d is the default; pick a new default before closing it", s.ID)
		}
		return tx.Model(&s).Update("status", in.Status).Error
	})
	if err != nil {
		utils.Error(c, httpStatusFor(err), "failed to update session status", err)
		return
	}

	logActivity(uid, "session.status", "set session "+strconv.Itoa(id)+" to "+in.Status)
	utils.Success(c, "session status updated", s)
}
