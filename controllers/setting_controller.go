// controllers/setting_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/CyberArcenal/Kabisilya-Management-sub007/config"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/models"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/utils"
)

func ListSettings(c *gin.Context) {
	var rows []models.Setting
	if err := config.DB.Order("key ASC").Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to list settings", err)
		return
	}
	utils.Success(c, "ok", rows)
}

type SettingInput struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

func UpdateSetting(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	var in SettingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "key and value are required", err)
		return
	}

	switch in.Key {
	case config.SettingRatePerLuwang, config.SettingDefaultInterestRate, config.SettingDebtLimit:
		if v, err := decimal.NewFromString(in.Value); err != nil || v.IsNegative() {
			utils.Error(c, http.StatusBadRequest, "value must be a non-negative number", err)
			return
		}
	default:
		utils.Error(c, http.StatusBadRequest, "unknown setting key", nil)
		return
	}

	if err := config.SetSetting(config.DB, in.Key, in.Value); err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to update setting", err)
		return
	}

	logActivity(uid, "setting.update", "set "+in.Key+" = "+in.Value)
	utils.Success(c, "setting updated", gin.H{"key": in.Key, "value": in.Value})
}

func ListActivityLogs(c *gin.Context) {
	q := config.DB.Model(&models.ActivityLog{}).Order("id DESC").Limit(200)
	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	var rows []models.ActivityLog
	if err := q.Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to list activity logs", err)
		return
	}
	utils.Success(c, "ok", rows)
}
