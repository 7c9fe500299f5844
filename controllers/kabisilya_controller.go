// controllers/kabisilya_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/CyberArcenal/Kabisilya-Management-sub007/config"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/models"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/utils"
)

type KabisilyaInput struct {
	Name      string `json:"name" binding:"required"`
	Foreman   string `json:"foreman"`
	ContactNo string `json:"contact_no"`
}

func CreateKabisilya(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	var in KabisilyaInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "name is required", err)
		return
	}

	k := models.Kabisilya{Name: in.Name, Foreman: in.Foreman, ContactNo: in.ContactNo}
	if err := config.DB.Create(&k).Error; err != nil {
		if isUniqueViolation(err) {
			utils.Error(c, http.StatusConflict, "kabisilya name already exists", err)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "failed to create kabisilya", err)
		return
	}

	logActivity(uid, "kabisilya.create", "created kabisilya "+k.Name)
	utils.Success(c, "kabisilya created", k)
}

func ListKabisilyas(c *gin.Context) {
	var rows []models.Kabisilya
	if err := config.DB.Order("name ASC").Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to list kabisilyas", err)
		return
	}
	utils.Success(c, "ok", rows)
}

func GetKabisilya(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid kabisilya id", err)
		return
	}

	var k models.Kabisilya
	if err := config.DB.Preload("Workers").Preload("Bukids").First(&k, id).Error; err != nil {
		utils.Error(c, httpStatusFor(err), "kabisilya not found", err)
		return
	}
	utils.Success(c, "ok", k)
}

func UpdateKabisilya(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid kabisilya id", err)
		return
	}

	var in KabisilyaInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	var k models.Kabisilya
	if err := config.DB.First(&k, id).Error; err != nil {
		utils.Error(c, httpStatusFor(err), "kabisilya not found", err)
		return
	}

	err = config.DB.Model(&k).Updates(map[string]interface{}{
		"name":       in.Name,
		"foreman":    in.Foreman,
		"contact_no": in.ContactNo,
	}).Error
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to update kabisilya", err)
		return
	}

	logActivity(uid, "kabisilya.update", "updated kabisilya "+strconv.Itoa(id))
	utils.Success(c, "kabisilya updated", k)
}
