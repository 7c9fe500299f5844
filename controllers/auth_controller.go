// controllers/auth_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/CyberArcenal/Kabisilya-Management-sub007/config"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/models"
	"github.com/CyberArcenal/Kabisilya-Management-sub007/utils"
)

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var in LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "username and password are required", err)
		return
	}

	var user models.User
	if err := config.DB.Where("username = ? AND is_active = true", in.Username).First(&user).Error; err != nil {
		utils.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		utils.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.FullName, string(user.Role), 24*time.Hour)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to issue token", err)
		return
	}

	now := time.Now().UTC()
	_ = config.DB.Model(&user).Update("last_login_at", now).Error

	utils.Success(c, "login ok", gin.H{"token": token, "user": user})
}

type RegisterInput struct {
	Username string `json:"username" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

// Register is admin-only; the seed provides the first admin account.
func Register(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	var in RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "username, full_name and password are required", err)
		return
	}

	role := models.RoleStaff
	if in.Role == string(models.RoleAdmin) {
		role = models.RoleAdmin
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}

	user := models.User{
		Username:     in.Username,
		FullName:     in.FullName,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			utils.Error(c, http.StatusConflict, "username already taken", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "failed to create user", err)
		return
	}

	logActivity(uid, "user.create", "created user "+user.Username)
	utils.Success(c, "user created", user)
}

func Profile(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	var user models.User
	if err := config.DB.First(&user, uid).Error; err != nil {
		utils.Error(c, httpStatusFor(err), "user not found", err)
		return
	}
	utils.Success(c, "ok", user)
}

type ChangePasswordInput struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

func ChangePassword(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	var in ChangePasswordInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "old and new passwords are required", err)
		return
	}

	var user models.User
	if err := config.DB.First(&user, uid).Error; err != nil {
		utils.Error(c, httpStatusFor(err), "user not found", err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.OldPassword)) != nil {
		utils.Error(c, http.StatusUnauthorized, "old password does not match", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}
	if err := config.DB.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to change password", err)
		return
	}

	logActivity(uid, "user.password", "changed own password")
	utils.Success(c, "password changed", nil)
}
