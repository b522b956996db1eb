package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"taskvine/database"
	"taskvine/middleware"
	"taskvine/models"
	"taskvine/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Name                 string `json:"name" validate:"required,nameok"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,pwdmin"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var appSetting models.Setting
	if err := database.DB.Model(&models.Setting{}).Select("closed_register, name").Take(&appSetting).Error; err == nil && appSetting.ClosedRegister {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{
			Success: false,
			Message: "Registration is currently closed. Please try again later.",
			Data:    map[string]interface{}{"closed_register": true, "application": appSetting.Name},
		})
		return
	}
	if err := database.DB.Model(&models.Setting{}).Select("maintenance, name").Take(&appSetting).Error; err == nil && appSetting.Maintenance {
		utils.WriteJSON(w, http.StatusServiceUnavailable, utils.APIResponse{
			Success: false,
			Message: "The application is under maintenance. Please try again later.",
			Data:    map[string]interface{}{"maintenance": true, "application": appSetting.Name},
		})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	db := database.DB

	var existing models.User
	if err := db.Where("name = ? OR email = ?", req.Name, req.Email).First(&existing).Error; err == nil {
		msg := "Email is already registered"
		if existing.Name == req.Name {
			msg = "Username is already taken"
		}
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: msg})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[register] DB error checking identity: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	quota := 5
	if setting, err := models.GetSetting(db); err == nil && setting.DefaultDailyQuota > 0 {
		quota = setting.DefaultDailyQuota
	}

	newUser := models.User{
		Name:             req.Name,
		Email:            req.Email,
		Password:         string(hashed),
		Status:           models.UserStatusActive,
		Tier:             models.TierBasic,
		DailyTaskQuota:   quota,
		LastActivityDate: models.Today(),
	}
	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("[register] DB Create user error: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Registration failed, please try again"})
		return
	}

	accessToken, err := utils.GenerateAccessToken(newUser.ID, "user")
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create token"})
		return
	}
	refreshID, err := utils.GenerateRefreshToken(newUser.ID)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to store refresh token"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Registration successful, welcome!",
		Data: map[string]interface{}{
			"access_token":  accessToken,
			"access_expire": time.Now().Add(15 * time.Minute).UTC().Format(time.RFC3339),
			"refresh_token": refreshID,
			"user":          userPayload(&newUser),
		},
	})
}

// userPayload is the account shape returned by register, login and info.
func userPayload(u *models.User) map[string]interface{} {
	return map[string]interface{}{
		"id":                    u.ID,
		"name":                  u.Name,
		"email":                 u.Email,
		"status":                u.Status,
		"balance":               utils.RoundFloat(u.Balance, 2),
		"credits":               u.Credits,
		"credits_purchased":     u.CreditsPurchased,
		"tier":                  u.Tier,
		"daily_task_quota":      u.DailyTaskQuota,
		"tasks_completed_today": u.TasksCompletedToday,
		"tasks_assigned_today":  u.TasksAssignedToday,
		"last_activity_date":    u.LastActivityDate,
	}
}
