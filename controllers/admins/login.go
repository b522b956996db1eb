package admins

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"taskvine/database"
	"taskvine/middleware"
	"taskvine/models"
	"taskvine/utils"

	"gorm.io/gorm"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// POST /admin/login
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var admin models.Admin
	if err := database.DB.Where("username = ?", strings.TrimSpace(req.Username)).First(&admin).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[admin/login] DB error: %v", err)
		}
		utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Incorrect username or password")
		return
	}

	if !admin.IsActive {
		utils.WriteError(w, http.StatusForbidden, utils.CodeAuthError, "This admin account is disabled")
		return
	}
	if !admin.ValidatePassword(req.Password) {
		utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Incorrect username or password")
		return
	}

	token, err := utils.GenerateAccessToken(uint(admin.ID), "admin")
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create token"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Login successful",
		Data: map[string]interface{}{
			"token": token,
			"admin": admin,
		},
	})
}
