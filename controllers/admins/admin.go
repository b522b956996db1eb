package admins

import (
	"log"
	"net/http"

	"taskvine/database"
	"taskvine/middleware"
	"taskvine/models"
	"taskvine/utils"
)

// GET /admin/info
func Info(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Unauthorized")
		return
	}
	var admin models.Admin
	if err := database.DB.First(&admin, uid).Error; err != nil {
		utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Admin not found")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Admin info",
		Data:    map[string]interface{}{"admin": admin},
	})
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"email"`
}

// PUT /admin/profile
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Unauthorized")
		return
	}
	var req UpdateProfileRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if len(updates) == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Nothing to update"})
		return
	}

	if err := database.DB.Model(&models.Admin{}).Where("id = ?", uid).Updates(updates).Error; err != nil {
		log.Printf("[admin/profile] DB error for admin %d: %v", uid, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Profile updated"})
}

type ChangePasswordRequest struct {
	OldPassword          string `json:"old_password" validate:"required"`
	Password             string `json:"password" validate:"required,pwdmin"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// POST /admin/change-password
func ChangePassword(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Unauthorized")
		return
	}
	var req ChangePasswordRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var admin models.Admin
	if err := database.DB.First(&admin, uid).Error; err != nil {
		utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Admin not found")
		return
	}
	if !admin.ValidatePassword(req.OldPassword) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Current password is incorrect"})
		return
	}

	admin.Password = req.Password
	if err := admin.HashPassword(); err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if err := database.DB.Model(&models.Admin{}).Where("id = ?", uid).Update("password", admin.Password).Error; err != nil {
		log.Printf("[admin/change-password] DB error for admin %d: %v", uid, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Password changed"})
}
