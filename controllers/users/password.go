package users

import (
	"log"
	"net/http"

	"taskvine/database"
	"taskvine/middleware"
	"taskvine/models"
	"taskvine/utils"

	"golang.org/x/crypto/bcrypt"
)

type ChangePasswordRequest struct {
	OldPassword          string `json:"old_password" validate:"required"`
	Password             string `json:"password" validate:"required,pwdmin"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// POST /users/change-password
func ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Unauthorized")
		return
	}
	var req ChangePasswordRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	db := database.DB
	var user models.User
	if err := db.First(&user, uid).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, utils.CodeUserNotFound, "User not found")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)) != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Current password is incorrect"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if err := db.Model(&models.User{}).Where("id = ?", uid).Update("password", string(hashed)).Error; err != nil {
		log.Printf("[change-password] DB error for user %d: %v", uid, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	// Force re-login everywhere else.
	if err := db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", uid, false).
		Update("revoked", true).Error; err != nil {
		log.Printf("[change-password] revoke refresh tokens error for user %d: %v", uid, err)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Password changed"})
}
