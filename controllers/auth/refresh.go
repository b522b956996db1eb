package auth

import (
	"log"
	"net/http"
	"time"

	"taskvine/database"
	"taskvine/middleware"
	"taskvine/models"
	"taskvine/utils"
)

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshHandler rotates a refresh token: the presented token is revoked
// and a fresh pair is issued.
func RefreshHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	rt, err := utils.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Invalid or expired refresh token")
		return
	}

	var user models.User
	if err := database.DB.First(&user, rt.UserID).Error; err != nil {
		utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Account no longer exists")
		return
	}
	if user.ApplyDailyRollover(models.Today()) {
		if err := database.DB.Model(&models.User{}).Where("id = ?", user.ID).Updates(user.RolloverChanges()).Error; err != nil {
			log.Printf("[refresh] rollover persist error for user %d: %v", user.ID, err)
		}
	}
	if user.Status == models.UserStatusBlocked {
		utils.WriteError(w, http.StatusForbidden, utils.CodeAccountSuspended, "Your account is suspended. Contact support to restore access.")
		return
	}

	if err := database.DB.Model(&models.RefreshToken{}).Where("id = ?", rt.ID).Update("revoked", true).Error; err != nil {
		log.Printf("[refresh] revoke old token error: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	accessToken, err := utils.GenerateAccessToken(user.ID, "user")
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create token"})
		return
	}
	newRefreshID, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to store refresh token"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Token refreshed",
		Data: map[string]interface{}{
			"access_token":  accessToken,
			"access_expire": time.Now().Add(15 * time.Minute).UTC().Format(time.RFC3339),
			"refresh_token": newRefreshID,
		},
	})
}
