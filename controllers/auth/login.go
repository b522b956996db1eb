package auth

import (
	"errors"
	"fmt"
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

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"` // username or email
	Password   string `json:"password" validate:"required"`
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	req.Identifier = strings.TrimSpace(req.Identifier)

	db := database.DB
	var user models.User
	if err := db.Where("email = ? OR name = ?", strings.ToLower(req.Identifier), req.Identifier).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Incorrect username or password")
			return
		}
		log.Printf("[login] DB error fetching user: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	if locked, wait := middleware.IsAccountLocked(user.ID); locked {
		utils.WriteJSON(w, http.StatusTooManyRequests, utils.APIResponse{
			Success: false,
			Code:    utils.CodeAuthError,
			Message: fmt.Sprintf("Too many failed logins, try again in %d seconds", int(wait.Seconds())+1),
		})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		middleware.RecordFailedLogin(user.ID)
		utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Incorrect username or password")
		return
	}
	middleware.ResetFailedLogin(user.ID)

	// Missed-quota blocks take effect at the first touch of a new day, so
	// roll the counters forward before judging status.
	if user.ApplyDailyRollover(models.Today()) {
		if err := db.Model(&models.User{}).Where("id = ?", user.ID).Updates(user.RolloverChanges()).Error; err != nil {
			log.Printf("[login] rollover persist error for user %d: %v", user.ID, err)
		}
	}

	if user.Status == models.UserStatusBlocked {
		utils.WriteError(w, http.StatusForbidden, utils.CodeAccountSuspended, "Your account is suspended. Contact support to restore access.")
		return
	}

	accessToken, err := utils.GenerateAccessToken(user.ID, "user")
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create token"})
		return
	}
	refreshID, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to store refresh token"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Login successful",
		Data: map[string]interface{}{
			"access_token":  accessToken,
			"access_expire": time.Now().Add(15 * time.Minute).UTC().Format(time.RFC3339),
			"refresh_token": refreshID,
			"user":          userPayload(&user),
		},
	})
}
