package users

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

// GET /users/payout-profile
func PayoutProfileHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Unauthorized")
		return
	}

	var profile models.PayoutProfile
	err := database.DB.Preload("Bank").Where("user_id = ?", uid).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
			Success: true,
			Message: "No payout profile yet",
			Data:    map[string]interface{}{"payout_profile": nil},
		})
		return
	}
	if err != nil {
		log.Printf("[payout-profile] DB error for user %d: %v", uid, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Payout profile",
		Data:    map[string]interface{}{"payout_profile": profile},
	})
}

type PayoutProfileRequest struct {
	BankID        uint   `json:"bank_id" validate:"required"`
	AccountName   string `json:"account_name" validate:"required"`
	AccountNumber string `json:"account_number" validate:"required"`
}

// PUT /users/payout-profile
// Creates or replaces the single payout profile a user may hold.
func SavePayoutProfileHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Unauthorized")
		return
	}
	var req PayoutProfileRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	req.AccountName = strings.TrimSpace(req.AccountName)
	req.AccountNumber = strings.TrimSpace(req.AccountNumber)
	if req.AccountName == "" || req.AccountNumber == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Account name and number are required"})
		return
	}

	db := database.DB
	var bank models.Bank
	if err := db.Where("id = ? AND status = ?", req.BankID, "Active").First(&bank).Error; err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Unknown payout method"})
		return
	}

	var profile models.PayoutProfile
	err := db.Where("user_id = ?", uid).First(&profile).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = models.PayoutProfile{
			UserID:        uid,
			BankID:        req.BankID,
			AccountName:   req.AccountName,
			AccountNumber: req.AccountNumber,
		}
		if err := db.Create(&profile).Error; err != nil {
			log.Printf("[payout-profile] create error for user %d: %v", uid, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
			return
		}
	case err == nil:
		if err := db.Model(&profile).Updates(map[string]interface{}{
			"bank_id":        req.BankID,
			"account_name":   req.AccountName,
			"account_number": req.AccountNumber,
		}).Error; err != nil {
			log.Printf("[payout-profile] update error for user %d: %v", uid, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
			return
		}
	default:
		log.Printf("[payout-profile] DB error for user %d: %v", uid, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	profile.Bank = &bank
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Payout profile saved",
		Data:    map[string]interface{}{"payout_profile": profile},
	})
}
