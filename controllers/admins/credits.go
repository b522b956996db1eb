package admins

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"taskvine/database"
	"taskvine/middleware"
	"taskvine/models"
	"taskvine/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GrantCreditsRequest struct {
	Credits int `json:"credits"`
}

// POST /admin/users/{id}/credits
// Grants purchased credits. The tier is recomputed from the cumulative
// purchase total on every grant, so crossing a threshold promotes the
// user immediately.
func GrantCredits(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid user id"})
		return
	}
	var req GrantCreditsRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.Credits <= 0 {
		utils.WriteError(w, http.StatusBadRequest, utils.CodeInvalidAmount, "Credits must be greater than zero")
		return
	}

	var updated models.User
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, id).Error; err != nil {
			return err
		}

		newPurchased := user.CreditsPurchased + req.Credits
		newTier := models.TierFor(newPurchased)
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
			"credits":           gorm.Expr("credits + ?", req.Credits),
			"credits_purchased": newPurchased,
			"tier":              newTier,
		}).Error; err != nil {
			return err
		}

		entry := models.LedgerEntry{
			UserID:      user.ID,
			OrderID:     utils.GenerateOrderID(user.ID),
			Description: fmt.Sprintf("Purchased %d credits", req.Credits),
			Amount:      0,
		}
		if err := models.LogHistory(tx, &entry); err != nil {
			return err
		}

		return tx.First(&updated, user.ID).Error
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, utils.CodeUserNotFound, "User not found")
			return
		}
		log.Printf("[admin/credits] error for user %d: %v", id, txErr)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Credits granted",
		Data:    map[string]interface{}{"user": updated},
	})
}

type FundBalanceRequest struct {
	Amount float64 `json:"amount"`
}

// POST /admin/users/{id}/fund
// Direct balance adjustment, e.g. a manual correction or bonus.
func FundBalance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid user id"})
		return
	}
	var req FundBalanceRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.Amount <= 0 {
		utils.WriteError(w, http.StatusBadRequest, utils.CodeInvalidAmount, "Amount must be greater than zero")
		return
	}
	amount := utils.RoundFloat(req.Amount, 2)

	var updated models.User
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, id).Error; err != nil {
			return err
		}

		newBalance := utils.RoundFloat(user.Balance+amount, 2)
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Update("balance", newBalance).Error; err != nil {
			return err
		}

		entry := models.LedgerEntry{
			UserID:      user.ID,
			OrderID:     utils.GenerateOrderID(user.ID),
			Description: "Balance funded by admin",
			Amount:      amount,
		}
		if err := models.LogHistory(tx, &entry); err != nil {
			return err
		}

		return tx.First(&updated, user.ID).Error
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, utils.CodeUserNotFound, "User not found")
			return
		}
		log.Printf("[admin/fund] error for user %d: %v", id, txErr)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Balance funded",
		Data:    map[string]interface{}{"user": updated},
	})
}
