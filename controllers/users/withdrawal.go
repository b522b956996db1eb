package users

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"taskvine/database"
	"taskvine/middleware"
	"taskvine/models"
	"taskvine/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	errNoPayoutProfile   = errors.New("missing payout profile")
	errAmountOutOfBounds = errors.New("amount out of bounds")
)

type WithdrawalRequest struct {
	Amount float64 `json:"amount"`
}

// POST /users/withdrawal
// Debits the balance immediately and creates a Pending request. An admin
// rejection later refunds it.
func WithdrawalHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Unauthorized")
		return
	}
	var req WithdrawalRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	if req.Amount <= 0 {
		utils.WriteError(w, http.StatusBadRequest, utils.CodeInvalidAmount, "Amount must be greater than zero")
		return
	}
	amount := utils.RoundFloat(req.Amount, 2)

	setting, err := models.GetSetting(database.DB)
	if err != nil {
		log.Printf("[withdrawal] settings fetch error: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	var created models.Withdrawal
	var balanceLeft float64

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, uid).Error; err != nil {
			return err
		}
		if user.Status != models.UserStatusActive {
			return errSuspended
		}

		if amount < setting.MinWithdraw || amount > setting.MaxWithdraw {
			return errAmountOutOfBounds
		}

		var profile models.PayoutProfile
		if err := tx.Where("user_id = ?", uid).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNoPayoutProfile
			}
			return err
		}
		if !profile.Complete() {
			return errNoPayoutProfile
		}

		if err := user.ApplyWithdrawal(amount); err != nil {
			return err
		}
		balanceLeft = user.Balance
		if err := tx.Model(&models.User{}).Where("id = ?", uid).Update("balance", balanceLeft).Error; err != nil {
			return err
		}

		orderID := utils.GenerateOrderID(uid)
		created = models.Withdrawal{
			UserID:          uid,
			PayoutProfileID: profile.ID,
			Amount:          amount,
			OrderID:         orderID,
			Status:          models.WithdrawalStatusPending,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		entry := models.LedgerEntry{
			UserID:      uid,
			OrderID:     orderID,
			Description: "Withdrawal requested",
			Amount:      -amount,
		}
		return models.LogHistory(tx, &entry)
	})
	if txErr != nil {
		switch {
		case errors.Is(txErr, errSuspended):
			utils.WriteError(w, http.StatusForbidden, utils.CodeAccountSuspended, "Your account is suspended. Contact support to restore access.")
		case errors.Is(txErr, errAmountOutOfBounds):
			utils.WriteError(w, http.StatusBadRequest, utils.CodeInvalidAmount,
				fmt.Sprintf("Withdrawal must be between %.2f and %.2f", setting.MinWithdraw, setting.MaxWithdraw))
		case errors.Is(txErr, models.ErrInsufficientBalance):
			utils.WriteError(w, http.StatusBadRequest, utils.CodeInsufficientBalance, "Balance is not sufficient for this withdrawal")
		case errors.Is(txErr, errNoPayoutProfile):
			utils.WriteError(w, http.StatusUnprocessableEntity, utils.CodeMissingPayoutProfile, "Register a payout profile before withdrawing")
		case errors.Is(txErr, gorm.ErrRecordNotFound):
			utils.WriteError(w, http.StatusNotFound, utils.CodeUserNotFound, "User not found")
		default:
			log.Printf("[withdrawal] error for user %d: %v", uid, txErr)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		}
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Withdrawal requested and awaiting review",
		Data: map[string]interface{}{
			"withdrawal": created,
			"balance":    balanceLeft,
		},
	})
}

// GET /users/withdrawal
func WithdrawalListHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Unauthorized")
		return
	}

	var withdrawals []models.Withdrawal
	if err := database.DB.Where("user_id = ?", uid).Order("id DESC").Limit(50).Find(&withdrawals).Error; err != nil {
		log.Printf("[withdrawal] list error for user %d: %v", uid, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Your withdrawals",
		Data:    map[string]interface{}{"withdrawals": withdrawals},
	})
}
