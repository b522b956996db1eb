package admins

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"taskvine/database"
	"taskvine/models"
	"taskvine/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errWithdrawalNotPending = errors.New("withdrawal is not pending")

// GET /admin/withdrawals?status=&page=&limit=
func GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	query := database.DB.Model(&models.Withdrawal{})
	if s := r.URL.Query().Get("status"); s != "" {
		query = query.Where("status = ?", s)
	}

	var total int64
	query.Count(&total)

	var withdrawals []models.Withdrawal
	if err := query.Preload("PayoutProfile").Preload("PayoutProfile.Bank").
		Order("id DESC").Offset((page - 1) * limit).Limit(limit).Find(&withdrawals).Error; err != nil {
		log.Printf("[admin/withdrawals] DB error: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Withdrawals",
		Data: map[string]interface{}{
			"withdrawals": withdrawals,
			"pagination": map[string]interface{}{
				"page":  page,
				"limit": limit,
				"total": total,
			},
		},
	})
}

// POST /admin/withdrawals/{id}/approve
// The balance was debited at request time, so approval only marks the
// payout as done.
func ApproveWithdrawal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid withdrawal id"})
		return
	}

	var wd models.Withdrawal
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&wd, id).Error; err != nil {
			return err
		}
		if wd.Status != models.WithdrawalStatusPending {
			return errWithdrawalNotPending
		}
		wd.Status = models.WithdrawalStatusSuccess
		return tx.Model(&models.Withdrawal{}).Where("id = ?", wd.ID).
			Update("status", models.WithdrawalStatusSuccess).Error
	})
	if txErr != nil {
		writeWithdrawalError(w, id, "approve", txErr)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Withdrawal approved",
		Data:    map[string]interface{}{"withdrawal": wd},
	})
}

// POST /admin/withdrawals/{id}/reject
// Refunds the debited amount with a positive ledger entry.
func RejectWithdrawal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid withdrawal id"})
		return
	}

	var wd models.Withdrawal
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&wd, id).Error; err != nil {
			return err
		}
		if wd.Status != models.WithdrawalStatusPending {
			return errWithdrawalNotPending
		}

		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, wd.UserID).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Withdrawal{}).Where("id = ?", wd.ID).
			Update("status", models.WithdrawalStatusRejected).Error; err != nil {
			return err
		}
		wd.Status = models.WithdrawalStatusRejected

		user.ApplyRefund(wd.Amount)
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Update("balance", user.Balance).Error; err != nil {
			return err
		}

		entry := models.LedgerEntry{
			UserID:      user.ID,
			OrderID:     utils.GenerateOrderID(user.ID),
			Description: "Withdrawal rejected, amount refunded",
			Amount:      wd.Amount,
		}
		return models.LogHistory(tx, &entry)
	})
	if txErr != nil {
		writeWithdrawalError(w, id, "reject", txErr)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Withdrawal rejected and refunded",
		Data:    map[string]interface{}{"withdrawal": wd},
	})
}

func writeWithdrawalError(w http.ResponseWriter, id uint64, op string, err error) {
	switch {
	case errors.Is(err, errWithdrawalNotPending):
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Withdrawal is not pending"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Withdrawal not found"})
	default:
		log.Printf("[admin/withdrawals/%s] error for %d: %v", op, id, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
	}
}
