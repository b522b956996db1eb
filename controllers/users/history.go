package users

import (
	"log"
	"net/http"

	"taskvine/database"
	"taskvine/models"
	"taskvine/utils"
)

// GET /users/history
// The user's ledger, newest first. The store keeps at most HistoryLimit
// rows per user so no pagination is needed.
func HistoryHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Unauthorized")
		return
	}

	var entries []models.LedgerEntry
	if err := database.DB.Where("user_id = ?", uid).
		Order("id DESC").
		Limit(models.HistoryLimit).
		Find(&entries).Error; err != nil {
		log.Printf("[history] DB error for user %d: %v", uid, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Account history",
		Data:    map[string]interface{}{"history": entries},
	})
}
