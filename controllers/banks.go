package controllers

import (
	"log"
	"net/http"

	"taskvine/database"
	"taskvine/models"
	"taskvine/utils"
)

// GET /banks
// Active payout methods, public so the registration flow can show them.
func BankListHandler(w http.ResponseWriter, r *http.Request) {
	var banks []models.Bank
	if err := database.DB.Where("status = ?", "Active").Order("name ASC").Find(&banks).Error; err != nil {
		log.Printf("[banks] DB error: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Payout methods",
		Data:    map[string]interface{}{"banks": banks},
	})
}
