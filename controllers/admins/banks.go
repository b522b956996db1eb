package admins

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"taskvine/database"
	"taskvine/middleware"
	"taskvine/models"
	"taskvine/utils"

	"github.com/gorilla/mux"
)

// GET /admin/banks
func GetBanks(w http.ResponseWriter, r *http.Request) {
	var banks []models.Bank
	if err := database.DB.Order("name ASC").Find(&banks).Error; err != nil {
		log.Printf("[admin/banks] DB error: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Payout methods",
		Data:    map[string]interface{}{"banks": banks},
	})
}

type BankRequest struct {
	Name      string `json:"name" validate:"required"`
	ShortName string `json:"short_name"`
	Type      string `json:"type"`
	Code      string `json:"code" validate:"required"`
	Status    string `json:"status"`
}

// POST /admin/banks
func CreateBank(w http.ResponseWriter, r *http.Request) {
	var req BankRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.Type == "" {
		req.Type = "bank"
	}
	if req.Status == "" {
		req.Status = "Active"
	}

	bank := models.Bank{
		Name:      strings.TrimSpace(req.Name),
		ShortName: req.ShortName,
		Type:      req.Type,
		Code:      strings.ToUpper(strings.TrimSpace(req.Code)),
		Status:    req.Status,
	}
	if err := database.DB.Create(&bank).Error; err != nil {
		log.Printf("[admin/banks] create error: %v", err)
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Payout method could not be created, the code may already exist"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Payout method created",
		Data:    map[string]interface{}{"bank": bank},
	})
}

// PUT /admin/banks/{id}
func UpdateBank(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid id"})
		return
	}
	var req BankRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	db := database.DB
	var bank models.Bank
	if err := db.First(&bank, id).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Payout method not found"})
		return
	}

	updates := map[string]interface{}{
		"name":       strings.TrimSpace(req.Name),
		"short_name": req.ShortName,
		"code":       strings.ToUpper(strings.TrimSpace(req.Code)),
	}
	if req.Type != "" {
		updates["type"] = req.Type
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if err := db.Model(&bank).Updates(updates).Error; err != nil {
		log.Printf("[admin/banks] update error for %d: %v", id, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Payout method updated",
		Data:    map[string]interface{}{"bank": bank},
	})
}
