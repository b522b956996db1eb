package admins

import (
	"log"
	"net/http"

	"taskvine/database"
	"taskvine/middleware"
	"taskvine/models"
	"taskvine/utils"
)

// GET /admin/settings
func GetSettings(w http.ResponseWriter, r *http.Request) {
	setting, err := models.GetSetting(database.DB)
	if err != nil {
		log.Printf("[admin/settings] DB error: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Settings",
		Data:    map[string]interface{}{"settings": setting},
	})
}

type UpdateSettingsRequest struct {
	Name              *string  `json:"name"`
	Company           *string  `json:"company"`
	MinWithdraw       *float64 `json:"min_withdraw"`
	MaxWithdraw       *float64 `json:"max_withdraw"`
	DefaultDailyQuota *int     `json:"default_daily_quota"`
	Maintenance       *bool    `json:"maintenance"`
	ClosedRegister    *bool    `json:"closed_register"`
	LinkCS            *string  `json:"link_cs"`
	LinkApp           *string  `json:"link_app"`
}

// PUT /admin/settings
func UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	setting, err := models.GetSetting(database.DB)
	if err != nil {
		log.Printf("[admin/settings] DB error: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Company != nil {
		updates["company"] = *req.Company
	}
	if req.MinWithdraw != nil {
		if *req.MinWithdraw < 0 {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "min_withdraw cannot be negative"})
			return
		}
		updates["min_withdraw"] = *req.MinWithdraw
	}
	if req.MaxWithdraw != nil {
		if *req.MaxWithdraw <= 0 {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "max_withdraw must be greater than zero"})
			return
		}
		updates["max_withdraw"] = *req.MaxWithdraw
	}
	if req.DefaultDailyQuota != nil {
		if *req.DefaultDailyQuota < 0 {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "default_daily_quota cannot be negative"})
			return
		}
		updates["default_daily_quota"] = *req.DefaultDailyQuota
	}
	if req.Maintenance != nil {
		updates["maintenance"] = *req.Maintenance
	}
	if req.ClosedRegister != nil {
		updates["closed_register"] = *req.ClosedRegister
	}
	if req.LinkCS != nil {
		updates["link_cs"] = *req.LinkCS
	}
	if req.LinkApp != nil {
		updates["link_app"] = *req.LinkApp
	}
	if len(updates) == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Nothing to update"})
		return
	}

	if err := database.DB.Model(setting).Updates(updates).Error; err != nil {
		log.Printf("[admin/settings] update error: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	setting, _ = models.GetSetting(database.DB)
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Settings updated",
		Data:    map[string]interface{}{"settings": setting},
	})
}
