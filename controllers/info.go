package controllers

import (
	"net/http"

	"taskvine/database"
	"taskvine/models"
	"taskvine/utils"
)

// GET /info
// Public application info used by clients before login.
func AppInfoHandler(w http.ResponseWriter, r *http.Request) {
	setting, err := models.GetSetting(database.DB)
	healthy := err == nil
	if err != nil {
		setting = &models.Setting{}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Application info",
		Data: map[string]interface{}{
			"application": map[string]interface{}{
				"name":            setting.Name,
				"company":         setting.Company,
				"min_withdraw":    setting.MinWithdraw,
				"max_withdraw":    setting.MaxWithdraw,
				"maintenance":     setting.Maintenance,
				"closed_register": setting.ClosedRegister,
				"link_cs":         setting.LinkCS,
				"link_app":        setting.LinkApp,
				"healthy":         healthy,
			},
			"tiers": models.Tiers(),
		},
	})
}
