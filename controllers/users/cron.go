package users

import (
	"log"
	"net/http"
	"os"

	"taskvine/database"
	"taskvine/models"
	"taskvine/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// POST /cron/daily-rollover
// Sweeps every user whose counters are behind today's date. Rollover also
// happens lazily on login/reserve/submit, so this only matters for users
// who never came back; running it twice in a day is harmless.
func CronDailyRolloverHandler(w http.ResponseWriter, r *http.Request) {
	key := r.Header.Get("X-CRON-KEY")
	if key == "" || key != os.Getenv("CRON_KEY") {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	db := database.DB
	today := models.Today()

	var stale []models.User
	if err := db.Select("id").Where("last_activity_date < ?", today).Find(&stale).Error; err != nil {
		log.Printf("[cron/rollover] DB error listing users: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	processed := 0
	blocked := 0
	for i := range stale {
		id := stale[i].ID
		err := db.Transaction(func(tx *gorm.DB) error {
			var user models.User
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, id).Error; err != nil {
				return err
			}
			wasActive := user.Status == models.UserStatusActive
			if !user.ApplyDailyRollover(today) {
				return nil
			}
			if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(user.RolloverChanges()).Error; err != nil {
				return err
			}
			processed++
			if wasActive && user.Status == models.UserStatusBlocked {
				blocked++
			}
			return nil
		})
		if err != nil {
			log.Printf("[cron/rollover] user %d: %v", id, err)
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Daily rollover complete",
		Data: map[string]interface{}{
			"date":      today,
			"processed": processed,
			"blocked":   blocked,
		},
	})
}
