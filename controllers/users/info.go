package users

import (
	"log"
	"net/http"

	"taskvine/database"
	"taskvine/models"
	"taskvine/utils"
)

// GET /users/info
// Account snapshot. Rollover runs first so the very first request of a new
// day already reflects a missed-quota block.
func InfoHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Unauthorized")
		return
	}
	db := database.DB

	var user models.User
	if err := db.First(&user, uid).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, utils.CodeUserNotFound, "User not found")
		return
	}

	if user.ApplyDailyRollover(models.Today()) {
		if err := db.Model(&models.User{}).Where("id = ?", user.ID).Updates(user.RolloverChanges()).Error; err != nil {
			log.Printf("[info] rollover persist error for user %d: %v", user.ID, err)
		}
	}

	var pendingTasks int64
	db.Model(&models.UserTask{}).Where("user_id = ? AND status = ?", uid, models.TaskStatusPending).Count(&pendingTasks)

	var totalWithdrawn float64
	db.Model(&models.Withdrawal{}).
		Where("user_id = ? AND status = ?", uid, models.WithdrawalStatusSuccess).
		Select("COALESCE(SUM(amount),0)").Scan(&totalWithdrawn)

	spec := models.TierSpecFor(user.Tier)
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Account info",
		Data: map[string]interface{}{
			"user": map[string]interface{}{
				"id":                    user.ID,
				"name":                  user.Name,
				"email":                 user.Email,
				"status":                user.Status,
				"balance":               utils.RoundFloat(user.Balance, 2),
				"credits":               user.Credits,
				"credits_purchased":     user.CreditsPurchased,
				"tier":                  user.Tier,
				"tier_earning":          spec.Earning,
				"tier_credit_cost":      spec.CreditCost,
				"daily_task_quota":      user.DailyTaskQuota,
				"tasks_completed_today": user.TasksCompletedToday,
				"tasks_assigned_today":  user.TasksAssignedToday,
				"last_activity_date":    user.LastActivityDate,
			},
			"pending_tasks":   pendingTasks,
			"total_withdrawn": utils.RoundFloat(totalWithdrawn, 2),
		},
	})
}
