package admins

import (
	"net/http"

	"taskvine/database"
	"taskvine/models"
	"taskvine/utils"
)

// GET /admin/dashboard
func Dashboard(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	var totalUsers, blockedUsers int64
	db.Model(&models.User{}).Count(&totalUsers)
	db.Model(&models.User{}).Where("status = ?", models.UserStatusBlocked).Count(&blockedUsers)

	var poolActive, poolAssigned int64
	db.Model(&models.MarketplaceTask{}).Where("status = ?", models.PoolStatusActive).Count(&poolActive)
	db.Model(&models.MarketplaceTask{}).Where("status = ?", models.PoolStatusAssigned).Count(&poolAssigned)

	var pendingSubmissions, completedTasks int64
	db.Model(&models.UserTask{}).Where("status = ?", models.TaskStatusPending).Count(&pendingSubmissions)
	db.Model(&models.UserTask{}).Where("status = ?", models.TaskStatusCompleted).Count(&completedTasks)

	var pendingWithdrawals int64
	db.Model(&models.Withdrawal{}).Where("status = ?", models.WithdrawalStatusPending).Count(&pendingWithdrawals)

	var totalPaid, totalPendingAmount float64
	db.Model(&models.Withdrawal{}).Where("status = ?", models.WithdrawalStatusSuccess).
		Select("COALESCE(SUM(amount),0)").Scan(&totalPaid)
	db.Model(&models.Withdrawal{}).Where("status = ?", models.WithdrawalStatusPending).
		Select("COALESCE(SUM(amount),0)").Scan(&totalPendingAmount)

	var totalBalance float64
	db.Model(&models.User{}).Select("COALESCE(SUM(balance),0)").Scan(&totalBalance)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Dashboard",
		Data: map[string]interface{}{
			"users": map[string]interface{}{
				"total":   totalUsers,
				"blocked": blockedUsers,
			},
			"pool": map[string]interface{}{
				"active":   poolActive,
				"assigned": poolAssigned,
			},
			"tasks": map[string]interface{}{
				"pending_review": pendingSubmissions,
				"completed":      completedTasks,
			},
			"withdrawals": map[string]interface{}{
				"pending":        pendingWithdrawals,
				"pending_amount": utils.RoundFloat(totalPendingAmount, 2),
				"total_paid":     utils.RoundFloat(totalPaid, 2),
			},
			"total_user_balance": utils.RoundFloat(totalBalance, 2),
		},
	})
}
