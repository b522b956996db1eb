package admins

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"taskvine/database"
	"taskvine/middleware"
	"taskvine/models"
	"taskvine/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// GET /admin/users?page=&limit=&status=&search=
func GetUsers(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	status := r.URL.Query().Get("status")
	search := r.URL.Query().Get("search")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.DB
	query := db.Model(&models.User{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		log.Printf("[admin/users] DB error: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Users",
		Data: map[string]interface{}{
			"users": users,
			"pagination": map[string]interface{}{
				"page":  page,
				"limit": limit,
				"total": total,
			},
		},
	})
}

// GET /admin/users/{id}
func GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid user id"})
		return
	}

	db := database.DB
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, utils.CodeUserNotFound, "User not found")
			return
		}
		log.Printf("[admin/users] DB error fetching %d: %v", id, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	var tasks []models.UserTask
	db.Where("user_id = ?", user.ID).Order("id DESC").Limit(50).Find(&tasks)

	var history []models.LedgerEntry
	db.Where("user_id = ?", user.ID).Order("id DESC").Limit(models.HistoryLimit).Find(&history)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "User detail",
		Data: map[string]interface{}{
			"user":    user,
			"tasks":   tasks,
			"history": history,
		},
	})
}

type UpdateUserRequest struct {
	Status         *string `json:"status"`
	DailyTaskQuota *int    `json:"daily_task_quota"`
	Tier           *string `json:"tier"`
}

// PUT /admin/users/{id}
// Unblocking, quota changes and explicit tier overrides. Tier normally
// follows credits_purchased; an override here is deliberate and stands
// until the next credit purchase recomputes it.
func UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid user id"})
		return
	}
	var req UpdateUserRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	updates := map[string]interface{}{}
	if req.Status != nil {
		if *req.Status != models.UserStatusActive && *req.Status != models.UserStatusBlocked {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Status must be Active or Blocked"})
			return
		}
		updates["status"] = *req.Status
		// An admin unblock resets the daily counters so the user is not
		// re-blocked by the same missed day at the next rollover.
		if *req.Status == models.UserStatusActive {
			updates["tasks_completed_today"] = 0
			updates["tasks_assigned_today"] = 0
			updates["last_activity_date"] = models.Today()
		}
	}
	if req.DailyTaskQuota != nil {
		if *req.DailyTaskQuota < 0 {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Quota cannot be negative"})
			return
		}
		updates["daily_task_quota"] = *req.DailyTaskQuota
	}
	if req.Tier != nil {
		if !models.ValidTier(*req.Tier) {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Unknown tier"})
			return
		}
		updates["tier"] = *req.Tier
	}
	if len(updates) == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Nothing to update"})
		return
	}

	db := database.DB
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, utils.CodeUserNotFound, "User not found")
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		log.Printf("[admin/users] update error for %d: %v", user.ID, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	db.First(&user, user.ID)
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "User updated",
		Data:    map[string]interface{}{"user": user},
	})
}
