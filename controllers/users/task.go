package users

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"taskvine/database"
	"taskvine/middleware"
	"taskvine/models"
	"taskvine/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sentinel errors carried out of reserve/start/submit transactions and
// mapped to API error codes afterwards.
var (
	errSuspended     = errors.New("account suspended")
	errAlreadyHeld   = errors.New("template already held")
	errTemplateGone  = errors.New("template not available")
	errBadTransition = errors.New("invalid status transition")
)

// GET /users/tasks/marketplace
// Active templates the user does not already hold, with per-tier
// affordability against the user's credit balance.
func MarketplaceHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Unauthorized")
		return
	}
	db := database.DB

	var user models.User
	if err := db.Select("id, credits, tier").First(&user, uid).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, utils.CodeUserNotFound, "User not found")
		return
	}

	query := db.Where("status = ?", models.PoolStatusActive).
		Where("id NOT IN (?)", db.Model(&models.UserTask{}).Select("marketplace_task_id").Where("user_id = ?", uid))
	if t := r.URL.Query().Get("type"); t != "" {
		query = query.Where("type = ?", t)
	}

	var templates []models.MarketplaceTask
	if err := query.Order("id ASC").Find(&templates).Error; err != nil {
		log.Printf("[marketplace] DB error for user %d: %v", uid, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	items := make([]map[string]interface{}, 0, len(templates))
	for _, t := range templates {
		spec := models.TierSpecFor(t.Tier)
		items = append(items, map[string]interface{}{
			"id":          t.ID,
			"type":        t.Type,
			"description": t.Description,
			"link":        t.Link,
			"tier":        t.Tier,
			"credit_cost": spec.CreditCost,
			"earning":     spec.Earning,
			"affordable":  user.Credits >= spec.CreditCost,
		})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Marketplace tasks",
		Data: map[string]interface{}{
			"tasks":   items,
			"credits": user.Credits,
			"tier":    user.Tier,
			"tiers":   models.Tiers(),
		},
	})
}

// GET /users/tasks
func TaskListHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Unauthorized")
		return
	}

	query := database.DB.Where("user_id = ?", uid)
	if s := r.URL.Query().Get("status"); s != "" {
		query = query.Where("status = ?", s)
	}

	var tasks []models.UserTask
	if err := query.Order("id DESC").Find(&tasks).Error; err != nil {
		log.Printf("[tasks] DB error for user %d: %v", uid, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Your tasks",
		Data:    map[string]interface{}{"tasks": tasks},
	})
}

type ReserveRequest struct {
	MarketplaceTaskID uint `json:"marketplace_task_id" validate:"required"`
}

// POST /users/tasks/reserve
// Clones an Active template into the user's collection. Credits are
// debited here, once, at the task tier's cost; starting later is free.
func ReserveHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Unauthorized")
		return
	}
	var req ReserveRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var created models.UserTask
	var creditsLeft int

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, uid).Error; err != nil {
			return err
		}

		today := models.Today()
		if user.ApplyDailyRollover(today) {
			if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(user.RolloverChanges()).Error; err != nil {
				return err
			}
		}
		if user.Status != models.UserStatusActive {
			return errSuspended
		}

		var tpl models.MarketplaceTask
		if err := tx.Where("id = ? AND status = ?", req.MarketplaceTaskID, models.PoolStatusActive).First(&tpl).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errTemplateGone
			}
			return err
		}

		var held int64
		if err := tx.Model(&models.UserTask{}).
			Where("user_id = ? AND marketplace_task_id = ?", uid, tpl.ID).
			Count(&held).Error; err != nil {
			return err
		}
		if held > 0 {
			return errAlreadyHeld
		}

		spec := models.TierSpecFor(tpl.Tier)
		if err := user.ApplyReserve(spec); err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
			"credits":              user.Credits,
			"tasks_assigned_today": user.TasksAssignedToday,
		}).Error; err != nil {
			return err
		}

		created = tpl.Clone(uid)
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		entry := models.LedgerEntry{
			UserID:      uid,
			OrderID:     utils.GenerateOrderID(uid),
			Description: fmt.Sprintf("Reserved %s task (%d credits)", tpl.Tier, spec.CreditCost),
			Amount:      0,
		}
		if err := models.LogHistory(tx, &entry); err != nil {
			return err
		}

		creditsLeft = user.Credits
		return nil
	})
	if err != nil {
		writeTaskError(w, uid, "reserve", err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Task reserved",
		Data: map[string]interface{}{
			"task":    created,
			"credits": creditsLeft,
		},
	})
}

// POST /users/tasks/{id}/start
func StartTaskHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Unauthorized")
		return
	}
	taskID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid task id"})
		return
	}

	var task models.UserTask
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", taskID, uid).First(&task).Error; err != nil {
			return err
		}
		if !models.ValidTransition(task.Status, models.TaskStatusStarted) {
			return errBadTransition
		}
		task.Status = models.TaskStatusStarted
		return tx.Model(&models.UserTask{}).Where("id = ?", task.ID).
			Update("status", models.TaskStatusStarted).Error
	})
	if txErr != nil {
		writeTaskError(w, uid, "start", txErr)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Task started",
		Data:    map[string]interface{}{"task": task},
	})
}

type SubmitRequest struct {
	Submission string `json:"submission" validate:"required"`
	ProofURL   string `json:"proof_url"`
}

// POST /users/tasks/{id}/submit
// Moves a started task to pending review. The reward is granted only on
// admin approval, never here.
func SubmitTaskHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Unauthorized")
		return
	}
	taskID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid task id"})
		return
	}
	var req SubmitRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	submission, valid := models.ValidateSubmission(req.Submission)
	if !valid {
		utils.WriteError(w, http.StatusUnprocessableEntity, utils.CodeInvalidSubmission,
			fmt.Sprintf("Submission must be at least %d characters", models.MinSubmissionLen))
		return
	}

	var task models.UserTask
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, uid).Error; err != nil {
			return err
		}
		if user.ApplyDailyRollover(models.Today()) {
			if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(user.RolloverChanges()).Error; err != nil {
				return err
			}
		}
		if user.Status != models.UserStatusActive {
			return errSuspended
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", taskID, uid).First(&task).Error; err != nil {
			return err
		}
		if !models.ValidTransition(task.Status, models.TaskStatusPending) {
			return errBadTransition
		}

		if err := tx.Model(&models.UserTask{}).Where("id = ?", task.ID).Updates(map[string]interface{}{
			"status":     models.TaskStatusPending,
			"submission": submission,
			"proof_url":  req.ProofURL,
		}).Error; err != nil {
			return err
		}
		task.Status = models.TaskStatusPending
		task.Submission = submission
		task.ProofURL = req.ProofURL

		return tx.Model(&models.User{}).Where("id = ?", uid).
			Update("tasks_completed_today", gorm.Expr("tasks_completed_today + ?", 1)).Error
	})
	if txErr != nil {
		writeTaskError(w, uid, "submit", txErr)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Submission received and awaiting review",
		Data:    map[string]interface{}{"task": task},
	})
}

// writeTaskError maps transaction sentinels to API responses.
func writeTaskError(w http.ResponseWriter, uid uint, op string, err error) {
	switch {
	case errors.Is(err, errSuspended):
		utils.WriteError(w, http.StatusForbidden, utils.CodeAccountSuspended, "Your account is suspended. Contact support to restore access.")
	case errors.Is(err, models.ErrQuotaExceeded):
		utils.WriteError(w, http.StatusTooManyRequests, utils.CodeQuotaExceeded, "You have reached your daily task quota")
	case errors.Is(err, models.ErrInsufficientCredits):
		utils.WriteError(w, http.StatusPaymentRequired, utils.CodeInsufficientCredits, "Not enough credits for this task")
	case errors.Is(err, errAlreadyHeld):
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "You already hold this task"})
	case errors.Is(err, errTemplateGone):
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Task is no longer available"})
	case errors.Is(err, errBadTransition):
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Task is not in the right state for that action"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Task not found"})
	default:
		log.Printf("[tasks/%s] error for user %d: %v", op, uid, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
	}
}
