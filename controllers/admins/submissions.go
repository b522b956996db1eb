package admins

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"taskvine/database"
	"taskvine/models"
	"taskvine/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errNotPending = errors.New("submission is not pending")

// GET /admin/submissions?page=&limit=
// Pending user tasks awaiting review, oldest first.
func GetSubmissions(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	query := database.DB.Model(&models.UserTask{}).Where("status = ?", models.TaskStatusPending)

	var total int64
	query.Count(&total)

	var tasks []models.UserTask
	if err := query.Order("updated_at ASC").Offset((page - 1) * limit).Limit(limit).Find(&tasks).Error; err != nil {
		log.Printf("[admin/submissions] DB error: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Pending submissions",
		Data: map[string]interface{}{
			"submissions": tasks,
			"pagination": map[string]interface{}{
				"page":  page,
				"limit": limit,
				"total": total,
			},
		},
	})
}

// POST /admin/submissions/{id}/approve
// pending -> completed. The tier earning is credited here and only here,
// so a task can never be paid twice: once completed it is terminal and
// re-approval fails the transition check.
func ApproveSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid submission id"})
		return
	}

	var task models.UserTask
	var earning float64

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		// Peek at the task to learn its owner, then take locks in the
		// same user-then-task order the submit path uses.
		if err := tx.First(&task, id).Error; err != nil {
			return err
		}

		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, task.UserID).Error; err != nil {
			return err
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&task, id).Error; err != nil {
			return err
		}
		if !models.ValidTransition(task.Status, models.TaskStatusCompleted) {
			return errNotPending
		}

		// Pay at the task's tier, which was copied at clone time. A user
		// promoted mid-review still earns what the task was worth.
		earning = models.TierSpecFor(task.Tier).Earning

		if err := tx.Model(&models.UserTask{}).Where("id = ?", task.ID).
			Update("status", models.TaskStatusCompleted).Error; err != nil {
			return err
		}
		task.Status = models.TaskStatusCompleted

		user.ApplyEarning(earning)
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Update("balance", user.Balance).Error; err != nil {
			return err
		}

		entry := models.LedgerEntry{
			UserID:      user.ID,
			OrderID:     utils.GenerateOrderID(user.ID),
			Description: fmt.Sprintf("Task approved (%s tier)", task.Tier),
			Amount:      earning,
		}
		return models.LogHistory(tx, &entry)
	})
	if txErr != nil {
		writeReviewError(w, id, "approve", txErr)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Submission approved",
		Data: map[string]interface{}{
			"task":    task,
			"earning": earning,
		},
	})
}

// POST /admin/submissions/{id}/reject
// pending -> started. The reward was never granted at submit, so there is
// nothing to claw back; the user may rework and resubmit.
func RejectSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid submission id"})
		return
	}

	var task models.UserTask
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&task, id).Error; err != nil {
			return err
		}
		if task.Status != models.TaskStatusPending {
			return errNotPending
		}
		task.Status = models.TaskStatusStarted
		return tx.Model(&models.UserTask{}).Where("id = ?", task.ID).
			Update("status", models.TaskStatusStarted).Error
	})
	if txErr != nil {
		writeReviewError(w, id, "reject", txErr)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Submission rejected, task returned for rework",
		Data:    map[string]interface{}{"task": task},
	})
}

func writeReviewError(w http.ResponseWriter, id uint64, op string, err error) {
	switch {
	case errors.Is(err, errNotPending):
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Submission is not awaiting review"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Submission not found"})
	default:
		log.Printf("[admin/submissions/%s] error for %d: %v", op, id, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
	}
}
