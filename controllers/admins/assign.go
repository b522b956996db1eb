package admins

import (
	"errors"
	"log"
	"net/http"

	"taskvine/database"
	"taskvine/middleware"
	"taskvine/models"
	"taskvine/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errUserNotFound = errors.New("target user not found")

type insufficientPoolError struct {
	available int
}

func (e *insufficientPoolError) Error() string {
	return "not enough pool tasks"
}

type AssignRequest struct {
	UserID   uint   `json:"user_id" validate:"required"`
	Quantity int    `json:"quantity"`
	Type     string `json:"type"`
}

// POST /admin/assign
// Pushes pool templates into a user's collection. All-or-nothing: if the
// pool cannot cover the full quantity nothing is assigned and the caller
// learns how many were available. Assigned templates leave the pool.
// Admin pushes do not debit credits or touch the daily counters.
func AssignTasks(w http.ResponseWriter, r *http.Request) {
	var req AssignRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.Quantity <= 0 {
		utils.WriteError(w, http.StatusBadRequest, utils.CodeInvalidAmount, "Quantity must be greater than zero")
		return
	}

	var assigned []models.UserTask

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, req.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errUserNotFound
			}
			return err
		}

		// Lock the candidate templates so two concurrent assignments
		// cannot hand the same template to different users.
		query := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("status = ?", models.PoolStatusActive).
			Where("id NOT IN (?)", tx.Model(&models.UserTask{}).Select("marketplace_task_id").Where("user_id = ?", user.ID))
		if req.Type != "" {
			query = query.Where("type = ?", req.Type)
		}

		var templates []models.MarketplaceTask
		if err := query.Order("id ASC").Limit(req.Quantity).Find(&templates).Error; err != nil {
			return err
		}
		if len(templates) < req.Quantity {
			return &insufficientPoolError{available: len(templates)}
		}

		ids := make([]uint, 0, len(templates))
		for i := range templates {
			clone := templates[i].Clone(user.ID)
			if err := tx.Create(&clone).Error; err != nil {
				return err
			}
			assigned = append(assigned, clone)
			ids = append(ids, templates[i].ID)
		}

		return tx.Model(&models.MarketplaceTask{}).
			Where("id IN ?", ids).
			Update("status", models.PoolStatusAssigned).Error
	})
	if txErr != nil {
		var poolErr *insufficientPoolError
		switch {
		case errors.Is(txErr, errUserNotFound):
			utils.WriteError(w, http.StatusNotFound, utils.CodeUserNotFound, "User not found")
		case errors.As(txErr, &poolErr):
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{
				Success: false,
				Code:    utils.CodeInsufficientPool,
				Message: "Not enough matching tasks in the pool, nothing was assigned",
				Data:    map[string]interface{}{"available": poolErr.available, "requested": req.Quantity},
			})
		default:
			log.Printf("[admin/assign] error for user %d: %v", req.UserID, txErr)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		}
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Tasks assigned",
		Data: map[string]interface{}{
			"assigned": assigned,
			"count":    len(assigned),
		},
	})
}
