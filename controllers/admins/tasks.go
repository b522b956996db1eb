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

// GET /admin/tasks?status=&type=&page=&limit=
func GetTasks(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	db := database.DB
	query := db.Model(&models.MarketplaceTask{})
	if s := r.URL.Query().Get("status"); s != "" {
		query = query.Where("status = ?", s)
	}
	if t := r.URL.Query().Get("type"); t != "" {
		query = query.Where("type = ?", t)
	}

	var total int64
	query.Count(&total)

	var tasks []models.MarketplaceTask
	if err := query.Order("id DESC").Offset((page - 1) * limit).Limit(limit).Find(&tasks).Error; err != nil {
		log.Printf("[admin/tasks] DB error: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Marketplace tasks",
		Data: map[string]interface{}{
			"tasks": tasks,
			"pagination": map[string]interface{}{
				"page":  page,
				"limit": limit,
				"total": total,
			},
		},
	})
}

type TaskRequest struct {
	Type         string `json:"type" validate:"required"`
	Description  string `json:"description" validate:"required"`
	Instructions string `json:"instructions"`
	Link         string `json:"link"`
	Tier         string `json:"tier"`
	Status       string `json:"status"`
}

// POST /admin/tasks
func CreateTask(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	task, ok := taskFromRequest(w, &req)
	if !ok {
		return
	}

	if err := database.DB.Create(task).Error; err != nil {
		log.Printf("[admin/tasks] create error: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Task created",
		Data:    map[string]interface{}{"task": task},
	})
}

// PUT /admin/tasks/{id}
func UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid task id"})
		return
	}
	var req TaskRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	task, ok := taskFromRequest(w, &req)
	if !ok {
		return
	}

	db := database.DB
	var existing models.MarketplaceTask
	if err := db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Task not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	// Template edits never reach already-issued clones.
	if err := db.Model(&existing).Updates(map[string]interface{}{
		"type":         task.Type,
		"description":  task.Description,
		"instructions": task.Instructions,
		"link":         task.Link,
		"tier":         task.Tier,
		"status":       task.Status,
	}).Error; err != nil {
		log.Printf("[admin/tasks] update error for %d: %v", id, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	db.First(&existing, id)
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Task updated",
		Data:    map[string]interface{}{"task": existing},
	})
}

// DELETE /admin/tasks/{id}
// Removes a template from the pool. Existing clones keep their copied
// fields and are unaffected.
func DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid task id"})
		return
	}

	res := database.DB.Delete(&models.MarketplaceTask{}, id)
	if res.Error != nil {
		log.Printf("[admin/tasks] delete error for %d: %v", id, res.Error)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Task not found"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Task deleted"})
}

// GET /admin/user-tasks?status=&user_id=
func GetUserTasks(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	query := database.DB.Model(&models.UserTask{})
	if s := r.URL.Query().Get("status"); s != "" {
		query = query.Where("status = ?", s)
	}
	if u := r.URL.Query().Get("user_id"); u != "" {
		query = query.Where("user_id = ?", u)
	}

	var total int64
	query.Count(&total)

	var tasks []models.UserTask
	if err := query.Order("id DESC").Offset((page - 1) * limit).Limit(limit).Find(&tasks).Error; err != nil {
		log.Printf("[admin/user-tasks] DB error: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "User tasks",
		Data: map[string]interface{}{
			"tasks": tasks,
			"pagination": map[string]interface{}{
				"page":  page,
				"limit": limit,
				"total": total,
			},
		},
	})
}

type GenerateTaskRequest struct {
	Type     string `json:"type" validate:"required"`
	Location string `json:"location"`
	Tier     string `json:"tier"`
}

// POST /admin/tasks/generate
// Asks the completion API for a task draft and stores it Inactive so an
// admin reviews it before it reaches the pool. Generation failure is
// reported, never fatal.
func GenerateTask(w http.ResponseWriter, r *http.Request) {
	var req GenerateTaskRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	tier := req.Tier
	if tier == "" {
		tier = models.TierBasic
	}
	if !models.ValidTier(tier) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Unknown tier"})
		return
	}

	gen, err := utils.GenerateTask(r.Context(), req.Type, req.Location)
	if err != nil {
		log.Printf("[admin/tasks/generate] generation error: %v", err)
		utils.WriteJSON(w, http.StatusBadGateway, utils.APIResponse{
			Success: false,
			Message: "Task generation failed, no task was created",
		})
		return
	}

	task := models.MarketplaceTask{
		Type:         req.Type,
		Description:  gen.Description,
		Instructions: gen.Instructions,
		Tier:         tier,
		Status:       models.PoolStatusInactive,
	}
	if err := database.DB.Create(&task).Error; err != nil {
		log.Printf("[admin/tasks/generate] create error: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Task generated and stored for review",
		Data:    map[string]interface{}{"task": task},
	})
}

func taskFromRequest(w http.ResponseWriter, req *TaskRequest) (*models.MarketplaceTask, bool) {
	req.Type = strings.TrimSpace(req.Type)
	req.Description = strings.TrimSpace(req.Description)
	if req.Tier == "" {
		req.Tier = models.TierBasic
	}
	if !models.ValidTier(req.Tier) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Unknown tier"})
		return nil, false
	}
	if req.Status == "" {
		req.Status = models.PoolStatusActive
	}
	if req.Status != models.PoolStatusActive && req.Status != models.PoolStatusInactive {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Status must be Active or Inactive"})
		return nil, false
	}

	var catCount int64
	database.DB.Model(&models.Category{}).Where("name = ? AND status = ?", req.Type, "Active").Count(&catCount)
	if catCount == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Unknown task type"})
		return nil, false
	}

	return &models.MarketplaceTask{
		Type:         req.Type,
		Description:  req.Description,
		Instructions: req.Instructions,
		Link:         req.Link,
		Tier:         req.Tier,
		Status:       req.Status,
	}, true
}
