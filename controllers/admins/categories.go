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

// GET /admin/categories
func GetCategories(w http.ResponseWriter, r *http.Request) {
	var categories []models.Category
	if err := database.DB.Order("name ASC").Find(&categories).Error; err != nil {
		log.Printf("[admin/categories] DB error: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Categories",
		Data:    map[string]interface{}{"categories": categories},
	})
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// POST /admin/categories
func CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Status == "" {
		req.Status = "Active"
	}

	category := models.Category{Name: req.Name, Description: req.Description, Status: req.Status}
	if err := database.DB.Create(&category).Error; err != nil {
		log.Printf("[admin/categories] create error: %v", err)
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Category could not be created, the name may already exist"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Category created",
		Data:    map[string]interface{}{"category": category},
	})
}

// PUT /admin/categories/{id}
func UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid category id"})
		return
	}
	var req CategoryRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	db := database.DB
	var category models.Category
	if err := db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Category not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	updates := map[string]interface{}{
		"name":        strings.TrimSpace(req.Name),
		"description": req.Description,
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if err := db.Model(&category).Updates(updates).Error; err != nil {
		log.Printf("[admin/categories] update error for %d: %v", id, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Category updated",
		Data:    map[string]interface{}{"category": category},
	})
}

// DELETE /admin/categories/{id}
func DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid category id"})
		return
	}

	db := database.DB
	var category models.Category
	if err := db.First(&category, id).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Category not found"})
		return
	}

	var inUse int64
	db.Model(&models.MarketplaceTask{}).Where("type = ?", category.Name).Count(&inUse)
	if inUse > 0 {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{
			Success: false,
			Message: "Category is referenced by marketplace tasks, deactivate it instead",
		})
		return
	}

	if err := db.Delete(&category).Error; err != nil {
		log.Printf("[admin/categories] delete error for %d: %v", id, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Category deleted"})
}
