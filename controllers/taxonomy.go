// controllers/taxonomy.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"saloonhub-backend/config"
	"saloonhub-backend/models"
	"saloonhub-backend/utils"
)

// The taxonomy is global and admin-curated; routes mounting these handlers
// sit behind RequireAdmin, except the public listing.

// CreateCategoryInput defines the expected JSON structure for creating a category
type CreateCategoryInput struct {
	Name     string     `json:"name" binding:"required"`
	ParentID *uuid.UUID `json:"parentId"`
}

// UpdateCategoryInput defines the expected JSON structure for updating a category
type UpdateCategoryInput struct {
	Name     *string    `json:"name"`
	ParentID *uuid.UUID `json:"parentId"`
	IsActive *bool      `json:"isActive"`
}

// CreateCategory adds a category or sub-category to the global taxonomy
func CreateCategory(c *gin.Context) {
	var input CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.ParentID != nil {
		var parent models.Category
		if err := config.DB.First(&parent, "id = ?", *input.ParentID).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Parent category not found")
			return
		}
		if parent.ParentID != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Categories nest only one level deep")
			return
		}
	}

	category := models.Category{
		Name:     input.Name,
		ParentID: input.ParentID,
		IsActive: true,
	}

	if err := config.DB.Create(&category).Error; err != nil {
		utils.RespondWithError(c, http.StatusConflict, "Category with this name already exists")
		return
	}

	c.JSON(http.StatusCreated, category)
}

// GetCategories lists the full taxonomy
func GetCategories(c *gin.Context) {
	var categories []models.Category
	if err := config.DB.Order("name").Find(&categories).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}

	c.JSON(http.StatusOK, categories)
}

// UpdateCategory updates a category in the global taxonomy
func UpdateCategory(c *gin.Context) {
	categoryID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input UpdateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var category models.Category
	if err := config.DB.First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Category not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.ParentID != nil {
		if *input.ParentID == category.ID {
			utils.RespondWithError(c, http.StatusBadRequest, "Category cannot be its own parent")
			return
		}
		category.ParentID = input.ParentID
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&category).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update category")
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category and detaches its sub-categories
func DeleteCategory(c *gin.Context) {
	categoryID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Category{}).
			Where("parent_id = ?", categoryID).
			Update("parent_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Category{}, "id = ?", categoryID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
