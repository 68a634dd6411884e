// controllers/offering.go
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

// CreateOfferingInput defines the expected JSON structure for creating an offering
type CreateOfferingInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,min=0"`
	Duration    int     `json:"duration" binding:"min=0"` // in minutes
	Category    string  `json:"category"`
}

// UpdateOfferingInput defines the expected JSON structure for updating an offering
type UpdateOfferingInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Duration    *int     `json:"duration"`
	Category    *string  `json:"category"`
	IsActive    *bool    `json:"isActive"`
}

// ownedSaloon loads the saloon and checks the caller owns it.
func ownedSaloon(c *gin.Context, saloonID, accountID uuid.UUID) (*models.Saloon, bool) {
	var saloon models.Saloon
	if err := config.DB.First(&saloon, "id = ?", saloonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Saloon not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	if saloon.OwnerAccountID != accountID {
		utils.RespondWithError(c, http.StatusForbidden, "Not the saloon owner")
		return nil, false
	}
	return &saloon, true
}

// CreateOffering adds a bookable service to a saloon owned by the caller
func CreateOffering(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}
	saloonID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if _, ok := ownedSaloon(c, saloonID, accountID); !ok {
		return
	}

	var input CreateOfferingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	offering := models.Offering{
		SaloonID:    saloonID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Duration:    input.Duration,
		Category:    input.Category,
		IsActive:    true,
	}

	if err := config.DB.Create(&offering).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create offering")
		return
	}

	c.JSON(http.StatusCreated, offering)
}

// GetOfferings lists a saloon's active offerings. Public: customers browse
// these to book.
func GetOfferings(c *gin.Context) {
	saloonID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var offerings []models.Offering
	if err := config.DB.Where("saloon_id = ? AND is_active = ?", saloonID, true).
		Find(&offerings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve offerings")
		return
	}

	c.JSON(http.StatusOK, offerings)
}

// UpdateOffering updates an offering on a saloon owned by the caller
func UpdateOffering(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}
	offeringID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var offering models.Offering
	if err := config.DB.First(&offering, "id = ?", offeringID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Offering not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}
	if _, ok := ownedSaloon(c, offering.SaloonID, accountID); !ok {
		return
	}

	var input UpdateOfferingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Name != nil {
		offering.Name = *input.Name
	}
	if input.Description != nil {
		offering.Description = *input.Description
	}
	if input.Price != nil {
		offering.Price = *input.Price
	}
	if input.Duration != nil {
		offering.Duration = *input.Duration
	}
	if input.Category != nil {
		offering.Category = *input.Category
	}
	if input.IsActive != nil {
		offering.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&offering).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update offering")
		return
	}

	c.JSON(http.StatusOK, offering)
}

// DeleteOffering removes an offering from a saloon owned by the caller
func DeleteOffering(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}
	offeringID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var offering models.Offering
	if err := config.DB.First(&offering, "id = ?", offeringID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Offering not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}
	if _, ok := ownedSaloon(c, offering.SaloonID, accountID); !ok {
		return
	}

	if err := config.DB.Delete(&offering).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete offering")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Offering deleted successfully"})
}
