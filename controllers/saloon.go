// controllers/saloon.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"saloonhub-backend/config"
	"saloonhub-backend/models"
	"saloonhub-backend/utils"
)

// CreateSaloonInput defines the expected JSON structure for creating a saloon
type CreateSaloonInput struct {
	Name         string       `json:"name" binding:"required"`
	Address      string       `json:"address"`
	Phone        string       `json:"phone"`
	WorkingHours models.JSONB `json:"workingHours"`
}

// UpdateSaloonInput defines the expected JSON structure for updating a saloon
type UpdateSaloonInput struct {
	Name         *string      `json:"name"`
	Address      *string      `json:"address"`
	Phone        *string      `json:"phone"`
	WorkingHours models.JSONB `json:"workingHours"`
}

// CreateSaloon registers a new saloon owned by the caller
func CreateSaloon(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	var input CreateSaloonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	saloon := models.Saloon{
		OwnerAccountID: accountID,
		Name:           input.Name,
		Address:        input.Address,
		Phone:          input.Phone,
		WorkingHours:   input.WorkingHours,
	}

	if saloon.WorkingHours == nil {
		saloon.WorkingHours = models.JSONB{
			"monday":    map[string]interface{}{"open": "09:00", "close": "20:00", "closed": false},
			"tuesday":   map[string]interface{}{"open": "09:00", "close": "20:00", "closed": false},
			"wednesday": map[string]interface{}{"open": "09:00", "close": "20:00", "closed": false},
			"thursday":  map[string]interface{}{"open": "09:00", "close": "20:00", "closed": false},
			"friday":    map[string]interface{}{"open": "09:00", "close": "20:00", "closed": false},
			"saturday":  map[string]interface{}{"open": "09:00", "close": "21:00", "closed": false},
			"sunday":    map[string]interface{}{"open": "10:00", "close": "19:00", "closed": true},
		}
	}

	if err := config.DB.Create(&saloon).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create saloon")
		return
	}

	c.JSON(http.StatusCreated, saloon)
}

// GetSaloons retrieves all saloons owned by the caller
func GetSaloons(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	var saloons []models.Saloon
	if err := config.DB.Where("owner_account_id = ?", accountID).Find(&saloons).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve saloons")
		return
	}

	c.JSON(http.StatusOK, saloons)
}

// GetSaloon retrieves a specific saloon by ID
func GetSaloon(c *gin.Context) {
	saloonID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var saloon models.Saloon
	if err := config.DB.First(&saloon, "id = ?", saloonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Saloon not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, saloon)
}

// UpdateSaloon updates a saloon owned by the caller
func UpdateSaloon(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}
	saloonID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input UpdateSaloonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var saloon models.Saloon
	if err := config.DB.First(&saloon, "id = ?", saloonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Saloon not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if saloon.OwnerAccountID != accountID {
		utils.RespondWithError(c, http.StatusForbidden, "Not the saloon owner")
		return
	}

	if input.Name != nil {
		saloon.Name = *input.Name
	}
	if input.Address != nil {
		saloon.Address = *input.Address
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		saloon.Phone = *input.Phone
	}
	if input.WorkingHours != nil {
		saloon.WorkingHours = input.WorkingHours
	}

	if err := config.DB.Save(&saloon).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update saloon")
		return
	}

	c.JSON(http.StatusOK, saloon)
}

// DeleteSaloon soft deletes a saloon owned by the caller
func DeleteSaloon(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}
	saloonID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result := config.DB.Where("id = ? AND owner_account_id = ?", saloonID, accountID).
		Delete(&models.Saloon{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete saloon")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Saloon not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Saloon deleted successfully"})
}
