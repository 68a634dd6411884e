// controllers/auth.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"saloonhub-backend/config"
	"saloonhub-backend/models"
	"saloonhub-backend/utils"
)

// Me returns the caller's resolved account. The auth middleware has already
// created the account on first contact, so this is a plain lookup.
func Me(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	var account models.Account
	if err := config.DB.First(&account, "id = ?", accountID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Account not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account": gin.H{
			"id":      account.ID,
			"email":   account.Email,
			"name":    account.Name,
			"isAdmin": account.IsAdmin,
		},
	})
}
