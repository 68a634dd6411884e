// controllers/booking.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"saloonhub-backend/config"
	"saloonhub-backend/models"
	"saloonhub-backend/services"
	"saloonhub-backend/utils"
)

// BookingController wraps the lifecycle service: status transitions and
// deletes go through it, never through direct writes.
type BookingController struct {
	Lifecycle  *services.Lifecycle
	Completion *services.CompletionService
}

// CreateBookingInput defines the expected JSON structure for creating a booking
type CreateBookingInput struct {
	OfferingID    uuid.UUID `json:"offeringId" binding:"required"`
	ScheduledAt   time.Time `json:"scheduledAt" binding:"required"`
	Notes         string    `json:"notes"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	CustomerPhone string    `json:"customerPhone"`
}

// TransitionBookingInput carries the requested status
type TransitionBookingInput struct {
	Status models.BookingStatus `json:"status" binding:"required"`
}

func (bc *BookingController) createBooking(c *gin.Context, accountID *uuid.UUID) {
	saloonID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if accountID == nil {
		// Anonymous bookings need a reachable customer.
		if input.CustomerName == "" || input.CustomerPhone == "" {
			utils.RespondWithError(c, http.StatusBadRequest, "Customer name and phone are required")
			return
		}
	}
	if input.CustomerPhone != "" && !utils.ValidatePhone(input.CustomerPhone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	var offering models.Offering
	if err := config.DB.Where("id = ? AND saloon_id = ? AND is_active = ?",
		input.OfferingID, saloonID, true).First(&offering).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Offering not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// No slot-conflict check happens here: availability filtering is the
	// booking page's concern and nothing prevents two bookings at the same
	// time. Known gap, kept visible rather than papered over.
	booking := models.Booking{
		SaloonID:      saloonID,
		OfferingID:    offering.ID,
		AccountID:     accountID,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		ScheduledAt:   input.ScheduledAt,
		TotalAmount:   offering.Price,
		Notes:         input.Notes,
		Status:        models.BookingPending,
	}

	if err := config.DB.Create(&booking).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// CreateBooking creates a booking for the authenticated caller
func (bc *BookingController) CreateBooking(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}
	bc.createBooking(c, &accountID)
}

// CreatePublicBooking creates a booking for an anonymous customer
func (bc *BookingController) CreatePublicBooking(c *gin.Context) {
	bc.createBooking(c, nil)
}

// ListSaloonBookings lists bookings for a saloon owned by the caller,
// optionally filtered to one day with ?date=2006-01-02
func (bc *BookingController) ListSaloonBookings(c *gin.Context) {
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

	query := config.DB.Where("saloon_id = ?", saloonID)
	if date := c.Query("date"); date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		query = query.Where("scheduled_at >= ? AND scheduled_at < ?",
			utils.BeginningOfDay(day), utils.EndOfDay(day))
	}

	var bookings []models.Booking
	if err := query.Order("scheduled_at").Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// ListMyBookings lists the caller's own bookings across all saloons
func (bc *BookingController) ListMyBookings(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	var bookings []models.Booking
	if err := config.DB.Where("account_id = ?", accountID).
		Order("scheduled_at desc").Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// TransitionBooking requests a status change through the lifecycle service
func (bc *BookingController) TransitionBooking(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}
	bookingID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input TransitionBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking, err := bc.Lifecycle.Transition(c.Request.Context(), bookingID, input.Status, accountID)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// DeleteBooking permanently removes a booking through the lifecycle service
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}
	bookingID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := bc.Lifecycle.Delete(c.Request.Context(), bookingID, accountID); err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}

// RunCompletionSweep triggers the auto-completion sweep out of schedule.
// Mounted on the internal, API-key-gated surface.
func (bc *BookingController) RunCompletionSweep(c *gin.Context) {
	bc.Completion.SweepOnce(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Completion sweep finished"})
}

func respondLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
	case errors.Is(err, services.ErrForbidden):
		utils.RespondWithError(c, http.StatusForbidden, "Not allowed to modify this booking")
	case errors.Is(err, services.ErrInvalidTransition):
		utils.RespondWithError(c, http.StatusConflict, "Illegal status transition")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}
