package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"saloonhub-backend/models"
	"saloonhub-backend/repository"
	"saloonhub-backend/services"
)

type fakeBookingStore struct {
	booking *models.Booking
	saloon  *models.Saloon
}

func (f *fakeBookingStore) Get(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, repository.ErrNotFound
	}
	copy := *f.booking
	return &copy, nil
}

func (f *fakeBookingStore) GetSaloon(ctx context.Context, id uuid.UUID) (*models.Saloon, error) {
	if f.saloon == nil || f.saloon.ID != id {
		return nil, repository.ErrNotFound
	}
	copy := *f.saloon
	return &copy, nil
}

func (f *fakeBookingStore) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.BookingStatus) (*models.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, repository.ErrNotFound
	}
	if f.booking.Status != from {
		return nil, repository.ErrStaleStatus
	}
	f.booking.Status = to
	copy := *f.booking
	return &copy, nil
}

func (f *fakeBookingStore) ListPastDueConfirmed(ctx context.Context, before time.Time) ([]models.Booking, error) {
	if f.booking != nil && f.booking.Status == models.BookingConfirmed && f.booking.ScheduledAt.Before(before) {
		return []models.Booking{*f.booking}, nil
	}
	return nil, nil
}

func (f *fakeBookingStore) Delete(ctx context.Context, id uuid.UUID) error {
	if f.booking == nil || f.booking.ID != id {
		return repository.ErrNotFound
	}
	f.booking = nil
	return nil
}

// testRouter mounts the lifecycle routes behind a middleware that injects
// the given caller, standing in for the real auth middleware.
func testRouter(bc *BookingController, actorID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("accountId", actorID.String())
		c.Next()
	})
	r.PUT("/api/bookings/:id/status", bc.TransitionBooking)
	r.DELETE("/api/bookings/:id", bc.DeleteBooking)
	return r
}

func seedController(status models.BookingStatus) (*BookingController, *fakeBookingStore, uuid.UUID, uuid.UUID) {
	ownerID := uuid.New()
	saloonID := uuid.New()
	bookingID := uuid.New()
	store := &fakeBookingStore{
		saloon:  &models.Saloon{ID: saloonID, OwnerAccountID: ownerID},
		booking: &models.Booking{ID: bookingID, SaloonID: saloonID, Status: status},
	}
	bc := &BookingController{
		Lifecycle: services.NewLifecycle(store, nil, zap.NewNop()),
	}
	return bc, store, ownerID, bookingID
}

func TestTransitionBookingHandler(t *testing.T) {
	bc, store, ownerID, bookingID := seedController(models.BookingPending)
	router := testRouter(bc, ownerID)

	req := httptest.NewRequest(http.MethodPut, "/api/bookings/"+bookingID.String()+"/status",
		strings.NewReader(`{"status":"confirmed"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, models.BookingConfirmed, store.booking.Status)
	assert.Contains(t, rec.Body.String(), `"confirmed"`)
}

func TestTransitionBookingHandlerIllegal(t *testing.T) {
	bc, store, ownerID, bookingID := seedController(models.BookingCompleted)
	router := testRouter(bc, ownerID)

	req := httptest.NewRequest(http.MethodPut, "/api/bookings/"+bookingID.String()+"/status",
		strings.NewReader(`{"status":"pending"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, models.BookingCompleted, store.booking.Status)
}

func TestTransitionBookingHandlerForbidden(t *testing.T) {
	bc, store, _, bookingID := seedController(models.BookingPending)
	router := testRouter(bc, uuid.New())

	req := httptest.NewRequest(http.MethodPut, "/api/bookings/"+bookingID.String()+"/status",
		strings.NewReader(`{"status":"confirmed"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, models.BookingPending, store.booking.Status)
}

func TestTransitionBookingHandlerNotFound(t *testing.T) {
	bc, _, ownerID, _ := seedController(models.BookingPending)
	router := testRouter(bc, ownerID)

	req := httptest.NewRequest(http.MethodPut, "/api/bookings/"+uuid.NewString()+"/status",
		strings.NewReader(`{"status":"confirmed"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTransitionBookingHandlerBadID(t *testing.T) {
	bc, _, ownerID, _ := seedController(models.BookingPending)
	router := testRouter(bc, ownerID)

	req := httptest.NewRequest(http.MethodPut, "/api/bookings/not-a-uuid/status",
		strings.NewReader(`{"status":"confirmed"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteBookingHandler(t *testing.T) {
	bc, store, ownerID, bookingID := seedController(models.BookingCancelled)
	router := testRouter(bc, ownerID)

	req := httptest.NewRequest(http.MethodDelete, "/api/bookings/"+bookingID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Nil(t, store.booking)
}

func TestDeleteBookingHandlerForbidden(t *testing.T) {
	bc, store, _, bookingID := seedController(models.BookingPending)
	router := testRouter(bc, uuid.New())

	req := httptest.NewRequest(http.MethodDelete, "/api/bookings/"+bookingID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotNil(t, store.booking)
}
