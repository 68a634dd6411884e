package services

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"saloonhub-backend/models"
)

func newCompletionService(store *stubBookingStore) *CompletionService {
	lifecycle := NewLifecycle(store, nil, zap.NewNop())
	return NewCompletionService(store, lifecycle, "*/15 * * * *", zap.NewNop())
}

func TestSweepCompletesPastDueConfirmed(t *testing.T) {
	store := newStubBookingStore()
	bookingID, _, _ := seedBooking(store, models.BookingConfirmed)
	store.bookings[bookingID].ScheduledAt = time.Now().Add(-time.Hour)
	svc := newCompletionService(store)

	svc.SweepOnce(context.Background())

	got, err := store.Get(context.Background(), bookingID)
	if err != nil {
		t.Fatalf("booking vanished: %v", err)
	}
	if got.Status != models.BookingCompleted {
		t.Fatalf("past-due confirmed booking should be completed, got %s", got.Status)
	}
	if store.writes != 1 {
		t.Fatalf("expected exactly one status write, got %d", store.writes)
	}
}

func TestSweepSkipsPendingAndFutureBookings(t *testing.T) {
	store := newStubBookingStore()
	pendingID, _, _ := seedBooking(store, models.BookingPending)
	store.bookings[pendingID].ScheduledAt = time.Now().Add(-time.Hour)
	futureID, _, _ := seedBooking(store, models.BookingConfirmed)
	store.bookings[futureID].ScheduledAt = time.Now().Add(time.Hour)
	svc := newCompletionService(store)

	svc.SweepOnce(context.Background())

	if got, _ := store.Get(context.Background(), pendingID); got.Status != models.BookingPending {
		t.Fatalf("past-due pending booking must be left alone, got %s", got.Status)
	}
	if got, _ := store.Get(context.Background(), futureID); got.Status != models.BookingConfirmed {
		t.Fatalf("future confirmed booking must be left alone, got %s", got.Status)
	}
	if store.writes != 0 {
		t.Fatalf("expected no status writes, got %d", store.writes)
	}
}

// staleListStore returns a booking from the candidate list even though its
// stored status already moved on, standing in for a manual transition that
// lands between the sweep's list and its write.
type staleListStore struct {
	*stubBookingStore
	stale []models.Booking
}

func (s *staleListStore) ListPastDueConfirmed(ctx context.Context, before time.Time) ([]models.Booking, error) {
	return s.stale, nil
}

func TestSweepGoesThroughStateMachineGuard(t *testing.T) {
	inner := newStubBookingStore()
	bookingID, _, _ := seedBooking(inner, models.BookingCancelled)
	inner.bookings[bookingID].ScheduledAt = time.Now().Add(-time.Hour)
	store := &staleListStore{
		stubBookingStore: inner,
		stale:            []models.Booking{*inner.bookings[bookingID]},
	}
	lifecycle := NewLifecycle(store, nil, zap.NewNop())
	svc := NewCompletionService(store, lifecycle, "*/15 * * * *", zap.NewNop())

	svc.SweepOnce(context.Background())

	got, _ := inner.Get(context.Background(), bookingID)
	if got.Status != models.BookingCancelled {
		t.Fatalf("sweep must not force a cancelled booking to completed, got %s", got.Status)
	}
	if inner.writes != 0 {
		t.Fatalf("guard must reject the write, got %d writes", inner.writes)
	}
}
