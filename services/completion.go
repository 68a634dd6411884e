// services/completion.go
package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"saloonhub-backend/models"
	"saloonhub-backend/repository"
)

// CompletionService periodically marks confirmed bookings whose scheduled
// time has passed as completed. Each sweep acts as the owning saloon's
// account so it goes through the same authorization and state-machine
// guards as a manual transition; there is no bypass path. Losing a race
// against a concurrent manual transition is fine: the booking is simply
// skipped this sweep.
type CompletionService struct {
	bookings  repository.BookingStore
	lifecycle *Lifecycle
	schedule  string
	logger    *zap.Logger
}

func NewCompletionService(bookings repository.BookingStore, lifecycle *Lifecycle, schedule string, logger *zap.Logger) *CompletionService {
	return &CompletionService{
		bookings:  bookings,
		lifecycle: lifecycle,
		schedule:  schedule,
		logger:    logger,
	}
}

func (s *CompletionService) StartScheduler() (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(s.schedule, func() {
		s.SweepOnce(context.Background())
	}); err != nil {
		return nil, err
	}
	c.Start()
	s.logger.Info("completion scheduler started", zap.String("schedule", s.schedule))
	return c, nil
}

// SweepOnce completes every confirmed booking scheduled before now.
func (s *CompletionService) SweepOnce(ctx context.Context) {
	bookings, err := s.bookings.ListPastDueConfirmed(ctx, time.Now())
	if err != nil {
		s.logger.Error("completion sweep query failed", zap.Error(err))
		return
	}

	completed := 0
	for _, booking := range bookings {
		saloon, err := s.bookings.GetSaloon(ctx, booking.SaloonID)
		if err != nil {
			s.logger.Warn("completion sweep: saloon lookup failed",
				zap.String("bookingId", booking.ID.String()), zap.Error(err))
			continue
		}
		if _, err := s.lifecycle.Transition(ctx, booking.ID, models.BookingCompleted, saloon.OwnerAccountID); err != nil {
			s.logger.Warn("completion sweep: transition failed",
				zap.String("bookingId", booking.ID.String()), zap.Error(err))
			continue
		}
		completed++
	}

	if len(bookings) > 0 {
		s.logger.Info("completion sweep finished",
			zap.Int("candidates", len(bookings)),
			zap.Int("completed", completed))
	}
}
