// services/lifecycle.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"saloonhub-backend/models"
	"saloonhub-backend/repository"
)

// Notifier delivers a "booking status changed" event to the customer and
// the saloon. Delivery is at-most-once: the lifecycle never waits on it and
// a failure never rolls back a transition.
type Notifier interface {
	BookingStatusChanged(booking *models.Booking, saloon *models.Saloon) error
}

// Lifecycle owns the booking state machine: which status changes are legal,
// who may request them, and the notification side effect attached to each
// applied transition.
type Lifecycle struct {
	bookings repository.BookingStore
	notifier Notifier
	logger   *zap.Logger
}

func NewLifecycle(bookings repository.BookingStore, notifier Notifier, logger *zap.Logger) *Lifecycle {
	return &Lifecycle{
		bookings: bookings,
		notifier: notifier,
		logger:   logger,
	}
}

// Transition moves a booking to the requested status on behalf of the
// acting account. Only the owner of the booking's saloon may transition.
// Requesting the booking's current status is a successful no-op: nothing is
// written and no notification is sent. Everything not in the transition
// table fails with ErrInvalidTransition, including any move out of a
// terminal status.
func (l *Lifecycle) Transition(ctx context.Context, bookingID uuid.UUID, requested models.BookingStatus, actorID uuid.UUID) (*models.Booking, error) {
	if !requested.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, requested)
	}

	booking, err := l.bookings.Get(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
		}
		return nil, err
	}

	saloon, err := l.bookings.GetSaloon(ctx, booking.SaloonID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: saloon %s", ErrNotFound, booking.SaloonID)
		}
		return nil, err
	}
	if saloon.OwnerAccountID != actorID {
		return nil, fmt.Errorf("%w: account %s does not own saloon %s", ErrForbidden, actorID, saloon.ID)
	}

	if requested == booking.Status {
		return booking, nil
	}
	if !models.CanTransition(booking.Status, requested) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, requested)
	}

	updated, err := l.bookings.UpdateStatus(ctx, bookingID, booking.Status, requested)
	if err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			// A concurrent transition won; our read is stale.
			return nil, fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
		}
		return nil, err
	}

	l.dispatchNotification(updated, saloon)

	return updated, nil
}

// Delete permanently removes a booking. Allowed for the saloon owner and
// for the account that made the booking, in any status including terminal
// ones. There is no tombstone.
func (l *Lifecycle) Delete(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID) error {
	booking, err := l.bookings.Get(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
		}
		return err
	}

	saloon, err := l.bookings.GetSaloon(ctx, booking.SaloonID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: saloon %s", ErrNotFound, booking.SaloonID)
		}
		return err
	}

	isOwner := saloon.OwnerAccountID == actorID
	isCustomer := booking.AccountID != nil && *booking.AccountID == actorID
	if !isOwner && !isCustomer {
		return fmt.Errorf("%w: account %s may not delete booking %s", ErrForbidden, actorID, bookingID)
	}

	return l.bookings.Delete(ctx, bookingID)
}

// dispatchNotification fires the status-changed event without awaiting it.
// A notification outage must never fail the transition that triggered it.
func (l *Lifecycle) dispatchNotification(booking *models.Booking, saloon *models.Saloon) {
	if l.notifier == nil {
		return
	}
	go func() {
		if err := l.notifier.BookingStatusChanged(booking, saloon); err != nil {
			l.logger.Warn("booking notification failed",
				zap.String("bookingId", booking.ID.String()),
				zap.String("status", string(booking.Status)),
				zap.Error(err))
		}
	}()
}
