// Package repository wraps store access for the account-resolution and
// booking-lifecycle services behind narrow interfaces, classifying postgres
// uniqueness violations into sentinel errors the services can branch on.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"saloonhub-backend/models"
)

var (
	// ErrNotFound is returned when the referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateExternalID is returned when a create collides on the
	// account external-id uniqueness constraint.
	ErrDuplicateExternalID = errors.New("external id already registered")
	// ErrDuplicateEmail is returned when a create collides on the account
	// email uniqueness constraint.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrDuplicateAdmin is returned when a create collides on the partial
	// unique index that allows only one automatically promoted admin.
	ErrDuplicateAdmin = errors.New("automatic admin already exists")
	// ErrStaleStatus is returned when a conditional status update matched
	// no row because the booking's status changed underneath the caller.
	ErrStaleStatus = errors.New("booking status changed concurrently")
)

type AccountStore interface {
	GetByExternalID(ctx context.Context, externalID string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	// CountAutoAdmins counts admin accounts, excluding the synthetic
	// service account.
	CountAutoAdmins(ctx context.Context) (int64, error)
	Create(ctx context.Context, account *models.Account) error
	// LinkExternalID adopts an account that has no external id yet.
	LinkExternalID(ctx context.Context, accountID uuid.UUID, externalID string) error
}

type BookingStore interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	GetSaloon(ctx context.Context, id uuid.UUID) (*models.Saloon, error)
	// UpdateStatus persists the new status with a conditional update
	// (WHERE id = ? AND status = ?) and returns the refreshed booking.
	// It returns ErrStaleStatus when the predicate matched no row.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.BookingStatus) (*models.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListPastDueConfirmed returns confirmed bookings scheduled before
	// the given instant, the completion sweep's candidates.
	ListPastDueConfirmed(ctx context.Context, before time.Time) ([]models.Booking, error)
}
