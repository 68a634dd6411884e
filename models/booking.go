package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// legalTransitions is the full transition table. Terminal states have no
// entry: nothing moves out of completed or cancelled.
var legalTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// CanTransition reports whether the status may move from one value to
// another. It is strict: from == to is not a transition and returns false;
// the idempotent no-op is the lifecycle service's concern.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Booking is one scheduled appointment for an offering at a saloon. The
// customer is either a linked Account or the anonymous name/email/phone
// triple. TotalAmount is fixed at creation and never recomputed by status
// transitions.
type Booking struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	SaloonID   uuid.UUID `gorm:"type:uuid;index;not null"`
	OfferingID uuid.UUID `gorm:"type:uuid;index;not null"`

	AccountID     *uuid.UUID `gorm:"type:uuid;index"`
	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	ScheduledAt time.Time `gorm:"index;not null"`
	TotalAmount float64   `gorm:"type:decimal(10,2);not null"`
	Notes       string

	Status BookingStatus `gorm:"type:varchar(20);not null;default:'pending'"`

	gorm.Model
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = BookingPending
	}
	return
}
