package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Offering is one bookable service a saloon sells.
type Offering struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	SaloonID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Name        string    `gorm:"not null"`
	Description string
	Price       float64 `gorm:"type:decimal(10,2);not null"`
	Duration    int     // in minutes
	Category    string  `gorm:"default:'General'"`
	IsActive    bool    `gorm:"default:true"`

	Bookings []Booking `gorm:"foreignKey:OfferingID"`
}

func (o *Offering) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}
