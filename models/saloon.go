package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Saloon struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	OwnerAccountID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name    string `gorm:"not null"`
	Address string
	Phone   string

	WorkingHours JSONB `gorm:"type:jsonb;default:'{}'"`

	Offerings []Offering `gorm:"foreignKey:SaloonID"`
	Bookings  []Booking  `gorm:"foreignKey:SaloonID"`

	gorm.Model
}

func (s *Saloon) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// Custom JSONB type for working hours
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &j)
}
