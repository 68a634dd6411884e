package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account is the internal record for one externally-verified person.
// ExternalID is the identity provider's stable user id; it is nullable so
// that accounts imported by other means can be adopted (linked) on first
// contact. Exactly one non-service account created through the automatic
// promotion path may hold IsAdmin; the partial unique index
// uniq_accounts_auto_admin (created in config.Migrate) enforces that in the
// store rather than in application code.
type Account struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	ExternalID *string   `gorm:"type:text;uniqueIndex:uniq_accounts_external_id"`
	Email      string    `gorm:"uniqueIndex:uniq_accounts_email;not null"`
	Name       string    `gorm:"not null"`

	IsAdmin   bool `gorm:"not null;default:false"`
	IsService bool `gorm:"not null;default:false"`

	gorm.Model
}

func (a *Account) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
