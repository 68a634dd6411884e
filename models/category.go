package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is part of the global, admin-curated taxonomy shared across all
// saloons. A nil ParentID marks a top-level category; sub-categories point
// at their parent.
type Category struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key"`
	Name     string     `gorm:"uniqueIndex;not null"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`
	IsActive bool       `gorm:"default:true"`

	gorm.Model
}

func (c *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
