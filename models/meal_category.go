package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MealCategory groups diary entries (Breakfast/Lunch/…). Name is unique
// per user; display_order is 1-based and only a sort key, ties allowed.
// The three default categories are created at registration and cannot be
// deleted.
type MealCategory struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string    `gorm:"type:uuid;index;not null" json:"user_id"`
	Name         string    `gorm:"size:50;not null" json:"name"`
	DisplayOrder int       `gorm:"not null" json:"display_order"`
	IsDefault    bool      `gorm:"not null;default:false" json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (c *MealCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
