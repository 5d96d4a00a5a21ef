package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User owns every other row in the system. Deleting a user removes all
// of their categories, diary entries, custom foods, meals and goals.
type User struct {
	ID                  string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email               string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash        string    `gorm:"size:255;not null" json:"-"`
	OnboardingCompleted bool      `gorm:"not null;default:false" json:"onboarding_completed"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
