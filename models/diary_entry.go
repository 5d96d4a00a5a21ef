package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DiaryEntry is one logged food on a date under a meal category.
// FoodID references either food_items.id or custom_foods.id (resolved by
// the service layer). EntryDate is truncated to midnight UTC.
type DiaryEntry struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     string    `gorm:"type:uuid;index;not null" json:"user_id"`
	CategoryID string    `gorm:"type:uuid;index;not null" json:"category_id"`
	FoodID     string    `gorm:"type:uuid;not null" json:"food_id"`
	EntryDate  time.Time `gorm:"type:date;index;not null" json:"entry_date"`
	Quantity   float64   `gorm:"type:numeric(8,2);not null" json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (e *DiaryEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
