package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomMeal is a named, user-owned preset of (food, quantity) pairs.
// Deletion is soft (is_deleted) so diary entries created from the meal
// stay valid; item rows are hard-deleted with the meal.
type CustomMeal struct {
	ID        string           `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string           `gorm:"type:uuid;index;not null" json:"user_id"`
	Name      string           `gorm:"size:100;not null" json:"name"`
	IsDeleted bool             `gorm:"not null;default:false" json:"is_deleted"`
	Items     []CustomMealItem `gorm:"foreignKey:MealID" json:"items"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (m *CustomMeal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// CustomMealItem links a meal to a food. FoodID references either
// food_items.id or custom_foods.id; no foreign key on purpose, the
// service layer resolves it at read time.
type CustomMealItem struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	MealID    string    `gorm:"type:uuid;index;not null" json:"meal_id"`
	FoodID    string    `gorm:"type:uuid;not null" json:"food_id"`
	Quantity  float64   `gorm:"type:numeric(8,2);not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

func (i *CustomMealItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
