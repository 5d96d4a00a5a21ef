package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Source of a FoodItem row.
const (
	FoodSourceAPI           = "api"
	FoodSourceCustom        = "custom"
	FoodSourceMealComponent = "meal_component"
)

// FoodItem is a shared (global) food row. Rows come from the USDA API or
// from inline creation during diary entry; once created they are never
// deleted by user action. Nutrition values apply per one serving.
type FoodItem struct {
	ID              string    `gorm:"type:uuid;primaryKey" json:"id"`
	ExternalID      *string   `gorm:"size:50;index" json:"external_id"`
	Name            string    `gorm:"size:255;index;not null" json:"name"`
	Brand           *string   `gorm:"size:255" json:"brand"`
	ServingSize     float64   `gorm:"type:numeric(8,2);not null" json:"serving_size"`
	ServingUnit     string    `gorm:"size:20;not null" json:"serving_unit"`
	Calories        int       `gorm:"not null" json:"calories"`
	ProteinG        float64   `gorm:"type:numeric(6,2);not null" json:"protein_g"`
	CarbsG          float64   `gorm:"type:numeric(6,2);not null" json:"carbs_g"`
	FatG            float64   `gorm:"type:numeric(6,2);not null" json:"fat_g"`
	Source          string    `gorm:"size:20;not null;default:custom" json:"source"`
	CreatedByUserID *string   `gorm:"type:uuid" json:"created_by_user_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (f *FoodItem) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
