package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomFood is a user-private food row, invisible to other users. Same
// nutrition shape as FoodItem.
type CustomFood struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string    `gorm:"type:uuid;index;not null" json:"user_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Brand       *string   `gorm:"size:255" json:"brand"`
	ServingSize float64   `gorm:"type:numeric(8,2);not null" json:"serving_size"`
	ServingUnit string    `gorm:"size:50;not null" json:"serving_unit"`
	Calories    int       `gorm:"not null" json:"calories"`
	ProteinG    float64   `gorm:"type:numeric(6,2);not null" json:"protein_g"`
	CarbsG      float64   `gorm:"type:numeric(6,2);not null" json:"carbs_g"`
	FatG        float64   `gorm:"type:numeric(6,2);not null" json:"fat_g"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (f *CustomFood) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
