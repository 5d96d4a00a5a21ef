package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyGoal holds a user's daily targets. At most one row per user; all
// targets are optional so users can track only what they care about.
type DailyGoal struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Calories  *int      `json:"calories"`
	ProteinG  *float64  `gorm:"type:numeric(6,2)" json:"protein_g"`
	CarbsG    *float64  `gorm:"type:numeric(6,2)" json:"carbs_g"`
	FatG      *float64  `gorm:"type:numeric(6,2)" json:"fat_g"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (g *DailyGoal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
