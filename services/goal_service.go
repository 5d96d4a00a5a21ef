package services

import (
	"errors"
	"fmt"

	"macrotrack-backend/models"

	"gorm.io/gorm"
)

const (
	minCalorieGoal = 500
	maxCalorieGoal = 10000
)

type GoalService struct {
	db *gorm.DB
}

func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db}
}

// GetGoals returns the user's goal row, or nil when none is set.
func (s *GoalService) GetGoals(userID string) (*models.DailyGoal, error) {
	var goal models.DailyGoal
	err := s.db.Where("user_id = ?", userID).First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &goal, nil
}

// SetGoals upserts the user's targets and marks onboarding complete.
// Nil fields leave the stored value untouched.
func (s *GoalService) SetGoals(userID string, calories *int, proteinG, carbsG, fatG *float64) (*models.DailyGoal, error) {
	if calories != nil && (*calories < minCalorieGoal || *calories > maxCalorieGoal) {
		return nil, fmt.Errorf("%w: calories must be between %d and %d", ErrInvalidInput, minCalorieGoal, maxCalorieGoal)
	}
	for _, m := range []struct {
		value *float64
		name  string
	}{
		{proteinG, "protein"},
		{carbsG, "carbs"},
		{fatG, "fat"},
	} {
		if m.value != nil && *m.value < 0 {
			return nil, fmt.Errorf("%w: %s cannot be negative", ErrInvalidInput, m.name)
		}
	}

	goal, err := s.GetGoals(userID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if goal == nil {
			goal = &models.DailyGoal{
				UserID:   userID,
				Calories: calories,
				ProteinG: proteinG,
				CarbsG:   carbsG,
				FatG:     fatG,
			}
			if err := tx.Create(goal).Error; err != nil {
				return err
			}
		} else {
			if calories != nil {
				goal.Calories = calories
			}
			if proteinG != nil {
				goal.ProteinG = proteinG
			}
			if carbsG != nil {
				goal.CarbsG = carbsG
			}
			if fatG != nil {
				goal.FatG = fatG
			}
			if err := tx.Save(goal).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.User{}).
			Where("id = ? AND onboarding_completed = ?", userID, false).
			Update("onboarding_completed", true).Error
	})
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) DeleteGoals(userID string) error {
	goal, err := s.GetGoals(userID)
	if err != nil {
		return err
	}
	if goal == nil {
		return fmt.Errorf("%w: goals", ErrNotFound)
	}
	return s.db.Delete(goal).Error
}

// SkipOnboarding marks onboarding complete without setting any targets.
func (s *GoalService) SkipOnboarding(userID string) error {
	result := s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("onboarding_completed", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user", ErrNotFound)
	}
	return nil
}
