package services

import (
	"errors"
	"fmt"

	"macrotrack-backend/models"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// DeleteAccount removes the user and everything they own in one
// transaction: diary entries, meal items, meals, custom foods,
// categories and goals. Shared FoodItem rows stay; other users' entries
// may still reference them.
func (s *UserService) DeleteAccount(userID string) error {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user", ErrNotFound)
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.DiaryEntry{}).Error; err != nil {
			return err
		}

		var mealIDs []string
		if err := tx.Model(&models.CustomMeal{}).
			Where("user_id = ?", userID).
			Pluck("id", &mealIDs).Error; err != nil {
			return err
		}
		if len(mealIDs) > 0 {
			if err := tx.Where("meal_id IN ?", mealIDs).Delete(&models.CustomMealItem{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.CustomMeal{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.CustomFood{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.MealCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.DailyGoal{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}
