package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"macrotrack-backend/models"

	"gorm.io/gorm"
)

const maxMealNameLength = 100

type CustomMealService struct {
	db *gorm.DB
}

func NewCustomMealService(db *gorm.DB) *CustomMealService {
	return &CustomMealService{db: db}
}

type MealItemInput struct {
	FoodID   string  `json:"food_id"`
	Quantity float64 `json:"quantity"`
}

type MealItemView struct {
	FoodID   string  `json:"food_id"`
	FoodName string  `json:"food_name"`
	Quantity float64 `json:"quantity"`
	Calories int     `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	IsDeleted bool   `json:"is_deleted"`
}

type CustomMealView struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Items     []MealItemView `json:"items"`
	Totals    MacroTotals    `json:"totals"`
	CreatedAt time.Time      `json:"created_at"`
}

// validateMealFood checks the item's food reference. The CustomFood
// branch is ownership-checked here: a meal may reference any shared
// FoodItem but only the caller's own custom foods.
func (s *CustomMealService) validateMealFood(foodID, userID string) (bool, error) {
	var custom models.CustomFood
	err := s.db.
		Where("id = ? AND user_id = ?", foodID, userID).
		First(&custom).Error
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	var item models.FoodItem
	err = s.db.Where("id = ?", foodID).First(&item).Error
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return false, nil
}

func validateMealName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: meal name is required", ErrInvalidInput)
	}
	if len(name) > maxMealNameLength {
		return "", fmt.Errorf("%w: meal name must be %d characters or less", ErrInvalidInput, maxMealNameLength)
	}
	return name, nil
}

func (s *CustomMealService) validateItems(userID string, items []MealItemInput) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: meal must contain at least one food item", ErrInvalidInput)
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
		}
		ok, err := s.validateMealFood(item.FoodID, userID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: one or more food items", ErrNotFound)
		}
	}
	return nil
}

// CreateCustomMeal creates a meal preset and its items in one
// transaction.
func (s *CustomMealService) CreateCustomMeal(userID, name string, items []MealItemInput) (*models.CustomMeal, error) {
	name, err := validateMealName(name)
	if err != nil {
		return nil, err
	}
	if err := s.validateItems(userID, items); err != nil {
		return nil, err
	}

	meal := &models.CustomMeal{
		UserID:    userID,
		Name:      name,
		IsDeleted: false,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(meal).Error; err != nil {
			return err
		}
		for _, item := range items {
			mealItem := &models.CustomMealItem{
				MealID:   meal.ID,
				FoodID:   item.FoodID,
				Quantity: item.Quantity,
			}
			if err := tx.Create(mealItem).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetCustomMeal(userID, meal.ID)
}

// GetCustomMeals lists the user's meals, excluding soft-deleted ones.
func (s *CustomMealService) GetCustomMeals(userID string) ([]models.CustomMeal, error) {
	var meals []models.CustomMeal
	err := s.db.
		Preload("Items").
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("name").
		Find(&meals).Error
	return meals, err
}

func (s *CustomMealService) GetCustomMeal(userID, mealID string) (*models.CustomMeal, error) {
	var meal models.CustomMeal
	err := s.db.
		Preload("Items").
		Where("id = ? AND user_id = ? AND is_deleted = ?", mealID, userID, false).
		First(&meal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: custom meal", ErrNotFound)
		}
		return nil, err
	}
	return &meal, nil
}

// UpdateCustomMeal renames a meal and/or replaces its item list. A new
// item list is a full replace: old rows deleted, new rows inserted, all
// in one transaction.
func (s *CustomMealService) UpdateCustomMeal(userID, mealID string, name *string, items []MealItemInput) (*models.CustomMeal, error) {
	meal, err := s.GetCustomMeal(userID, mealID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		newName, err := validateMealName(*name)
		if err != nil {
			return nil, err
		}
		meal.Name = newName
	}

	if items != nil {
		if err := s.validateItems(userID, items); err != nil {
			return nil, err
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(meal).Error; err != nil {
			return err
		}
		if items == nil {
			return nil
		}
		if err := tx.
			Where("meal_id = ?", meal.ID).
			Delete(&models.CustomMealItem{}).Error; err != nil {
			return err
		}
		for _, item := range items {
			mealItem := &models.CustomMealItem{
				MealID:   meal.ID,
				FoodID:   item.FoodID,
				Quantity: item.Quantity,
			}
			if err := tx.Create(mealItem).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetCustomMeal(userID, mealID)
}

// DeleteCustomMeal soft-deletes the meal; item rows stay until the user
// account goes away, and diary entries created from the meal are
// untouched.
func (s *CustomMealService) DeleteCustomMeal(userID, mealID string) error {
	meal, err := s.GetCustomMeal(userID, mealID)
	if err != nil {
		return err
	}
	meal.IsDeleted = true
	return s.db.Save(meal).Error
}

// MealTotals sums item macros, skipping items whose food no longer
// resolves.
func (s *CustomMealService) MealTotals(meal *models.CustomMeal) MacroTotals {
	var totals MacroTotals
	for _, item := range meal.Items {
		food := resolveFood(s.db, item.FoodID)
		if food == nil {
			continue
		}
		m := EntryMacros(food, item.Quantity)
		totals.Calories += m.Calories
		totals.ProteinG += m.ProteinG
		totals.CarbsG += m.CarbsG
		totals.FatG += m.FatG
	}
	totals.ProteinG = round2(totals.ProteinG)
	totals.CarbsG = round2(totals.CarbsG)
	totals.FatG = round2(totals.FatG)
	return totals
}

// MealView builds the presentation record for a meal: per-item macros,
// deleted placeholders for vanished foods, and computed totals.
func (s *CustomMealService) MealView(meal *models.CustomMeal) CustomMealView {
	items := make([]MealItemView, 0, len(meal.Items))
	for _, item := range meal.Items {
		food := resolveFood(s.db, item.FoodID)
		if food == nil {
			items = append(items, MealItemView{
				FoodID:    item.FoodID,
				FoodName:  DeletedFoodName,
				Quantity:  item.Quantity,
				IsDeleted: true,
			})
			continue
		}
		m := EntryMacros(food, item.Quantity)
		items = append(items, MealItemView{
			FoodID:   food.ID,
			FoodName: food.Name,
			Quantity: item.Quantity,
			Calories: m.Calories,
			ProteinG: round2(m.ProteinG),
			CarbsG:   round2(m.CarbsG),
			FatG:     round2(m.FatG),
		})
	}
	return CustomMealView{
		ID:        meal.ID,
		Name:      meal.Name,
		Items:     items,
		Totals:    s.MealTotals(meal),
		CreatedAt: meal.CreatedAt,
	}
}
