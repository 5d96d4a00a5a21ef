package services

import (
	"errors"
	"fmt"
	"strings"

	"macrotrack-backend/models"

	"gorm.io/gorm"
)

type CustomFoodService struct {
	db *gorm.DB
}

func NewCustomFoodService(db *gorm.DB) *CustomFoodService {
	return &CustomFoodService{db: db}
}

type CustomFoodInput struct {
	Name        string  `json:"name"`
	Brand       *string `json:"brand"`
	ServingSize float64 `json:"serving_size"`
	ServingUnit string  `json:"serving_unit"`
	Calories    int     `json:"calories"`
	ProteinG    float64 `json:"protein_g"`
	CarbsG      float64 `json:"carbs_g"`
	FatG        float64 `json:"fat_g"`
}

// CustomFoodUpdate carries a partial update; nil fields are untouched.
type CustomFoodUpdate struct {
	Name        *string  `json:"name"`
	Brand       *string  `json:"brand"`
	ServingSize *float64 `json:"serving_size"`
	ServingUnit *string  `json:"serving_unit"`
	Calories    *int     `json:"calories"`
	ProteinG    *float64 `json:"protein_g"`
	CarbsG      *float64 `json:"carbs_g"`
	FatG        *float64 `json:"fat_g"`
}

func (s *CustomFoodService) CreateCustomFood(userID string, input CustomFoodInput) (*models.CustomFood, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: food name is required", ErrInvalidInput)
	}
	if input.ServingSize <= 0 {
		return nil, fmt.Errorf("%w: serving size must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(input.ServingUnit) == "" {
		return nil, fmt.Errorf("%w: serving unit is required", ErrInvalidInput)
	}
	if input.Calories < 0 {
		return nil, fmt.Errorf("%w: calories cannot be negative", ErrInvalidInput)
	}
	if input.ProteinG < 0 || input.CarbsG < 0 || input.FatG < 0 {
		return nil, fmt.Errorf("%w: macros cannot be negative", ErrInvalidInput)
	}

	var brand *string
	if input.Brand != nil {
		trimmed := strings.TrimSpace(*input.Brand)
		if trimmed != "" {
			brand = &trimmed
		}
	}

	food := &models.CustomFood{
		UserID:      userID,
		Name:        strings.TrimSpace(input.Name),
		Brand:       brand,
		ServingSize: input.ServingSize,
		ServingUnit: strings.TrimSpace(input.ServingUnit),
		Calories:    input.Calories,
		ProteinG:    input.ProteinG,
		CarbsG:      input.CarbsG,
		FatG:        input.FatG,
	}
	if err := s.db.Create(food).Error; err != nil {
		return nil, err
	}
	return food, nil
}

func (s *CustomFoodService) GetCustomFoods(userID string) ([]models.CustomFood, error) {
	var foods []models.CustomFood
	err := s.db.
		Where("user_id = ?", userID).
		Order("name").
		Find(&foods).Error
	return foods, err
}

func (s *CustomFoodService) GetCustomFood(userID, foodID string) (*models.CustomFood, error) {
	var food models.CustomFood
	err := s.db.
		Where("id = ? AND user_id = ?", foodID, userID).
		First(&food).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: custom food", ErrNotFound)
		}
		return nil, err
	}
	return &food, nil
}

func (s *CustomFoodService) UpdateCustomFood(userID, foodID string, update CustomFoodUpdate) (*models.CustomFood, error) {
	food, err := s.GetCustomFood(userID, foodID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: food name cannot be empty", ErrInvalidInput)
		}
		food.Name = name
	}
	if update.Brand != nil {
		trimmed := strings.TrimSpace(*update.Brand)
		if trimmed == "" {
			food.Brand = nil
		} else {
			food.Brand = &trimmed
		}
	}
	if update.ServingSize != nil {
		if *update.ServingSize <= 0 {
			return nil, fmt.Errorf("%w: serving size must be positive", ErrInvalidInput)
		}
		food.ServingSize = *update.ServingSize
	}
	if update.ServingUnit != nil {
		unit := strings.TrimSpace(*update.ServingUnit)
		if unit == "" {
			return nil, fmt.Errorf("%w: serving unit cannot be empty", ErrInvalidInput)
		}
		food.ServingUnit = unit
	}
	if update.Calories != nil {
		if *update.Calories < 0 {
			return nil, fmt.Errorf("%w: calories cannot be negative", ErrInvalidInput)
		}
		food.Calories = *update.Calories
	}
	if update.ProteinG != nil {
		if *update.ProteinG < 0 {
			return nil, fmt.Errorf("%w: protein cannot be negative", ErrInvalidInput)
		}
		food.ProteinG = *update.ProteinG
	}
	if update.CarbsG != nil {
		if *update.CarbsG < 0 {
			return nil, fmt.Errorf("%w: carbs cannot be negative", ErrInvalidInput)
		}
		food.CarbsG = *update.CarbsG
	}
	if update.FatG != nil {
		if *update.FatG < 0 {
			return nil, fmt.Errorf("%w: fat cannot be negative", ErrInvalidInput)
		}
		food.FatG = *update.FatG
	}

	if err := s.db.Save(food).Error; err != nil {
		return nil, err
	}
	return food, nil
}

func (s *CustomFoodService) DeleteCustomFood(userID, foodID string) error {
	food, err := s.GetCustomFood(userID, foodID)
	if err != nil {
		return err
	}
	return s.db.Delete(food).Error
}

// SearchCustomFoods matches by case-insensitive substring on name.
func (s *CustomFoodService) SearchCustomFoods(userID, query string) ([]models.CustomFood, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.CustomFood{}, nil
	}

	var foods []models.CustomFood
	err := s.db.
		Where("user_id = ? AND LOWER(name) LIKE ?", userID, "%"+strings.ToLower(query)+"%").
		Order("name").
		Find(&foods).Error
	return foods, err
}
