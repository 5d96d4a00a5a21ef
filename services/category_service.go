package services

import (
	"errors"
	"fmt"
	"strings"

	"macrotrack-backend/models"

	"gorm.io/gorm"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// GetCategories lists a user's categories ordered by display_order.
func (s *CategoryService) GetCategories(userID string) ([]models.MealCategory, error) {
	var categories []models.MealCategory
	err := s.db.
		Where("user_id = ?", userID).
		Order("display_order").
		Find(&categories).Error
	return categories, err
}

func (s *CategoryService) GetCategory(userID, categoryID string) (*models.MealCategory, error) {
	var category models.MealCategory
	err := s.db.
		Where("id = ? AND user_id = ?", categoryID, userID).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category", ErrNotFound)
		}
		return nil, err
	}
	return &category, nil
}

// CreateCategory adds a category. Names are unique per user
// (case-sensitive). A nil displayOrder places the category at the end.
func (s *CategoryService) CreateCategory(userID, name string, displayOrder *int) (*models.MealCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	var existing models.MealCategory
	err := s.db.
		Where("user_id = ? AND name = ?", userID, name).
		First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: category '%s' already exists", ErrConflict, name)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	order := 1
	if displayOrder != nil {
		order = *displayOrder
	} else {
		var max models.MealCategory
		err := s.db.
			Where("user_id = ?", userID).
			Order("display_order DESC").
			First(&max).Error
		if err == nil {
			order = max.DisplayOrder + 1
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	category := &models.MealCategory{
		UserID:       userID,
		Name:         name,
		DisplayOrder: order,
		IsDefault:    false,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory renames and/or reorders one category. Display order is
// just a sort key, so no uniqueness is enforced on it.
func (s *CategoryService) UpdateCategory(userID, categoryID string, name *string, displayOrder *int) (*models.MealCategory, error) {
	category, err := s.GetCategory(userID, categoryID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		newName := strings.TrimSpace(*name)
		if newName == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		if newName != category.Name {
			var existing models.MealCategory
			err := s.db.
				Where("user_id = ? AND name = ? AND id <> ?", userID, newName, categoryID).
				First(&existing).Error
			if err == nil {
				return nil, fmt.Errorf("%w: category '%s' already exists", ErrConflict, newName)
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			category.Name = newName
		}
	}

	if displayOrder != nil {
		category.DisplayOrder = *displayOrder
	}

	if err := s.db.Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category. A category with diary entries is
// rejected before the default check so the caller sees the more
// actionable error first.
func (s *CategoryService) DeleteCategory(userID, categoryID string) error {
	category, err := s.GetCategory(userID, categoryID)
	if err != nil {
		return err
	}

	var entryCount int64
	if err := s.db.Model(&models.DiaryEntry{}).
		Where("category_id = ?", categoryID).
		Count(&entryCount).Error; err != nil {
		return err
	}
	if entryCount > 0 {
		return fmt.Errorf("%w: category has %d diary entries, move or delete them first", ErrConflict, entryCount)
	}

	if category.IsDefault {
		return fmt.Errorf("%w: cannot delete default category", ErrForbidden)
	}

	return s.db.Delete(category).Error
}

// ReorderCategories assigns 1-based display orders by list position. The
// provided IDs must be exactly the caller's category set: nothing
// missing, nothing extra, no duplicates.
func (s *CategoryService) ReorderCategories(userID string, categoryIDs []string) error {
	categories, err := s.GetCategories(userID)
	if err != nil {
		return err
	}

	existing := make(map[string]*models.MealCategory, len(categories))
	for i := range categories {
		existing[categories[i].ID] = &categories[i]
	}

	provided := make(map[string]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		provided[id] = true
	}

	if len(categoryIDs) != len(provided) {
		return fmt.Errorf("%w: duplicate category ids in reorder list", ErrInvalidInput)
	}

	missing, extra := 0, 0
	for id := range existing {
		if !provided[id] {
			missing++
		}
	}
	for id := range provided {
		if _, ok := existing[id]; !ok {
			extra++
		}
	}
	if missing > 0 || extra > 0 {
		return fmt.Errorf("%w: invalid category list (missing: %d, unknown: %d)", ErrInvalidInput, missing, extra)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for index, id := range categoryIDs {
			category := existing[id]
			category.DisplayOrder = index + 1
			if err := tx.Save(category).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
