package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"macrotrack-backend/models"

	"gorm.io/gorm"
)

// DeletedFoodName is shown for entries whose food no longer resolves.
const DeletedFoodName = "[Deleted Food]"

const maxFutureEntryDays = 365

type DiaryService struct {
	db *gorm.DB
}

func NewDiaryService(db *gorm.DB) *DiaryService {
	return &DiaryService{db: db}
}

// FoodSnapshot is the resolved nutrition record behind a diary entry or
// meal item, regardless of which table it came from.
type FoodSnapshot struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Brand       *string `json:"brand"`
	ServingSize float64 `json:"serving_size"`
	ServingUnit string  `json:"serving_unit"`
	Calories    int     `json:"calories"`
	ProteinG    float64 `json:"protein_g"`
	CarbsG      float64 `json:"carbs_g"`
	FatG        float64 `json:"fat_g"`
}

type MacroTotals struct {
	Calories int     `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

type GoalSnapshot struct {
	Calories *int     `json:"calories"`
	ProteinG *float64 `json:"protein_g"`
	CarbsG   *float64 `json:"carbs_g"`
	FatG     *float64 `json:"fat_g"`
}

type DiaryEntryView struct {
	ID       string       `json:"id"`
	Food     FoodSnapshot `json:"food"`
	Quantity float64      `json:"quantity"`
}

type DiaryCategoryView struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	DisplayOrder int              `json:"display_order"`
	IsDefault    bool             `json:"is_default"`
	Entries      []DiaryEntryView `json:"entries"`
}

type DiaryView struct {
	Date       string              `json:"date"`
	Categories []DiaryCategoryView `json:"categories"`
	Totals     MacroTotals         `json:"totals"`
	Goals      *GoalSnapshot       `json:"goals"`
}

// InlineFoodInput is raw nutrition data supplied with a diary-add
// request in place of a food_id.
type InlineFoodInput struct {
	Name        string  `json:"name"`
	Brand       *string `json:"brand"`
	ServingSize float64 `json:"serving_size"`
	ServingUnit string  `json:"serving_unit"`
	Calories    int     `json:"calories"`
	ProteinG    float64 `json:"protein_g"`
	CarbsG      float64 `json:"carbs_g"`
	FatG        float64 `json:"fat_g"`
}

// DateOnly truncates a timestamp to midnight UTC so diary dates compare
// by calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// resolveFood probes CustomFood first, then the shared FoodItem table.
// Returns nil when neither table holds the id. No ownership check here:
// foods already referenced by entries must keep resolving for any user.
func resolveFood(db *gorm.DB, foodID string) *FoodSnapshot {
	var custom models.CustomFood
	if err := db.Where("id = ?", foodID).First(&custom).Error; err == nil {
		return &FoodSnapshot{
			ID:          custom.ID,
			Name:        custom.Name,
			Brand:       custom.Brand,
			ServingSize: custom.ServingSize,
			ServingUnit: custom.ServingUnit,
			Calories:    custom.Calories,
			ProteinG:    custom.ProteinG,
			CarbsG:      custom.CarbsG,
			FatG:        custom.FatG,
		}
	}

	var item models.FoodItem
	if err := db.Where("id = ?", foodID).First(&item).Error; err == nil {
		return &FoodSnapshot{
			ID:          item.ID,
			Name:        item.Name,
			Brand:       item.Brand,
			ServingSize: item.ServingSize,
			ServingUnit: item.ServingUnit,
			Calories:    item.Calories,
			ProteinG:    item.ProteinG,
			CarbsG:      item.CarbsG,
			FatG:        item.FatG,
		}
	}
	return nil
}

func deletedFoodSnapshot(foodID string) FoodSnapshot {
	return FoodSnapshot{ID: foodID, Name: DeletedFoodName}
}

// EntryMacros scales a food's per-serving values by quantity. Calories
// truncate to an integer; gram macros stay unrounded until presentation.
func EntryMacros(food *FoodSnapshot, quantity float64) MacroTotals {
	return MacroTotals{
		Calories: int(float64(food.Calories) * quantity),
		ProteinG: food.ProteinG * quantity,
		CarbsG:   food.CarbsG * quantity,
		FatG:     food.FatG * quantity,
	}
}

func (s *DiaryService) entryView(entry *models.DiaryEntry) DiaryEntryView {
	food := resolveFood(s.db, entry.FoodID)
	if food == nil {
		return DiaryEntryView{
			ID:       entry.ID,
			Food:     deletedFoodSnapshot(entry.FoodID),
			Quantity: entry.Quantity,
		}
	}
	return DiaryEntryView{ID: entry.ID, Food: *food, Quantity: entry.Quantity}
}

// dailyTotals sums macros across entries. Entries whose food no longer
// resolves contribute zero instead of failing the read.
func (s *DiaryService) dailyTotals(entries []models.DiaryEntry) MacroTotals {
	var totals MacroTotals
	for _, entry := range entries {
		food := resolveFood(s.db, entry.FoodID)
		if food == nil {
			continue
		}
		m := EntryMacros(food, entry.Quantity)
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

// GetDiary returns the read-only diary projection for one date:
// categories in display order with their entries, daily totals and the
// goal snapshot if one exists.
func (s *DiaryService) GetDiary(userID string, date time.Time) (*DiaryView, error) {
	date = DateOnly(date)

	var categories []models.MealCategory
	if err := s.db.
		Where("user_id = ?", userID).
		Order("display_order").
		Find(&categories).Error; err != nil {
		return nil, err
	}

	var entries []models.DiaryEntry
	if err := s.db.
		Where("user_id = ? AND entry_date = ?", userID, date).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	grouped := make(map[string][]models.DiaryEntry)
	for _, entry := range entries {
		grouped[entry.CategoryID] = append(grouped[entry.CategoryID], entry)
	}

	categoryViews := make([]DiaryCategoryView, 0, len(categories))
	for _, category := range categories {
		catEntries := grouped[category.ID]
		sort.SliceStable(catEntries, func(i, j int) bool {
			return catEntries[i].CreatedAt.Before(catEntries[j].CreatedAt)
		})
		views := make([]DiaryEntryView, 0, len(catEntries))
		for i := range catEntries {
			views = append(views, s.entryView(&catEntries[i]))
		}
		categoryViews = append(categoryViews, DiaryCategoryView{
			ID:           category.ID,
			Name:         category.Name,
			DisplayOrder: category.DisplayOrder,
			IsDefault:    category.IsDefault,
			Entries:      views,
		})
	}

	view := &DiaryView{
		Date:       date.Format("2006-01-02"),
		Categories: categoryViews,
		Totals:     s.dailyTotals(entries),
	}

	var goal models.DailyGoal
	err := s.db.Where("user_id = ?", userID).First(&goal).Error
	if err == nil {
		view.Goals = &GoalSnapshot{
			Calories: goal.Calories,
			ProteinG: goal.ProteinG,
			CarbsG:   goal.CarbsG,
			FatG:     goal.FatG,
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return view, nil
}

func validateEntryDate(entryDate time.Time) bool {
	max := DateOnly(time.Now()).AddDate(0, 0, maxFutureEntryDays)
	return !DateOnly(entryDate).After(max)
}

// AddEntry validates and inserts one diary entry.
func (s *DiaryService) AddEntry(userID string, entryDate time.Time, categoryID, foodID string, quantity float64) (*models.DiaryEntry, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	if !validateEntryDate(entryDate) {
		return nil, fmt.Errorf("%w: entry date cannot be more than 1 year in the future", ErrInvalidInput)
	}

	var category models.MealCategory
	if err := s.db.
		Where("id = ? AND user_id = ?", categoryID, userID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category", ErrNotFound)
		}
		return nil, err
	}

	if resolveFood(s.db, foodID) == nil {
		return nil, fmt.Errorf("%w: food", ErrNotFound)
	}

	entry := &models.DiaryEntry{
		UserID:     userID,
		CategoryID: categoryID,
		FoodID:     foodID,
		EntryDate:  DateOnly(entryDate),
		Quantity:   quantity,
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateEntry applies a partial update of quantity and/or category.
func (s *DiaryService) UpdateEntry(userID, entryID string, quantity *float64, categoryID *string) (*models.DiaryEntry, error) {
	var entry models.DiaryEntry
	if err := s.db.
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: entry", ErrNotFound)
		}
		return nil, err
	}

	if quantity != nil {
		if *quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
		}
		entry.Quantity = *quantity
	}

	if categoryID != nil {
		var category models.MealCategory
		if err := s.db.
			Where("id = ? AND user_id = ?", *categoryID, userID).
			First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: category", ErrNotFound)
			}
			return nil, err
		}
		entry.CategoryID = *categoryID
	}

	if err := s.db.Save(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteEntry hard-deletes an entry owned by the caller.
func (s *DiaryService) DeleteEntry(userID, entryID string) error {
	var entry models.DiaryEntry
	if err := s.db.
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: entry", ErrNotFound)
		}
		return err
	}
	return s.db.Delete(&entry).Error
}

// CreateInlineFood writes a shared FoodItem row from raw nutrition data.
// This is the one path where a per-user action inserts into the global
// food table.
func (s *DiaryService) CreateInlineFood(userID string, input InlineFoodInput) (*models.FoodItem, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: food name is required", ErrInvalidInput)
	}
	if input.ServingSize <= 0 {
		return nil, fmt.Errorf("%w: serving size must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(input.ServingUnit) == "" {
		return nil, fmt.Errorf("%w: serving unit is required", ErrInvalidInput)
	}
	if input.Calories < 0 || input.ProteinG < 0 || input.CarbsG < 0 || input.FatG < 0 {
		return nil, fmt.Errorf("%w: nutrition values cannot be negative", ErrInvalidInput)
	}

	food := &models.FoodItem{
		Name:            strings.TrimSpace(input.Name),
		Brand:           input.Brand,
		ServingSize:     input.ServingSize,
		ServingUnit:     strings.TrimSpace(input.ServingUnit),
		Calories:        input.Calories,
		ProteinG:        input.ProteinG,
		CarbsG:          input.CarbsG,
		FatG:            input.FatG,
		Source:          models.FoodSourceCustom,
		CreatedByUserID: &userID,
	}
	if err := s.db.Create(food).Error; err != nil {
		return nil, err
	}
	return food, nil
}

// AddMealToDiary expands a custom meal into one diary entry per item.
// The whole loop runs in a single transaction: a validation failure on
// any item inserts nothing.
func (s *DiaryService) AddMealToDiary(userID string, entryDate time.Time, mealID, categoryID string) ([]DiaryEntryView, error) {
	var meal models.CustomMeal
	if err := s.db.
		Preload("Items").
		Where("id = ? AND user_id = ? AND is_deleted = ?", mealID, userID, false).
		First(&meal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: custom meal", ErrNotFound)
		}
		return nil, err
	}

	var views []DiaryEntryView
	err := s.db.Transaction(func(tx *gorm.DB) error {
		txSvc := NewDiaryService(tx)
		for _, item := range meal.Items {
			entry, err := txSvc.AddEntry(userID, entryDate, categoryID, item.FoodID, item.Quantity)
			if err != nil {
				return err
			}
			views = append(views, txSvc.entryView(entry))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}
