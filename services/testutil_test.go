package services

import (
	"testing"

	"macrotrack-backend/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB returns a fresh in-memory database with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.MealCategory{},
		&models.FoodItem{},
		&models.CustomFood{},
		&models.CustomMeal{},
		&models.CustomMealItem{},
		&models.DiaryEntry{},
		&models.DailyGoal{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// registerTestUser creates a user through the normal registration path,
// default categories included.
func registerTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	user, _, _, err := NewAuthService(db).Register(email, "password1")
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return user
}

func createTestFood(t *testing.T, db *gorm.DB, userID, name string, calories int, protein, carbs, fat float64) *models.CustomFood {
	t.Helper()

	food, err := NewCustomFoodService(db).CreateCustomFood(userID, CustomFoodInput{
		Name:        name,
		ServingSize: 100,
		ServingUnit: "g",
		Calories:    calories,
		ProteinG:    protein,
		CarbsG:      carbs,
		FatG:        fat,
	})
	if err != nil {
		t.Fatalf("create food %s: %v", name, err)
	}
	return food
}

func defaultCategoryID(t *testing.T, db *gorm.DB, userID, name string) string {
	t.Helper()

	categories, err := NewCategoryService(db).GetCategories(userID)
	if err != nil {
		t.Fatalf("get categories: %v", err)
	}
	for _, c := range categories {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("category %s not found", name)
	return ""
}
