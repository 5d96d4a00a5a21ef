package services

import (
	"errors"
	"testing"
)

func TestCreateCustomFoodValidation(t *testing.T) {
	db := openTestDB(t)
	user := registerTestUser(t, db, "alice@example.com")
	foodSvc := NewCustomFoodService(db)

	cases := []struct {
		name  string
		input CustomFoodInput
	}{
		{"empty name", CustomFoodInput{Name: " ", ServingSize: 100, ServingUnit: "g"}},
		{"zero serving size", CustomFoodInput{Name: "Rice", ServingSize: 0, ServingUnit: "g"}},
		{"empty serving unit", CustomFoodInput{Name: "Rice", ServingSize: 100, ServingUnit: ""}},
		{"negative calories", CustomFoodInput{Name: "Rice", ServingSize: 100, ServingUnit: "g", Calories: -1}},
		{"negative protein", CustomFoodInput{Name: "Rice", ServingSize: 100, ServingUnit: "g", ProteinG: -0.1}},
	}
	for _, tc := range cases {
		if _, err := foodSvc.CreateCustomFood(user.ID, tc.input); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestCustomFoodOwnership(t *testing.T) {
	db := openTestDB(t)
	alice := registerTestUser(t, db, "alice@example.com")
	bob := registerTestUser(t, db, "bob@example.com")
	foodSvc := NewCustomFoodService(db)

	food := createTestFood(t, db, alice.ID, "Oats", 150, 5, 27, 3)

	if _, err := foodSvc.GetCustomFood(bob.ID, food.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get: expected ErrNotFound for other user, got %v", err)
	}
	name := "Stolen"
	if _, err := foodSvc.UpdateCustomFood(bob.ID, food.ID, CustomFoodUpdate{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update: expected ErrNotFound for other user, got %v", err)
	}
	if err := foodSvc.DeleteCustomFood(bob.ID, food.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete: expected ErrNotFound for other user, got %v", err)
	}

	foods, err := foodSvc.GetCustomFoods(bob.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(foods) != 0 {
		t.Errorf("bob sees %d of alice's foods", len(foods))
	}
}

func TestUpdateCustomFoodPartial(t *testing.T) {
	db := openTestDB(t)
	user := registerTestUser(t, db, "alice@example.com")
	foodSvc := NewCustomFoodService(db)

	food := createTestFood(t, db, user.ID, "Oats", 150, 5, 27, 3)

	calories := 160
	updated, err := foodSvc.UpdateCustomFood(user.ID, food.ID, CustomFoodUpdate{Calories: &calories})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Calories != 160 {
		t.Errorf("calories = %d, want 160", updated.Calories)
	}
	if updated.Name != "Oats" || updated.ProteinG != 5 {
		t.Error("untouched fields changed")
	}

	// brand can be set and cleared
	brand := "QuickOats"
	updated, err = foodSvc.UpdateCustomFood(user.ID, food.ID, CustomFoodUpdate{Brand: &brand})
	if err != nil {
		t.Fatalf("set brand: %v", err)
	}
	if updated.Brand == nil || *updated.Brand != "QuickOats" {
		t.Error("brand not set")
	}
	empty := ""
	updated, err = foodSvc.UpdateCustomFood(user.ID, food.ID, CustomFoodUpdate{Brand: &empty})
	if err != nil {
		t.Fatalf("clear brand: %v", err)
	}
	if updated.Brand != nil {
		t.Error("brand not cleared")
	}
}

func TestSearchCustomFoods(t *testing.T) {
	db := openTestDB(t)
	user := registerTestUser(t, db, "alice@example.com")
	foodSvc := NewCustomFoodService(db)

	createTestFood(t, db, user.ID, "Chicken Breast", 165, 31, 0, 3.6)
	createTestFood(t, db, user.ID, "Chicken Thigh", 209, 26, 0, 10.9)
	createTestFood(t, db, user.ID, "Salmon", 208, 20, 0, 13)

	results, err := foodSvc.SearchCustomFoods(user.ID, "CHICKEN")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Name != "Chicken Breast" {
		t.Errorf("results not ordered by name: %q first", results[0].Name)
	}

	// substring match anywhere in the name
	results, err = foodSvc.SearchCustomFoods(user.ID, "thigh")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}

	// blank query returns nothing rather than everything
	results, err = foodSvc.SearchCustomFoods(user.ID, "   ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("blank query returned %d results", len(results))
	}
}
