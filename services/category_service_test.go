package services

import (
	"errors"
	"testing"
	"time"
)

func TestCreateCategoryDuplicateName(t *testing.T) {
	db := openTestDB(t)
	user := registerTestUser(t, db, "alice@example.com")
	catSvc := NewCategoryService(db)

	if _, err := catSvc.CreateCategory(user.ID, "Breakfast", nil); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// names are case-sensitive, so a different case is a new category
	if _, err := catSvc.CreateCategory(user.ID, "breakfast", nil); err != nil {
		t.Fatalf("lowercase variant rejected: %v", err)
	}
}

func TestCreateCategoryAppendsToEnd(t *testing.T) {
	db := openTestDB(t)
	user := registerTestUser(t, db, "alice@example.com")
	catSvc := NewCategoryService(db)

	snacks, err := catSvc.CreateCategory(user.ID, "Snacks", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if snacks.DisplayOrder != 4 {
		t.Errorf("display_order = %d, want 4", snacks.DisplayOrder)
	}
	if snacks.IsDefault {
		t.Error("user-created category must not be default")
	}
}

func TestDeleteDefaultCategoryForbidden(t *testing.T) {
	db := openTestDB(t)
	user := registerTestUser(t, db, "alice@example.com")
	breakfast := defaultCategoryID(t, db, user.ID, "Breakfast")

	// default protection holds even with zero entries
	err := NewCategoryService(db).DeleteCategory(user.ID, breakfast)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestDeleteCategoryWithEntriesConflict(t *testing.T) {
	db := openTestDB(t)
	user := registerTestUser(t, db, "alice@example.com")
	catSvc := NewCategoryService(db)
	diarySvc := NewDiaryService(db)

	snacks, err := catSvc.CreateCategory(user.ID, "Snacks", nil)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	food := createTestFood(t, db, user.ID, "Apple", 95, 0.5, 25, 0.3)
	entry, err := diarySvc.AddEntry(user.ID, time.Now(), snacks.ID, food.ID, 1)
	if err != nil {
		t.Fatalf("add entry: %v", err)
	}

	if err := catSvc.DeleteCategory(user.ID, snacks.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// move the entry elsewhere, then delete succeeds
	breakfast := defaultCategoryID(t, db, user.ID, "Breakfast")
	if _, err := diarySvc.UpdateEntry(user.ID, entry.ID, nil, &breakfast); err != nil {
		t.Fatalf("move entry: %v", err)
	}
	if err := catSvc.DeleteCategory(user.ID, snacks.ID); err != nil {
		t.Fatalf("delete after move: %v", err)
	}
}

func TestDeleteDefaultCategoryEntryConflictWinsOverForbidden(t *testing.T) {
	db := openTestDB(t)
	user := registerTestUser(t, db, "alice@example.com")
	breakfast := defaultCategoryID(t, db, user.ID, "Breakfast")

	food := createTestFood(t, db, user.ID, "Toast", 80, 3, 15, 1)
	if _, err := NewDiaryService(db).AddEntry(user.ID, time.Now(), breakfast, food.ID, 1); err != nil {
		t.Fatalf("add entry: %v", err)
	}

	err := NewCategoryService(db).DeleteCategory(user.ID, breakfast)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict to take precedence, got %v", err)
	}
}

func TestDeleteCategoryOtherUser(t *testing.T) {
	db := openTestDB(t)
	alice := registerTestUser(t, db, "alice@example.com")
	bob := registerTestUser(t, db, "bob@example.com")

	aliceBreakfast := defaultCategoryID(t, db, alice.ID, "Breakfast")
	err := NewCategoryService(db).DeleteCategory(bob.ID, aliceBreakfast)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReorderCategories(t *testing.T) {
	db := openTestDB(t)
	user := registerTestUser(t, db, "alice@example.com")
	catSvc := NewCategoryService(db)

	categories, err := catSvc.GetCategories(user.ID)
	if err != nil {
		t.Fatalf("get categories: %v", err)
	}

	// reverse the order
	ids := []string{categories[2].ID, categories[1].ID, categories[0].ID}
	if err := catSvc.ReorderCategories(user.ID, ids); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	reordered, err := catSvc.GetCategories(user.ID)
	if err != nil {
		t.Fatalf("get categories: %v", err)
	}
	if reordered[0].Name != "Dinner" || reordered[1].Name != "Lunch" || reordered[2].Name != "Breakfast" {
		t.Errorf("unexpected order: %s, %s, %s", reordered[0].Name, reordered[1].Name, reordered[2].Name)
	}
	for i, c := range reordered {
		if c.DisplayOrder != i+1 {
			t.Errorf("category %q: display_order %d, want %d", c.Name, c.DisplayOrder, i+1)
		}
	}
}

func TestReorderRejectsPartialList(t *testing.T) {
	db := openTestDB(t)
	user := registerTestUser(t, db, "alice@example.com")
	catSvc := NewCategoryService(db)

	categories, err := catSvc.GetCategories(user.ID)
	if err != nil {
		t.Fatalf("get categories: %v", err)
	}

	// missing one id
	err = catSvc.ReorderCategories(user.ID, []string{categories[0].ID, categories[1].ID})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("partial list: expected ErrInvalidInput, got %v", err)
	}

	// unknown id
	err = catSvc.ReorderCategories(user.ID, []string{categories[0].ID, categories[1].ID, "bogus-id"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unknown id: expected ErrInvalidInput, got %v", err)
	}

	// duplicate id
	err = catSvc.ReorderCategories(user.ID, []string{categories[0].ID, categories[1].ID, categories[1].ID})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("duplicate id: expected ErrInvalidInput, got %v", err)
	}

	// failed reorder leaves the original order intact
	unchanged, err := catSvc.GetCategories(user.ID)
	if err != nil {
		t.Fatalf("get categories: %v", err)
	}
	for i, c := range unchanged {
		if c.ID != categories[i].ID {
			t.Errorf("order changed after failed reorder at position %d", i)
		}
	}
}

func TestUpdateCategoryRename(t *testing.T) {
	db := openTestDB(t)
	user := registerTestUser(t, db, "alice@example.com")
	catSvc := NewCategoryService(db)

	snacks, err := catSvc.CreateCategory(user.ID, "Snacks", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Evening Snacks"
	updated, err := catSvc.UpdateCategory(user.ID, snacks.ID, &name, nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Evening Snacks" {
		t.Errorf("name = %q", updated.Name)
	}

	// renaming onto an existing name is a conflict
	clash := "Breakfast"
	if _, err := catSvc.UpdateCategory(user.ID, snacks.ID, &clash, nil); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}

	// renaming to its own current name is a no-op, not a conflict
	same := "Evening Snacks"
	if _, err := catSvc.UpdateCategory(user.ID, snacks.ID, &same, nil); err != nil {
		t.Errorf("self-rename failed: %v", err)
	}
}
