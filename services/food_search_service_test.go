package services

import (
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestSearchCustomBeforeUSDA(t *testing.T) {
	db := openTestDB(t)
	user := registerTestUser(t, db, "alice@example.com")
	createTestFood(t, db, user.ID, "Banana Bread", 250, 4, 45, 8)

	usda := newUSDATestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(usdaSearchBody))
	})
	searchSvc := NewFoodSearchService(db, usda, NewSearchCache(time.Minute))

	results, err := searchSvc.Search("banana", user.ID, 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Source != FoodSourceTagCustom {
		t.Errorf("custom results must come first, got %q", results[0].Source)
	}
	if !strings.HasPrefix(results[0].ID, "custom:") {
		t.Errorf("custom id = %q", results[0].ID)
	}
	if results[1].Source != FoodSourceTagUSDA || !strings.HasPrefix(results[1].ID, "usda:") {
		t.Errorf("usda result = %+v", results[1])
	}
}

func TestSearchLimitTruncation(t *testing.T) {
	db := openTestDB(t)
	user := registerTestUser(t, db, "alice@example.com")
	createTestFood(t, db, user.ID, "Banana Bread", 250, 4, 45, 8)
	createTestFood(t, db, user.ID, "Banana Chips", 520, 2, 58, 34)

	usda := newUSDATestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(usdaSearchBody))
	})
	searchSvc := NewFoodSearchService(db, usda, NewSearchCache(time.Minute))

	results, err := searchSvc.Search("banana", user.ID, 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	// truncation keeps the custom results at the front
	for _, r := range results {
		if r.Source != FoodSourceTagCustom {
			t.Errorf("expected only custom results after truncation, got %q", r.Source)
		}
	}
}

func TestSearchCacheHit(t *testing.T) {
	db := openTestDB(t)
	user := registerTestUser(t, db, "alice@example.com")

	var calls atomic.Int64
	usda := newUSDATestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(usdaSearchBody))
	})
	searchSvc := NewFoodSearchService(db, usda, NewSearchCache(time.Minute))

	if _, err := searchSvc.Search("banana", user.ID, 10); err != nil {
		t.Fatalf("search: %v", err)
	}
	// case-insensitive key: this must hit the cache
	if _, err := searchSvc.Search("BANANA", user.ID, 10); err != nil {
		t.Fatalf("search: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("upstream called %d times, want 1", got)
	}

	// a different limit is a different key
	if _, err := searchSvc.Search("banana", user.ID, 5); err != nil {
		t.Fatalf("search: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("upstream called %d times, want 2", got)
	}
}

func TestSearchCacheExpiry(t *testing.T) {
	db := openTestDB(t)
	user := registerTestUser(t, db, "alice@example.com")

	var calls atomic.Int64
	usda := newUSDATestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(usdaSearchBody))
	})
	searchSvc := NewFoodSearchService(db, usda, NewSearchCache(time.Nanosecond))

	if _, err := searchSvc.Search("banana", user.ID, 10); err != nil {
		t.Fatalf("search: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, err := searchSvc.Search("banana", user.ID, 10); err != nil {
		t.Fatalf("search: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("upstream called %d times, want 2 after expiry", got)
	}
}

func TestSearchPartialOnUSDAFailure(t *testing.T) {
	db := openTestDB(t)
	user := registerTestUser(t, db, "alice@example.com")
	createTestFood(t, db, user.ID, "Banana Bread", 250, 4, 45, 8)

	usda := newUSDATestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	searchSvc := NewFoodSearchService(db, usda, NewSearchCache(time.Minute))

	results, err := searchSvc.Search("banana", user.ID, 10)
	if err != nil {
		t.Fatalf("upstream failure must not fail the search: %v", err)
	}
	if len(results) != 1 || results[0].Source != FoodSourceTagCustom {
		t.Errorf("results = %+v", results)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	db := openTestDB(t)
	usda := newUSDATestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called for an empty query")
	})
	searchSvc := NewFoodSearchService(db, usda, NewSearchCache(time.Minute))

	results, err := searchSvc.Search("  ", "", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results for empty query", len(results))
	}
}

func TestGetFoodDispatch(t *testing.T) {
	db := openTestDB(t)
	user := registerTestUser(t, db, "alice@example.com")
	food := createTestFood(t, db, user.ID, "Banana Bread", 250, 4, 45, 8)

	usda := newUSDATestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/food/") {
			w.Write([]byte(usdaDetailBody))
			return
		}
		http.NotFound(w, r)
	})
	searchSvc := NewFoodSearchService(db, usda, NewSearchCache(time.Minute))

	got, err := searchSvc.GetFood("custom:"+food.ID, user.ID)
	if err != nil {
		t.Fatalf("get custom: %v", err)
	}
	if got.Name != "Banana Bread" || got.Source != FoodSourceTagCustom {
		t.Errorf("custom result = %+v", got)
	}

	got, err = searchSvc.GetFood("usda:171688", user.ID)
	if err != nil {
		t.Fatalf("get usda: %v", err)
	}
	if got.Name != "Bananas, raw" || got.Source != FoodSourceTagUSDA {
		t.Errorf("usda result = %+v", got)
	}

	// other user's custom food is invisible
	bob := registerTestUser(t, db, "bob@example.com")
	if _, err := searchSvc.GetFood("custom:"+food.ID, bob.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// malformed and unknown-source ids
	if _, err := searchSvc.GetFood("no-colon", user.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for malformed id, got %v", err)
	}
	if _, err := searchSvc.GetFood("other:123", user.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown source, got %v", err)
	}
}
