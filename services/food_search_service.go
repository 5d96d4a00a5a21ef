package services

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"
)

// Composite food id prefixes (source:id).
const (
	FoodSourceTagCustom = "custom"
	FoodSourceTagUSDA   = "usda"
)

const searchCacheTTL = 15 * time.Minute

// FoodSearchResult is a unified hit from any source.
type FoodSearchResult struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Source      string  `json:"source"`
	Calories    float64 `json:"calories"`
	ProteinG    float64 `json:"protein_g"`
	CarbsG      float64 `json:"carbs_g"`
	FatG        float64 `json:"fat_g"`
	ServingSize float64 `json:"serving_size"`
	ServingUnit string  `json:"serving_unit"`
}

type searchCacheEntry struct {
	results  []FoodSearchResult
	cachedAt time.Time
}

// SearchCache is a TTL cache for search results, shared across users
// and never invalidated on food mutation: results are presentation
// only, so a stale window is acceptable.
type SearchCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]searchCacheEntry
}

func NewSearchCache(ttl time.Duration) *SearchCache {
	return &SearchCache{ttl: ttl, entries: make(map[string]searchCacheEntry)}
}

func (c *SearchCache) get(key string) ([]FoodSearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok || time.Since(entry.cachedAt) >= c.ttl {
		return nil, false
	}
	return entry.results, true
}

func (c *SearchCache) put(key string, results []FoodSearchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = searchCacheEntry{results: results, cachedAt: time.Now()}
}

// process-wide cache, used unless the caller injects its own
var defaultSearchCache = NewSearchCache(searchCacheTTL)

// FoodSearchService merges user custom foods with USDA results.
type FoodSearchService struct {
	db    *gorm.DB
	usda  *USDAService
	cache *SearchCache
}

func NewFoodSearchService(db *gorm.DB, usda *USDAService, cache *SearchCache) *FoodSearchService {
	if cache == nil {
		cache = defaultSearchCache
	}
	return &FoodSearchService{db: db, usda: usda, cache: cache}
}

// Search returns custom-food matches first, then USDA matches,
// truncated to limit. USDA failures are logged and swallowed so the
// custom results still come back.
func (s *FoodSearchService) Search(query, userID string, limit int) ([]FoodSearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return []FoodSearchResult{}, nil
	}

	cacheKey := strings.ToLower(query) + ":" + strconv.Itoa(limit)
	if cached, ok := s.cache.get(cacheKey); ok {
		return cached, nil
	}

	var results []FoodSearchResult

	if userID != "" {
		customFoods, err := NewCustomFoodService(s.db).SearchCustomFoods(userID, query)
		if err != nil {
			return nil, err
		}
		for _, food := range customFoods {
			results = append(results, FoodSearchResult{
				ID:          FoodSourceTagCustom + ":" + food.ID,
				Name:        food.Name,
				Source:      FoodSourceTagCustom,
				Calories:    float64(food.Calories),
				ProteinG:    food.ProteinG,
				CarbsG:      food.CarbsG,
				FatG:        food.FatG,
				ServingSize: food.ServingSize,
				ServingUnit: food.ServingUnit,
			})
		}
	}

	usdaFoods, err := s.usda.SearchFoods(query, limit)
	if err != nil {
		log.Printf("USDA search failed, returning partial results: %v", err)
	} else {
		for _, food := range usdaFoods {
			results = append(results, FoodSearchResult{
				ID:          FoodSourceTagUSDA + ":" + food.FdcID,
				Name:        food.Name,
				Source:      FoodSourceTagUSDA,
				Calories:    food.Calories,
				ProteinG:    food.ProteinG,
				CarbsG:      food.CarbsG,
				FatG:        food.FatG,
				ServingSize: food.ServingSize,
				ServingUnit: food.ServingUnit,
			})
		}
	}

	if len(results) > limit {
		results = results[:limit]
	}
	if results == nil {
		results = []FoodSearchResult{}
	}

	s.cache.put(cacheKey, results)
	return results, nil
}

// GetFood resolves a composite "source:id" identifier to a single
// result, dispatching on the prefix.
func (s *FoodSearchService) GetFood(foodID, userID string) (*FoodSearchResult, error) {
	source, itemID, found := strings.Cut(foodID, ":")
	if !found {
		return nil, fmt.Errorf("%w: food", ErrNotFound)
	}

	switch source {
	case FoodSourceTagCustom:
		if userID == "" {
			return nil, fmt.Errorf("%w: food", ErrNotFound)
		}
		food, err := NewCustomFoodService(s.db).GetCustomFood(userID, itemID)
		if err != nil {
			return nil, err
		}
		return &FoodSearchResult{
			ID:          foodID,
			Name:        food.Name,
			Source:      FoodSourceTagCustom,
			Calories:    float64(food.Calories),
			ProteinG:    food.ProteinG,
			CarbsG:      food.CarbsG,
			FatG:        food.FatG,
			ServingSize: food.ServingSize,
			ServingUnit: food.ServingUnit,
		}, nil

	case FoodSourceTagUSDA:
		food, err := s.usda.GetFoodDetails(itemID)
		if err != nil {
			log.Printf("USDA detail lookup failed: %v", err)
			return nil, fmt.Errorf("%w: food", ErrNotFound)
		}
		if food == nil {
			return nil, fmt.Errorf("%w: food", ErrNotFound)
		}
		return &FoodSearchResult{
			ID:          foodID,
			Name:        food.Name,
			Source:      FoodSourceTagUSDA,
			Calories:    food.Calories,
			ProteinG:    food.ProteinG,
			CarbsG:      food.CarbsG,
			FatG:        food.FatG,
			ServingSize: food.ServingSize,
			ServingUnit: food.ServingUnit,
		}, nil
	}

	return nil, fmt.Errorf("%w: food", ErrNotFound)
}
