package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

const defaultUSDABaseURL = "https://api.nal.usda.gov/fdc/v1"

// USDAService talks to the USDA FoodData Central API.
type USDAService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewUSDAService() *USDAService {
	baseURL := os.Getenv("USDA_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultUSDABaseURL
	}
	return &USDAService{
		apiKey:  os.Getenv("USDA_API_KEY"),
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// USDAFood is one food from FoodData Central. Nutrients are per 100 g
// unless the detail response says otherwise.
type USDAFood struct {
	FdcID       string
	Name        string
	Calories    float64
	ProteinG    float64
	CarbsG      float64
	FatG        float64
	ServingSize float64
	ServingUnit string
}

type usdaSearchResponse struct {
	Foods []struct {
		FdcID         int64  `json:"fdcId"`
		Description   string `json:"description"`
		FoodNutrients []struct {
			NutrientName string  `json:"nutrientName"`
			Value        float64 `json:"value"`
		} `json:"foodNutrients"`
	} `json:"foods"`
}

type usdaDetailResponse struct {
	FdcID         int64   `json:"fdcId"`
	Description   string  `json:"description"`
	ServingSize   float64 `json:"servingSize"`
	ServingUnit   string  `json:"servingSizeUnit"`
	FoodNutrients []struct {
		Nutrient struct {
			Name string `json:"name"`
		} `json:"nutrient"`
		Amount float64 `json:"amount"`
	} `json:"foodNutrients"`
}

// Nutrient names FoodData Central uses for the four tracked values.
const (
	usdaNutrientEnergy  = "Energy"
	usdaNutrientProtein = "Protein"
	usdaNutrientCarbs   = "Carbohydrate, by difference"
	usdaNutrientFat     = "Total lipid (fat)"
)

// SearchFoods calls GET /foods/search, restricted to the Foundation and
// SR Legacy data sets.
func (s *USDAService) SearchFoods(query string, pageSize int) ([]USDAFood, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("pageSize", strconv.Itoa(pageSize))
	params.Add("dataType", "Foundation")
	params.Add("dataType", "SR Legacy")
	params.Set("api_key", s.apiKey)

	resp, err := s.client.Get(s.baseURL + "/foods/search?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to call USDA search: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read USDA search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("usda search API error %d: %s", resp.StatusCode, string(body))
	}

	var sr usdaSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to parse USDA search JSON: %w", err)
	}

	foods := make([]USDAFood, 0, len(sr.Foods))
	for _, item := range sr.Foods {
		food := USDAFood{
			FdcID:       strconv.FormatInt(item.FdcID, 10),
			Name:        item.Description,
			ServingSize: 100,
			ServingUnit: "g",
		}
		for _, n := range item.FoodNutrients {
			switch n.NutrientName {
			case usdaNutrientEnergy:
				food.Calories = n.Value
			case usdaNutrientProtein:
				food.ProteinG = n.Value
			case usdaNutrientCarbs:
				food.CarbsG = n.Value
			case usdaNutrientFat:
				food.FatG = n.Value
			}
		}
		foods = append(foods, food)
	}
	return foods, nil
}

// GetFoodDetails calls GET /food/{fdcId}. A 404 means the food does not
// exist and returns (nil, nil).
func (s *USDAService) GetFoodDetails(fdcID string) (*USDAFood, error) {
	params := url.Values{}
	params.Set("api_key", s.apiKey)

	resp, err := s.client.Get(s.baseURL + "/food/" + url.PathEscape(fdcID) + "?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to call USDA detail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read USDA detail response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("usda detail API error %d: %s", resp.StatusCode, string(body))
	}

	var dr usdaDetailResponse
	if err := json.Unmarshal(body, &dr); err != nil {
		return nil, fmt.Errorf("failed to parse USDA detail JSON: %w", err)
	}

	food := &USDAFood{
		FdcID:       strconv.FormatInt(dr.FdcID, 10),
		Name:        dr.Description,
		ServingSize: 100,
		ServingUnit: "g",
	}
	if dr.ServingSize > 0 {
		food.ServingSize = dr.ServingSize
	}
	if dr.ServingUnit != "" {
		food.ServingUnit = dr.ServingUnit
	}
	for _, n := range dr.FoodNutrients {
		switch n.Nutrient.Name {
		case usdaNutrientEnergy:
			food.Calories = n.Amount
		case usdaNutrientProtein:
			food.ProteinG = n.Amount
		case usdaNutrientCarbs:
			food.CarbsG = n.Amount
		case usdaNutrientFat:
			food.FatG = n.Amount
		}
	}
	return food, nil
}
