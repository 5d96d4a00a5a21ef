package controllers

import (
	"net/http"
	"strconv"

	"macrotrack-backend/config"
	"macrotrack-backend/services"

	"github.com/gin-gonic/gin"
)

const defaultSearchLimit = 20

func searchService() *services.FoodSearchService {
	return services.NewFoodSearchService(config.DB, services.NewUSDAService(), nil)
}

func SearchFoods(c *gin.Context) {
	limit := defaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = parsed
	}

	results, err := searchService().Search(c.Query("q"), currentUserID(c), limit)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func GetFood(c *gin.Context) {
	result, err := searchService().GetFood(c.Param("food_id"), currentUserID(c))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
