package controllers

import (
	"net/http"
	"time"

	"macrotrack-backend/config"
	"macrotrack-backend/services"

	"github.com/gin-gonic/gin"
)

type AddEntryInput struct {
	CategoryID string                    `json:"category_id" binding:"required"`
	FoodID     *string                   `json:"food_id"`
	Food       *services.InlineFoodInput `json:"food"`
	Quantity   float64                   `json:"quantity" binding:"required"`
}

type UpdateEntryInput struct {
	Quantity   *float64 `json:"quantity"`
	CategoryID *string  `json:"category_id"`
}

type AddMealInput struct {
	MealID     string `json:"meal_id" binding:"required"`
	CategoryID string `json:"category_id" binding:"required"`
}

func parseDiaryDate(c *gin.Context) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date, true
}

func GetDiary(c *gin.Context) {
	date, ok := parseDiaryDate(c)
	if !ok {
		return
	}

	diarySvc := services.NewDiaryService(config.DB)
	view, err := diarySvc.GetDiary(currentUserID(c), date)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// AddDiaryEntry accepts either a food_id or raw nutrition fields; the
// latter creates a shared food row first.
func AddDiaryEntry(c *gin.Context) {
	date, ok := parseDiaryDate(c)
	if !ok {
		return
	}

	var input AddEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.FoodID == nil && input.Food == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "either food_id or food is required"})
		return
	}

	userID := currentUserID(c)
	diarySvc := services.NewDiaryService(config.DB)

	foodID := ""
	if input.FoodID != nil {
		foodID = *input.FoodID
	} else {
		food, err := diarySvc.CreateInlineFood(userID, *input.Food)
		if err != nil {
			abortWithServiceError(c, err)
			return
		}
		foodID = food.ID
	}

	entry, err := diarySvc.AddEntry(userID, date, input.CategoryID, foodID, input.Quantity)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func UpdateDiaryEntry(c *gin.Context) {
	var input UpdateEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	diarySvc := services.NewDiaryService(config.DB)
	entry, err := diarySvc.UpdateEntry(currentUserID(c), c.Param("id"), input.Quantity, input.CategoryID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func DeleteDiaryEntry(c *gin.Context) {
	diarySvc := services.NewDiaryService(config.DB)
	if err := diarySvc.DeleteEntry(currentUserID(c), c.Param("id")); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddMealToDiary expands a meal preset into diary entries for the date.
func AddMealToDiary(c *gin.Context) {
	date, ok := parseDiaryDate(c)
	if !ok {
		return
	}

	var input AddMealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	diarySvc := services.NewDiaryService(config.DB)
	entries, err := diarySvc.AddMealToDiary(currentUserID(c), date, input.MealID, input.CategoryID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entries": entries})
}
