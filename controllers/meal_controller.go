package controllers

import (
	"net/http"

	"macrotrack-backend/config"
	"macrotrack-backend/services"

	"github.com/gin-gonic/gin"
)

type CreateMealInput struct {
	Name  string                   `json:"name" binding:"required"`
	Items []services.MealItemInput `json:"items" binding:"required"`
}

type UpdateMealInput struct {
	Name  *string                  `json:"name"`
	Items []services.MealItemInput `json:"items"`
}

func ListCustomMeals(c *gin.Context) {
	mealSvc := services.NewCustomMealService(config.DB)
	meals, err := mealSvc.GetCustomMeals(currentUserID(c))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	views := make([]services.CustomMealView, 0, len(meals))
	for i := range meals {
		views = append(views, mealSvc.MealView(&meals[i]))
	}
	c.JSON(http.StatusOK, views)
}

func CreateCustomMeal(c *gin.Context) {
	var input CreateMealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mealSvc := services.NewCustomMealService(config.DB)
	meal, err := mealSvc.CreateCustomMeal(currentUserID(c), input.Name, input.Items)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mealSvc.MealView(meal))
}

func GetCustomMeal(c *gin.Context) {
	mealSvc := services.NewCustomMealService(config.DB)
	meal, err := mealSvc.GetCustomMeal(currentUserID(c), c.Param("id"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mealSvc.MealView(meal))
}

func UpdateCustomMeal(c *gin.Context) {
	var input UpdateMealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mealSvc := services.NewCustomMealService(config.DB)
	meal, err := mealSvc.UpdateCustomMeal(currentUserID(c), c.Param("id"), input.Name, input.Items)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mealSvc.MealView(meal))
}

func DeleteCustomMeal(c *gin.Context) {
	mealSvc := services.NewCustomMealService(config.DB)
	if err := mealSvc.DeleteCustomMeal(currentUserID(c), c.Param("id")); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
