package controllers

import (
	"net/http"

	"macrotrack-backend/config"
	"macrotrack-backend/services"

	"github.com/gin-gonic/gin"
)

func ListCustomFoods(c *gin.Context) {
	foodSvc := services.NewCustomFoodService(config.DB)
	foods, err := foodSvc.GetCustomFoods(currentUserID(c))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, foods)
}

func CreateCustomFood(c *gin.Context) {
	var input services.CustomFoodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	foodSvc := services.NewCustomFoodService(config.DB)
	food, err := foodSvc.CreateCustomFood(currentUserID(c), input)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, food)
}

func GetCustomFood(c *gin.Context) {
	foodSvc := services.NewCustomFoodService(config.DB)
	food, err := foodSvc.GetCustomFood(currentUserID(c), c.Param("id"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

func UpdateCustomFood(c *gin.Context) {
	var update services.CustomFoodUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	foodSvc := services.NewCustomFoodService(config.DB)
	food, err := foodSvc.UpdateCustomFood(currentUserID(c), c.Param("id"), update)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

func DeleteCustomFood(c *gin.Context) {
	foodSvc := services.NewCustomFoodService(config.DB)
	if err := foodSvc.DeleteCustomFood(currentUserID(c), c.Param("id")); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func SearchCustomFoods(c *gin.Context) {
	foodSvc := services.NewCustomFoodService(config.DB)
	foods, err := foodSvc.SearchCustomFoods(currentUserID(c), c.Query("q"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, foods)
}
