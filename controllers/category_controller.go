package controllers

import (
	"net/http"

	"macrotrack-backend/config"
	"macrotrack-backend/services"

	"github.com/gin-gonic/gin"
)

type CategoryInput struct {
	Name         *string `json:"name"`
	DisplayOrder *int    `json:"display_order" binding:"omitempty,gte=1"`
}

type ReorderInput struct {
	CategoryIDs []string `json:"category_ids" binding:"required,min=1"`
}

func ListCategories(c *gin.Context) {
	catSvc := services.NewCategoryService(config.DB)
	categories, err := catSvc.GetCategories(currentUserID(c))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func CreateCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Name == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "name is required"})
		return
	}

	catSvc := services.NewCategoryService(config.DB)
	category, err := catSvc.CreateCategory(currentUserID(c), *input.Name, input.DisplayOrder)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func UpdateCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	catSvc := services.NewCategoryService(config.DB)
	category, err := catSvc.UpdateCategory(currentUserID(c), c.Param("id"), input.Name, input.DisplayOrder)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func DeleteCategory(c *gin.Context) {
	catSvc := services.NewCategoryService(config.DB)
	if err := catSvc.DeleteCategory(currentUserID(c), c.Param("id")); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func ReorderCategories(c *gin.Context) {
	var input ReorderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	catSvc := services.NewCategoryService(config.DB)
	if err := catSvc.ReorderCategories(currentUserID(c), input.CategoryIDs); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Categories reordered successfully"})
}
