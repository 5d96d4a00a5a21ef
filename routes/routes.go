package routes

import (
	"net/http"

	"macrotrack-backend/controllers"
	"macrotrack-backend/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/refresh", controllers.Refresh)
		auth.POST("/logout", controllers.Logout)
		auth.POST("/password-reset", controllers.RequestPasswordReset)
		auth.POST("/password-reset/:token", controllers.ResetPassword)
	}

	protected := api.Group("")
	protected.Use(middlewares.AuthMiddleware())
	{
		protected.GET("/auth/me", controllers.Me)
		protected.DELETE("/users/me", controllers.DeleteAccount)

		protected.GET("/categories", controllers.ListCategories)
		protected.POST("/categories", controllers.CreateCategory)
		protected.PUT("/categories/reorder", controllers.ReorderCategories)
		protected.PUT("/categories/:id", controllers.UpdateCategory)
		protected.DELETE("/categories/:id", controllers.DeleteCategory)

		protected.GET("/foods/search", controllers.SearchFoods)
		protected.GET("/foods/:food_id", controllers.GetFood)

		protected.GET("/custom-foods", controllers.ListCustomFoods)
		protected.POST("/custom-foods", controllers.CreateCustomFood)
		protected.GET("/custom-foods/search", controllers.SearchCustomFoods)
		protected.GET("/custom-foods/:id", controllers.GetCustomFood)
		protected.PUT("/custom-foods/:id", controllers.UpdateCustomFood)
		protected.DELETE("/custom-foods/:id", controllers.DeleteCustomFood)

		protected.GET("/meals", controllers.ListCustomMeals)
		protected.POST("/meals", controllers.CreateCustomMeal)
		protected.GET("/meals/:id", controllers.GetCustomMeal)
		protected.PUT("/meals/:id", controllers.UpdateCustomMeal)
		protected.DELETE("/meals/:id", controllers.DeleteCustomMeal)

		protected.GET("/diary/:date", controllers.GetDiary)
		protected.POST("/diary/:date/entries", controllers.AddDiaryEntry)
		protected.POST("/diary/:date/add-meal", controllers.AddMealToDiary)
		protected.PUT("/diary/entries/:id", controllers.UpdateDiaryEntry)
		protected.DELETE("/diary/entries/:id", controllers.DeleteDiaryEntry)

		protected.GET("/goals", controllers.GetGoals)
		protected.PUT("/goals", controllers.SetGoals)
		protected.DELETE("/goals", controllers.DeleteGoals)
		protected.POST("/goals/skip-onboarding", controllers.SkipOnboarding)
	}

	return r
}
