package controllers

import (
	"net/http"

	"macrotrack-backend/config"
	"macrotrack-backend/services"

	"github.com/gin-gonic/gin"
)

type GoalInput struct {
	Calories *int     `json:"calories"`
	ProteinG *float64 `json:"protein_g"`
	CarbsG   *float64 `json:"carbs_g"`
	FatG     *float64 `json:"fat_g"`
}

func GetGoals(c *gin.Context) {
	goalSvc := services.NewGoalService(config.DB)
	goal, err := goalSvc.GetGoals(currentUserID(c))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	if goal == nil {
		c.JSON(http.StatusOK, gin.H{"goals": nil})
		return
	}
	c.JSON(http.StatusOK, goal)
}

func SetGoals(c *gin.Context) {
	var input GoalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goalSvc := services.NewGoalService(config.DB)
	goal, err := goalSvc.SetGoals(currentUserID(c), input.Calories, input.ProteinG, input.CarbsG, input.FatG)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func DeleteGoals(c *gin.Context) {
	goalSvc := services.NewGoalService(config.DB)
	if err := goalSvc.DeleteGoals(currentUserID(c)); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func SkipOnboarding(c *gin.Context) {
	goalSvc := services.NewGoalService(config.DB)
	if err := goalSvc.SkipOnboarding(currentUserID(c)); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Onboarding skipped"})
}
