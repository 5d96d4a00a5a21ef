package controllers

import (
	"net/http"

	"macrotrack-backend/config"
	"macrotrack-backend/services"

	"github.com/gin-gonic/gin"
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authSvc := services.NewAuthService(config.DB)
	user, accessToken, refreshToken, err := authSvc.Register(input.Email, input.Password)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":                   user.ID,
		"email":                user.Email,
		"onboarding_completed": user.OnboardingCompleted,
		"access_token":         accessToken,
		"refresh_token":        refreshToken,
		"token_type":           "bearer",
	})
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authSvc := services.NewAuthService(config.DB)
	user, accessToken, refreshToken, err := authSvc.Login(input.Email, input.Password)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                   user.ID,
		"email":                user.Email,
		"onboarding_completed": user.OnboardingCompleted,
		"access_token":         accessToken,
		"refresh_token":        refreshToken,
		"token_type":           "bearer",
	})
}

func Refresh(c *gin.Context) {
	var input RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authSvc := services.NewAuthService(config.DB)
	accessToken, refreshToken, err := authSvc.RefreshTokens(input.RefreshToken)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "bearer",
	})
}

// Logout is a server-side no-op; clients discard their tokens.
func Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

func Me(c *gin.Context) {
	authSvc := services.NewAuthService(config.DB)
	user, err := authSvc.GetUserByID(currentUserID(c))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                   user.ID,
		"email":                user.Email,
		"onboarding_completed": user.OnboardingCompleted,
	})
}

func RequestPasswordReset(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authSvc := services.NewAuthService(config.DB)
	if _, err := authSvc.RequestPasswordReset(input.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Always 202: the response must not reveal whether the email exists.
	c.JSON(http.StatusAccepted, gin.H{"message": "If the email exists, a password reset link has been sent"})
}

func ResetPassword(c *gin.Context) {
	var input struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authSvc := services.NewAuthService(config.DB)
	if err := authSvc.ResetPassword(c.Param("token"), input.Password); err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset successfully"})
}
