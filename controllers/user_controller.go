package controllers

import (
	"net/http"

	"macrotrack-backend/config"
	"macrotrack-backend/services"

	"github.com/gin-gonic/gin"
)

// DeleteAccount removes the caller's account and all owned data.
func DeleteAccount(c *gin.Context) {
	userSvc := services.NewUserService(config.DB)
	if err := userSvc.DeleteAccount(currentUserID(c)); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
