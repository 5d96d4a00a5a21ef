package controllers

import (
	"errors"
	"net/http"

	"macrotrack-backend/services"

	"github.com/gin-gonic/gin"
)

func currentUserID(c *gin.Context) string {
	return c.GetString("userID")
}

// serviceErrorStatus maps service error kinds to HTTP status codes.
func serviceErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func abortWithServiceError(c *gin.Context, err error) {
	c.JSON(serviceErrorStatus(err), gin.H{"error": err.Error()})
}
