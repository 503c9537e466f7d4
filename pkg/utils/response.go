package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hospital-management-backend/internal/apperr"
)

// SuccessResponse sends a standard success JSON response
func SuccessResponse(c *gin.Context, data gin.H) {
	payload := gin.H{"success": true}
	for k, v := range data {
		payload[k] = v
	}
	c.JSON(http.StatusOK, payload)
}

// MessageResponse sends a simple success message response
func MessageResponse(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}

// ErrorResponse sends a standard error JSON response
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"message": message,
	})
}

// DomainErrorResponse maps a domain error code to an HTTP status and sends it
func DomainErrorResponse(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperr.CodeOf(err) {
	case apperr.CodeValidation, apperr.CodeDuplicateKey:
		status = http.StatusBadRequest
	case apperr.CodeInvalidCredentials, apperr.CodeUnauthorized:
		status = http.StatusUnauthorized
	case apperr.CodeNotFound:
		status = http.StatusNotFound
	}
	ErrorResponse(c, status, err.Error())
}
