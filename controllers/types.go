package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fucina/flexhibition-api/services"
)

type StandardResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
	Message string      `json:"message,omitempty"`
}

// respondError maps the service error taxonomy to HTTP statuses: validation
// failures to 400, missing records to 404, everything else to 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrMediaNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		status = http.StatusNotFound
	case services.IsValidationError(err):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error(), "success": false})
}
