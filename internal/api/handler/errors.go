package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"parking_booking/internal/repository"
	"parking_booking/internal/service"
)

// respondError maps service errors onto status codes.
func respondError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, service.ErrSlotNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidHours),
		errors.Is(err, service.ErrSlotIndexOutOfRange),
		errors.Is(err, service.ErrInvalidSlotState):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrStatusUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": msg, "details": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg, "details": err.Error()})
	}
}
