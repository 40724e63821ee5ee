package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"parking_booking/internal/domain"
	"parking_booking/internal/repository"
	"parking_booking/internal/service"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
}

func NewPaymentHandler(ps *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: ps}
}

// GET /booking/confirm?slot=&location=&hours=
// A missing or unknown location goes back to the dashboard; bad hours read as 1.
func (h *PaymentHandler) ConfirmationPage(c *gin.Context) {
	locationID := c.Query("location")
	if locationID == "" {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	req := domain.BookingRequest{
		SlotID:     c.Query("slot"),
		LocationID: locationID,
		Hours:      service.ParseHoursParam(c.Query("hours")),
	}
	view, err := h.paymentService.Confirmation(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.Redirect(http.StatusFound, "/dashboard")
			return
		}
		respondError(c, err, "Failed to load booking")
		return
	}
	c.JSON(http.StatusOK, view)
}

// POST /api/v1/quotes
func (h *PaymentHandler) Quote(c *gin.Context) {
	var dto domain.QuoteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data: " + err.Error()})
		return
	}
	if dto.LocationID == "" && dto.Rate == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location_id or rate is required"})
		return
	}
	quote, err := h.paymentService.Quote(c.Request.Context(), dto)
	if err != nil {
		respondError(c, err, "Failed to price booking")
		return
	}
	c.JSON(http.StatusOK, quote)
}

// POST /api/v1/payments
func (h *PaymentHandler) SubmitPayment(c *gin.Context) {
	var dto domain.PaymentSubmissionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data: " + err.Error()})
		return
	}
	payment, err := h.paymentService.Submit(c.Request.Context(), dto)
	if err != nil {
		respondError(c, err, "Failed to submit payment")
		return
	}
	c.JSON(http.StatusAccepted, payment)
}

// GET /api/v1/payments/:id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	payment, err := h.paymentService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load payment")
		return
	}
	c.JSON(http.StatusOK, payment)
}
