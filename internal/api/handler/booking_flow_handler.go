package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parking_booking/internal/domain"
	"parking_booking/internal/service"
)

type BookingFlowHandler struct {
	flowService *service.BookingFlowService
}

func NewBookingFlowHandler(fs *service.BookingFlowService) *BookingFlowHandler {
	return &BookingFlowHandler{flowService: fs}
}

// POST /api/v1/booking-flows
func (h *BookingFlowHandler) CreateFlow(c *gin.Context) {
	flow, err := h.flowService.Start(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to start booking")
		return
	}
	c.JSON(http.StatusCreated, flow)
}

// GET /api/v1/booking-flows/:id
func (h *BookingFlowHandler) GetFlow(c *gin.Context) {
	flow, err := h.flowService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load booking")
		return
	}
	c.JSON(http.StatusOK, flow)
}

// POST /api/v1/booking-flows/:id/select
// Picking a slot that is not free leaves the flow unchanged and reports selected=false.
func (h *BookingFlowHandler) SelectSlot(c *gin.Context) {
	var dto domain.SelectSlotDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data: " + err.Error()})
		return
	}
	flow, selected, err := h.flowService.SelectSlot(c.Request.Context(), c.Param("id"), dto)
	if err != nil {
		respondError(c, err, "Failed to select slot")
		return
	}
	c.JSON(http.StatusOK, domain.SelectSlotResponse{Selected: selected, Flow: flow})
}

// PUT /api/v1/booking-flows/:id/hours
func (h *BookingFlowHandler) SetHours(c *gin.Context) {
	var dto domain.SetHoursDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data: " + err.Error()})
		return
	}
	flow, err := h.flowService.SetHours(c.Request.Context(), c.Param("id"), dto)
	if err != nil {
		respondError(c, err, "Failed to set hours")
		return
	}
	c.JSON(http.StatusOK, flow)
}

// POST /api/v1/booking-flows/:id/dismiss
func (h *BookingFlowHandler) Dismiss(c *gin.Context) {
	flow, err := h.flowService.Dismiss(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to dismiss booking")
		return
	}
	c.JSON(http.StatusOK, flow)
}

// POST /api/v1/booking-flows/:id/confirm
func (h *BookingFlowHandler) Confirm(c *gin.Context) {
	flow, req, err := h.flowService.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to confirm booking")
		return
	}
	c.JSON(http.StatusOK, domain.ConfirmFlowResponse{Flow: flow, Request: *req, ConfirmURL: req.ConfirmURL()})
}
