package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"parking_booking/internal/domain"
	"parking_booking/internal/service"
)

type StatusHandler struct {
	board *service.StatusBoard
}

func NewStatusHandler(board *service.StatusBoard) *StatusHandler {
	return &StatusHandler{board: board}
}

// GET /status
func (h *StatusHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.board.Snapshot())
}

// PUT /status
func (h *StatusHandler) ReplaceStatus(c *gin.Context) {
	var slots []string
	if err := c.ShouldBindJSON(&slots); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data: " + err.Error()})
		return
	}
	status, err := h.board.Replace(slots)
	if err != nil {
		respondError(c, err, "Failed to update status")
		return
	}
	c.JSON(http.StatusOK, status)
}

// PUT /status/slots/:index
func (h *StatusHandler) UpdateSlot(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slot index"})
		return
	}
	var dto domain.SlotUpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data: " + err.Error()})
		return
	}
	status, err := h.board.SetSlot(index, *dto.Occupied)
	if err != nil {
		respondError(c, err, "Failed to update slot")
		return
	}
	c.JSON(http.StatusOK, status)
}
