package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parking_booking/internal/domain"
	"parking_booking/internal/service"
)

type VoiceHandler struct {
	voiceService *service.VoiceService
}

func NewVoiceHandler(vs *service.VoiceService) *VoiceHandler {
	return &VoiceHandler{voiceService: vs}
}

// POST /api/v1/voice/commands
func (h *VoiceHandler) Interpret(c *gin.Context) {
	var dto domain.VoiceCommandDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data: " + err.Error()})
		return
	}
	result, err := h.voiceService.Interpret(c.Request.Context(), dto.Utterance)
	if err != nil {
		respondError(c, err, "Could not read slot status")
		return
	}
	c.JSON(http.StatusOK, result)
}
