package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"parking_booking/internal/domain"
)

const (
	speechNoSlots      = "No slots available."
	speechInvalidSlot  = "Please mention a valid slot number."
	speechUnrecognized = `Command not recognized. Try saying, "Find available slot" or "Book slot 2".`
)

// StatusSource yields the /status board. Implemented by *StatusBoard and
// *HTTPStatusSource.
type StatusSource interface {
	FetchStatus(ctx context.Context) ([]string, error)
}

// VoiceService turns a spoken transcript into the sentence to speak back.
// It never books anything.
type VoiceService struct {
	status StatusSource
}

func NewVoiceService(status StatusSource) *VoiceService {
	return &VoiceService{status: status}
}

func (s *VoiceService) Interpret(ctx context.Context, utterance string) (*domain.VoiceCommandResult, error) {
	command := strings.ToLower(utterance)
	log.Printf("Voice: command %q", command)

	switch {
	case strings.Contains(command, "available slot"):
		status, err := s.status.FetchStatus(ctx)
		if err != nil {
			return nil, fmt.Errorf("status query: %w", err)
		}
		result := &domain.VoiceCommandResult{Command: command, Intent: domain.IntentStatusQuery, Speech: speechNoSlots}
		if n := firstEmptySlot(status); n > 0 {
			result.SlotNumber = &n
			result.Speech = fmt.Sprintf("Slot %d is available.", n)
		}
		return result, nil

	case strings.Contains(command, "book slot"):
		result := &domain.VoiceCommandResult{Command: command, Intent: domain.IntentBookSlot, Speech: speechInvalidSlot}
		if n, ok := slotNumberFromDigits(command); ok {
			result.SlotNumber = &n
			result.Speech = fmt.Sprintf("Booking slot %d.", n)
		}
		return result, nil

	default:
		return &domain.VoiceCommandResult{Command: command, Intent: domain.IntentUnknown, Speech: speechUnrecognized}, nil
	}
}

// firstEmptySlot is the 1-based index of the first "Empty" entry, or 0.
func firstEmptySlot(status []string) int {
	for i, s := range status {
		if s == domain.SlotStateEmpty {
			return i + 1
		}
	}
	return 0
}

// slotNumberFromDigits joins every digit in the command into one number,
// so "book slot 1 2" reads as 12.
func slotNumberFromDigits(command string) (int, bool) {
	var digits strings.Builder
	for _, r := range command {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, false
	}
	return n, true
}
