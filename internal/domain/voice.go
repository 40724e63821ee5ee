package domain

type VoiceIntent string

const (
	IntentStatusQuery VoiceIntent = "status_query"
	IntentBookSlot    VoiceIntent = "book_slot"
	IntentUnknown     VoiceIntent = "unknown"
)

type VoiceCommandDTO struct {
	Utterance string `json:"utterance" binding:"required"`
}

type VoiceCommandResult struct {
	Command    string      `json:"command"` // lower-cased utterance
	Intent     VoiceIntent `json:"intent"`
	Speech     string      `json:"speech"`
	SlotNumber *int        `json:"slot_number,omitempty"`
}
