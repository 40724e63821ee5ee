package domain

import (
	"encoding/json"
	"time"
)

// Values of the /status board.
const (
	SlotStateEmpty    = "Empty"
	SlotStateOccupied = "Occupied"
)

// GenericDeviceEvent is parsed first to pick the concrete message type.
type GenericDeviceEvent struct {
	DeviceID    string          `json:"device_id"`
	MessageType string          `json:"message_type"`
	Timestamp   string          `json:"timestamp"`
	RawPayload  json.RawMessage `json:"-"`
}

// DeviceSlotStatusEvent reports one detector slot. SlotIndex is 1-based.
type DeviceSlotStatusEvent struct {
	GenericDeviceEvent
	SlotIndex  int  `json:"slot_index"`
	IsOccupied bool `json:"is_occupied"`
}

// DeviceStatusSnapshotEvent replaces the whole board.
type DeviceStatusSnapshotEvent struct {
	GenericDeviceEvent
	Slots []string `json:"slots"`
}

type SlotUpdateDTO struct {
	Occupied *bool `json:"occupied" binding:"required"`
}

// Outcomes recorded in the device event log.
const (
	EventProcessed = "processed"
	EventIgnored   = "ignored"
	EventError     = "error"
)

// DeviceEventLog is the audit row written for every device queue message.
type DeviceEventLog struct {
	ID              int64           `json:"id"`
	ReceivedAt      time.Time       `json:"received_at"`
	DeviceID        string          `json:"device_id,omitempty"`
	MessageType     string          `json:"message_type,omitempty"`
	Payload         json.RawMessage `json:"payload"`
	ProcessedStatus string          `json:"processed_status"`
	ProcessingNotes string          `json:"processing_notes,omitempty"`
}
