package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"parking_booking/internal/domain"
	"parking_booking/internal/repository"
)

// DefaultStatusSlotCount is the number of detector slots on the board.
const DefaultStatusSlotCount = 9

var (
	ErrSlotIndexOutOfRange = errors.New("slot index out of range")
	ErrInvalidSlotState    = errors.New("slot state must be Empty or Occupied")
)

// ErrUnprocessableEvent marks a device message that will fail the same way on every delivery.
var ErrUnprocessableEvent = errors.New("unprocessable device event")

// StatusBroadcaster is implemented by the websocket manager.
type StatusBroadcaster interface {
	BroadcastStatus(status []string, available int)
}

// StatusBoard holds the detector's view of its slots as "Empty"/"Occupied"
// strings. This is what GET /status serves.
type StatusBoard struct {
	mu            sync.RWMutex
	slots         []string
	prevAvailable int
	broadcaster   StatusBroadcaster
	eventLog      repository.DeviceEventLogRepository
}

func NewStatusBoard(size int, broadcaster StatusBroadcaster) *StatusBoard {
	if size <= 0 {
		size = DefaultStatusSlotCount
	}
	slots := make([]string, size)
	for i := range slots {
		slots[i] = domain.SlotStateEmpty
	}
	return &StatusBoard{slots: slots, prevAvailable: size, broadcaster: broadcaster}
}

// UseEventLog records every device event handled from now on.
func (b *StatusBoard) UseEventLog(repo repository.DeviceEventLogRepository) {
	b.eventLog = repo
}

// FetchStatus returns a copy of the board.
func (b *StatusBoard) FetchStatus(_ context.Context) ([]string, error) {
	return b.Snapshot(), nil
}

func (b *StatusBoard) Snapshot() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]string(nil), b.slots...)
}

func (b *StatusBoard) Size() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.slots)
}

func (b *StatusBoard) Available() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return countEmpty(b.slots)
}

// SetSlot updates one slot. index is 1-based.
func (b *StatusBoard) SetSlot(index int, occupied bool) ([]string, error) {
	state := domain.SlotStateEmpty
	if occupied {
		state = domain.SlotStateOccupied
	}

	b.mu.Lock()
	if index < 1 || index > len(b.slots) {
		n := len(b.slots)
		b.mu.Unlock()
		return nil, fmt.Errorf("%w: %d not in 1..%d", ErrSlotIndexOutOfRange, index, n)
	}
	changed := b.slots[index-1] != state
	b.slots[index-1] = state
	snapshot, available, availabilityChanged := b.commitLocked()
	b.mu.Unlock()

	if changed {
		b.announce(snapshot, available, availabilityChanged)
	}
	return snapshot, nil
}

// Replace swaps in a full snapshot. Its length must match the board.
func (b *StatusBoard) Replace(slots []string) ([]string, error) {
	for i, s := range slots {
		if s != domain.SlotStateEmpty && s != domain.SlotStateOccupied {
			return nil, fmt.Errorf("%w: slot %d is %q", ErrInvalidSlotState, i+1, s)
		}
	}

	b.mu.Lock()
	if len(slots) != len(b.slots) {
		n := len(b.slots)
		b.mu.Unlock()
		return nil, fmt.Errorf("%w: got %d slots, board has %d", ErrSlotIndexOutOfRange, len(slots), n)
	}
	changed := false
	for i := range slots {
		if b.slots[i] != slots[i] {
			changed = true
		}
	}
	copy(b.slots, slots)
	snapshot, available, availabilityChanged := b.commitLocked()
	b.mu.Unlock()

	if changed {
		b.announce(snapshot, available, availabilityChanged)
	}
	return snapshot, nil
}

func (b *StatusBoard) commitLocked() ([]string, int, bool) {
	available := countEmpty(b.slots)
	availabilityChanged := available != b.prevAvailable
	b.prevAvailable = available
	return append([]string(nil), b.slots...), available, availabilityChanged
}

func (b *StatusBoard) announce(snapshot []string, available int, availabilityChanged bool) {
	if availabilityChanged {
		log.Printf("StatusBoard: Available slots: %d/%d | Status: %v", available, len(snapshot), snapshot)
	}
	if b.broadcaster != nil {
		b.broadcaster.BroadcastStatus(snapshot, available)
	}
}

// HandleDeviceEvent applies one detector message from the device queue.
// Unknown message types are logged and acknowledged. Every error it returns
// wraps ErrUnprocessableEvent since the board holds no external state that
// could make a redelivery succeed.
func (b *StatusBoard) HandleDeviceEvent(ctx context.Context, body string) error {
	entry := &domain.DeviceEventLog{
		ReceivedAt:      time.Now().UTC(),
		ProcessedStatus: domain.EventProcessed,
	}
	if json.Valid([]byte(body)) {
		entry.Payload = json.RawMessage(body)
	}

	err := b.applyDeviceEvent(body, entry)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrUnprocessableEvent, err)
		entry.ProcessedStatus = domain.EventError
		entry.ProcessingNotes = err.Error()
	}
	b.record(ctx, entry)
	return err
}

func (b *StatusBoard) applyDeviceEvent(body string, entry *domain.DeviceEventLog) error {
	var generic domain.GenericDeviceEvent
	if err := json.Unmarshal([]byte(body), &generic); err != nil {
		log.Printf("StatusBoard: cannot decode device event: %v. Body: %s", err, body)
		return fmt.Errorf("decode device event: %w", err)
	}
	generic.RawPayload = json.RawMessage(body)
	entry.DeviceID = generic.DeviceID
	entry.MessageType = generic.MessageType

	switch generic.MessageType {
	case "slot_status":
		var event domain.DeviceSlotStatusEvent
		if err := json.Unmarshal(generic.RawPayload, &event); err != nil {
			return fmt.Errorf("decode slot_status event: %w", err)
		}
		_, err := b.SetSlot(event.SlotIndex, event.IsOccupied)
		return err
	case "status_snapshot":
		var event domain.DeviceStatusSnapshotEvent
		if err := json.Unmarshal(generic.RawPayload, &event); err != nil {
			return fmt.Errorf("decode status_snapshot event: %w", err)
		}
		_, err := b.Replace(event.Slots)
		return err
	default:
		log.Printf("StatusBoard: ignoring message type %q from device %s", generic.MessageType, generic.DeviceID)
		entry.ProcessedStatus = domain.EventIgnored
		return nil
	}
}

// record never fails the event; a broken audit log only costs the audit row.
func (b *StatusBoard) record(ctx context.Context, entry *domain.DeviceEventLog) {
	if b.eventLog == nil {
		return
	}
	if err := b.eventLog.Create(ctx, entry); err != nil {
		log.Printf("StatusBoard: could not write device event log: %v", err)
	}
}

func countEmpty(slots []string) int {
	n := 0
	for _, s := range slots {
		if s == domain.SlotStateEmpty {
			n++
		}
	}
	return n
}
