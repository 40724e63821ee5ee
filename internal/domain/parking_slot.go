package domain

import "fmt"

type SlotStatus string

const (
	StatusFree     SlotStatus = "free"
	StatusOccupied SlotStatus = "occupied"
	StatusReserved SlotStatus = "reserved"
	StatusEV       SlotStatus = "ev"
)

type SlotType string

const (
	TypeStandard SlotType = "standard"
	TypeCompact  SlotType = "compact"
	TypeLarge    SlotType = "large"
	TypeHandicap SlotType = "handicap"
	TypeEV       SlotType = "ev"
)

func (s SlotStatus) Valid() bool {
	switch s {
	case StatusFree, StatusOccupied, StatusReserved, StatusEV:
		return true
	}
	return false
}

// Color is the legend colour the slot grid uses for a status.
func (s SlotStatus) Color() string {
	switch s {
	case StatusFree:
		return "green"
	case StatusOccupied:
		return "red"
	case StatusReserved:
		return "yellow"
	case StatusEV:
		return "blue"
	default:
		return "gray"
	}
}

func (t SlotType) Valid() bool {
	switch t {
	case TypeStandard, TypeCompact, TypeLarge, TypeHandicap, TypeEV:
		return true
	}
	return false
}

type ParkingSlot struct {
	ID     string     `json:"id"`
	Number string     `json:"number"` // display label, e.g. "A12"
	Status SlotStatus `json:"status"`
	Type   SlotType   `json:"type"`
	Price  float64    `json:"price"`
}

// Selectable reports whether a user may pick this slot for booking.
func (s ParkingSlot) Selectable() bool {
	return s.Status == StatusFree
}

// Title is the hover text shown on the slot grid.
func (s ParkingSlot) Title() string {
	return fmt.Sprintf("Slot %s - %s - $%.2f/hr", s.Number, s.Type, s.Price)
}
