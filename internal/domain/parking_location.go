package domain

import "strings"

type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type ParkingLocation struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	TotalSlots   int      `json:"total_slots"`
	PricePerHour float64  `json:"price_per_hour"`
	Features     []string `json:"features"`
	Position     Position `json:"position"`

	// AvailableSlots is always recounted from Slots, see Recount.
	AvailableSlots int `json:"available_slots"`
	// AdvertisedAvailable is the figure the data source declares. It is only
	// compared against the recount to report drift.
	AdvertisedAvailable int `json:"-"`

	Slots []ParkingSlot `json:"slots,omitempty"`
}

// Recount sets AvailableSlots to the number of free slots and returns it.
func (l *ParkingLocation) Recount() int {
	free := 0
	for _, s := range l.Slots {
		if s.Status == StatusFree {
			free++
		}
	}
	l.AvailableSlots = free
	return free
}

// Drifted reports whether the advertised availability disagrees with the slot table.
func (l *ParkingLocation) Drifted() bool {
	return l.AdvertisedAvailable != l.AvailableSlots
}

func (l *ParkingLocation) FindSlot(slotID string) (*ParkingSlot, bool) {
	for i := range l.Slots {
		if l.Slots[i].ID == slotID {
			return &l.Slots[i], true
		}
	}
	return nil, false
}

// Matches is the dashboard search: case-insensitive substring on name or address.
func (l *ParkingLocation) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(l.Name), q) || strings.Contains(strings.ToLower(l.Address), q)
}

// Clone returns a copy that shares no slices with l.
func (l ParkingLocation) Clone() ParkingLocation {
	c := l
	c.Features = append([]string(nil), l.Features...)
	c.Slots = append([]ParkingSlot(nil), l.Slots...)
	return c
}

// Summary drops the slot table, for list views.
func (l ParkingLocation) Summary() ParkingLocation {
	c := l
	c.Features = append([]string(nil), l.Features...)
	c.Slots = nil
	return c
}
