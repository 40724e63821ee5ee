// Package catalog holds the built-in location catalog.
package catalog

import (
	"fmt"

	"parking_booking/internal/domain"
)

// band assigns value to every slot index below upTo. The last band of a list
// should use upTo = -1 to catch the remaining slots.
type band[T any] struct {
	upTo  int
	value T
}

func pick[T any](i int, bands []band[T]) T {
	for _, b := range bands {
		if b.upTo < 0 || i < b.upTo {
			return b.value
		}
	}
	var zero T
	return zero
}

type locationSeed struct {
	id         string
	name       string
	address    string
	rate       float64
	total      int
	advertised int
	features   []string
	position   domain.Position
	slotPrefix string
	label      string
	statuses   []band[domain.SlotStatus]
	types      []band[domain.SlotType]
	prices     []band[float64]
}

var seeds = []locationSeed{
	{
		id: "downtown", name: "Downtown Parking Garage", address: "123 Main St, Downtown",
		rate: 2.5, total: 50, advertised: 15,
		features:   []string{"CCTV", "24/7 Security", "Covered Parking", "EV Charging"},
		position:   domain.Position{Lat: 51.505, Lng: -0.09},
		slotPrefix: "dt", label: "A",
		statuses: []band[domain.SlotStatus]{{15, domain.StatusFree}, {18, domain.StatusReserved}, {20, domain.StatusEV}, {-1, domain.StatusOccupied}},
		types:    []band[domain.SlotType]{{5, domain.TypeCompact}, {40, domain.TypeStandard}, {45, domain.TypeLarge}, {48, domain.TypeHandicap}, {-1, domain.TypeEV}},
		prices:   []band[float64]{{5, 2.0}, {40, 2.5}, {45, 3.0}, {48, 2.5}, {-1, 3.5}},
	},
	{
		id: "mall", name: "Central Mall Parking", address: "456 Shopping Ave, Central District",
		rate: 3.0, total: 100, advertised: 3,
		features:   []string{"CCTV", "Covered Parking", "EV Charging", "Car Wash"},
		position:   domain.Position{Lat: 51.51, Lng: -0.1},
		slotPrefix: "mall", label: "B",
		statuses: []band[domain.SlotStatus]{{3, domain.StatusFree}, {5, domain.StatusReserved}, {10, domain.StatusEV}, {-1, domain.StatusOccupied}},
		types:    []band[domain.SlotType]{{20, domain.TypeCompact}, {80, domain.TypeStandard}, {95, domain.TypeLarge}, {98, domain.TypeHandicap}, {-1, domain.TypeEV}},
		prices:   []band[float64]{{20, 2.5}, {80, 3.0}, {95, 3.5}, {98, 3.0}, {-1, 4.0}},
	},
	{
		id: "station", name: "Metro Station P1", address: "789 Transit Rd, Metro District",
		rate: 1.75, total: 30, advertised: 0,
		features:   []string{"CCTV", "24/7 Security"},
		position:   domain.Position{Lat: 51.5, Lng: -0.08},
		slotPrefix: "station", label: "C",
		statuses: []band[domain.SlotStatus]{{-1, domain.StatusOccupied}},
		types:    []band[domain.SlotType]{{20, domain.TypeStandard}, {28, domain.TypeCompact}, {-1, domain.TypeHandicap}},
		prices:   []band[float64]{{20, 1.75}, {28, 1.5}, {-1, 1.75}},
	},
	{
		id: "riverside", name: "Riverside Parking", address: "321 River View, East Side",
		rate: 2.0, total: 40, advertised: 22,
		features:   []string{"Open Air", "CCTV", "EV Charging"},
		position:   domain.Position{Lat: 51.508, Lng: -0.11},
		slotPrefix: "river", label: "D",
		statuses: []band[domain.SlotStatus]{{22, domain.StatusFree}, {25, domain.StatusReserved}, {28, domain.StatusEV}, {-1, domain.StatusOccupied}},
		types:    []band[domain.SlotType]{{30, domain.TypeStandard}, {35, domain.TypeCompact}, {38, domain.TypeLarge}, {39, domain.TypeHandicap}, {-1, domain.TypeEV}},
		prices:   []band[float64]{{30, 2.0}, {35, 1.75}, {38, 2.5}, {39, 2.0}, {-1, 3.0}},
	},
	{
		id: "airport", name: "Airport Terminal P3", address: "100 Airport Blvd, Terminal 3",
		rate: 4.5, total: 200, advertised: 8,
		features:   []string{"CCTV", "24/7 Security", "Covered Parking", "Valet", "EV Charging"},
		position:   domain.Position{Lat: 51.495, Lng: -0.12},
		slotPrefix: "airport", label: "E",
		statuses: []band[domain.SlotStatus]{{8, domain.StatusFree}, {15, domain.StatusReserved}, {25, domain.StatusEV}, {-1, domain.StatusOccupied}},
		types:    []band[domain.SlotType]{{100, domain.TypeStandard}, {150, domain.TypeCompact}, {180, domain.TypeLarge}, {190, domain.TypeHandicap}, {-1, domain.TypeEV}},
		prices:   []band[float64]{{100, 4.5}, {150, 4.0}, {180, 5.0}, {190, 4.5}, {-1, 6.0}},
	},
}

func (s locationSeed) build() domain.ParkingLocation {
	slots := make([]domain.ParkingSlot, s.total)
	for i := range slots {
		slots[i] = domain.ParkingSlot{
			ID:     fmt.Sprintf("%s-%d", s.slotPrefix, i+1),
			Number: fmt.Sprintf("%s%d", s.label, i+1),
			Status: pick(i, s.statuses),
			Type:   pick(i, s.types),
			Price:  pick(i, s.prices),
		}
	}
	loc := domain.ParkingLocation{
		ID:                  s.id,
		Name:                s.name,
		Address:             s.address,
		TotalSlots:          s.total,
		PricePerHour:        s.rate,
		Features:            append([]string(nil), s.features...),
		Position:            s.position,
		AdvertisedAvailable: s.advertised,
		Slots:               slots,
	}
	loc.Recount()
	return loc
}

// Seed builds the built-in locations in display order. Every call returns fresh copies.
func Seed() []domain.ParkingLocation {
	out := make([]domain.ParkingLocation, 0, len(seeds))
	for _, s := range seeds {
		out = append(out, s.build())
	}
	return out
}
