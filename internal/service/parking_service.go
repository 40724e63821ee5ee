package service

import (
	"context"
	"fmt"
	"log"

	"parking_booking/internal/domain"
	"parking_booking/internal/repository"
)

// Default map view when the visitor's position is unknown.
var (
	DefaultMapCenter = domain.Position{Lat: 51.505, Lng: -0.09}
	DefaultMapZoom   = 13
)

type ParkingService struct {
	locationRepo repository.LocationRepository
}

func NewParkingService(locationRepo repository.LocationRepository) *ParkingService {
	return &ParkingService{locationRepo: locationRepo}
}

func (s *ParkingService) GetLocation(ctx context.Context, id string) (*domain.ParkingLocation, error) {
	return s.locationRepo.FindByID(ctx, id)
}

// ListLocations returns location summaries (no slot table), filtered by the search query.
func (s *ParkingService) ListLocations(ctx context.Context, query string) ([]domain.ParkingLocation, error) {
	all, err := s.locationRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	out := make([]domain.ParkingLocation, 0, len(all))
	for i := range all {
		if all[i].Matches(query) {
			out = append(out, all[i].Summary())
		}
	}
	return out, nil
}

func (s *ParkingService) GetSlots(ctx context.Context, locationID string) ([]domain.ParkingSlot, error) {
	loc, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	return loc.Slots, nil
}

// MarkerColorFor colours a location by the share of free slots:
// above 30% green, anything free yellow, full red.
func MarkerColorFor(available, total int) domain.MarkerColor {
	if total <= 0 || available <= 0 {
		return domain.MarkerRed
	}
	percentage := float64(available) / float64(total) * 100
	if percentage > 30 {
		return domain.MarkerGreen
	}
	return domain.MarkerYellow
}

// MapView builds the dashboard map. A known user position recentres the view.
func (s *ParkingService) MapView(ctx context.Context, userPos *domain.Position) (*domain.MapView, error) {
	locs, err := s.locationRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("map view: %w", err)
	}
	view := &domain.MapView{Center: DefaultMapCenter, Zoom: DefaultMapZoom, Markers: make([]domain.MapMarker, 0, len(locs))}
	if userPos != nil {
		view.Center = *userPos
	}
	for _, l := range locs {
		color := MarkerColorFor(l.AvailableSlots, l.TotalSlots)
		view.Markers = append(view.Markers, domain.MapMarker{
			ID:           l.ID,
			Name:         l.Name,
			Position:     l.Position,
			Slots:        l.AvailableSlots,
			MaxSlots:     l.TotalSlots,
			PricePerHour: l.PricePerHour,
			Color:        color,
			IconURL:      fmt.Sprintf("/marker-%s.png", color),
		})
	}
	return view, nil
}

// CheckCatalogDrift logs every location whose advertised availability
// disagrees with its slot table and returns how many did.
func (s *ParkingService) CheckCatalogDrift(ctx context.Context) (int, error) {
	locs, err := s.locationRepo.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("check catalog drift: %w", err)
	}
	drifted := 0
	for i := range locs {
		if locs[i].Drifted() {
			drifted++
			log.Printf("Service: location '%s' advertises %d available slots but has %d free; serving the recount",
				locs[i].ID, locs[i].AdvertisedAvailable, locs[i].AvailableSlots)
		}
	}
	return drifted, nil
}
