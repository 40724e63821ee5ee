// Package memory keeps repositories in process memory.
package memory

import (
	"context"
	"sync"

	"parking_booking/internal/domain"
	"parking_booking/internal/repository"
)

type locationRepository struct {
	mu        sync.RWMutex
	order     []string
	locations map[string]domain.ParkingLocation
}

// NewLocationRepository serves a fixed set of locations, typically catalog.Seed().
// Reads hand out copies so callers cannot change the catalog.
func NewLocationRepository(locations []domain.ParkingLocation) repository.LocationRepository {
	r := &locationRepository{locations: make(map[string]domain.ParkingLocation, len(locations))}
	for _, l := range locations {
		l = l.Clone()
		l.Recount()
		r.order = append(r.order, l.ID)
		r.locations[l.ID] = l
	}
	return r
}

func (r *locationRepository) FindByID(_ context.Context, id string) (*domain.ParkingLocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.locations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := l.Clone()
	return &c, nil
}

func (r *locationRepository) FindAll(_ context.Context) ([]domain.ParkingLocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.ParkingLocation, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.locations[id].Clone())
	}
	return out, nil
}
