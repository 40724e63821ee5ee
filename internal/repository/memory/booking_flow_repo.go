package memory

import (
	"context"
	"sync"
	"time"

	"parking_booking/internal/domain"
	"parking_booking/internal/repository"
)

type bookingFlowRepository struct {
	mu    sync.RWMutex
	flows map[string]domain.BookingFlow
}

func NewBookingFlowRepository() repository.BookingFlowRepository {
	return &bookingFlowRepository{flows: make(map[string]domain.BookingFlow)}
}

func (r *bookingFlowRepository) Save(_ context.Context, flow *domain.BookingFlow) error {
	r.mu.Lock()
	r.flows[flow.ID] = *flow
	r.mu.Unlock()
	return nil
}

func (r *bookingFlowRepository) FindByID(_ context.Context, id string) (*domain.BookingFlow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.flows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &f, nil
}

// CleanupExpired drops flows not touched since cutoff.
func (r *bookingFlowRepository) CleanupExpired(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, f := range r.flows {
		if f.UpdatedAt.Before(cutoff) {
			delete(r.flows, id)
			n++
		}
	}
	return n, nil
}
