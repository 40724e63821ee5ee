package memory

import (
	"context"
	"sync"
	"time"

	"parking_booking/internal/domain"
	"parking_booking/internal/repository"
)

type paymentRepository struct {
	mu       sync.RWMutex
	payments map[string]domain.Payment
}

func NewPaymentRepository() repository.PaymentRepository {
	return &paymentRepository{payments: make(map[string]domain.Payment)}
}

func (r *paymentRepository) Save(_ context.Context, p *domain.Payment) error {
	c := *p
	if p.CompletedAt != nil {
		t := *p.CompletedAt
		c.CompletedAt = &t
	}
	r.mu.Lock()
	r.payments[p.ID] = c
	r.mu.Unlock()
	return nil
}

func (r *paymentRepository) FindByID(_ context.Context, id string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if p.CompletedAt != nil {
		t := *p.CompletedAt
		p.CompletedAt = &t
	}
	return &p, nil
}

// CleanupExpired drops payments last changed before cutoff. A payment still
// processing is kept since its completion is pending.
func (r *paymentRepository) CleanupExpired(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, p := range r.payments {
		if p.Step == domain.PaymentProcessing {
			continue
		}
		last := p.CreatedAt
		if p.CompletedAt != nil {
			last = *p.CompletedAt
		}
		if last.Before(cutoff) {
			delete(r.payments, id)
			n++
		}
	}
	return n, nil
}
