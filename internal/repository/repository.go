package repository

import (
	"context"
	"errors"
	"time"

	"parking_booking/internal/domain"
)

var ErrNotFound = errors.New("record not found")

// LocationRepository is the single read interface over the location catalog.
type LocationRepository interface {
	FindByID(ctx context.Context, id string) (*domain.ParkingLocation, error)
	FindAll(ctx context.Context) ([]domain.ParkingLocation, error)
}

type BookingFlowRepository interface {
	Save(ctx context.Context, flow *domain.BookingFlow) error
	FindByID(ctx context.Context, id string) (*domain.BookingFlow, error)
}

type PaymentRepository interface {
	Save(ctx context.Context, payment *domain.Payment) error
	FindByID(ctx context.Context, id string) (*domain.Payment, error)
}

// ExpiringRepository is implemented by stores that need an explicit sweep
// to drop records older than cutoff. Redis expires its keys itself.
type ExpiringRepository interface {
	CleanupExpired(ctx context.Context, cutoff time.Time) (int, error)
}

// DeviceEventLogRepository keeps an audit trail of detector messages.
type DeviceEventLogRepository interface {
	Create(ctx context.Context, entry *domain.DeviceEventLog) error
}
