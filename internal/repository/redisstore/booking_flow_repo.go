// Package redisstore keeps booking flows in Redis so several instances can serve one visitor.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"parking_booking/internal/domain"
	"parking_booking/internal/repository"

	"github.com/redis/go-redis/v9"
)

const flowKeyPrefix = "booking_flow:"

type bookingFlowRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookingFlowRepository stores each flow as JSON under booking_flow:<id>.
// Every save refreshes the TTL, so abandoned flows expire on their own.
func NewBookingFlowRepository(client *redis.Client, ttl time.Duration) repository.BookingFlowRepository {
	return &bookingFlowRepository{client: client, ttl: ttl}
}

func (r *bookingFlowRepository) Save(ctx context.Context, flow *domain.BookingFlow) error {
	data, err := json.Marshal(flow)
	if err != nil {
		return fmt.Errorf("BookingFlowRepository.Save (marshal): %w", err)
	}
	if err := r.client.Set(ctx, flowKeyPrefix+flow.ID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("BookingFlowRepository.Save: %w", err)
	}
	return nil
}

func (r *bookingFlowRepository) FindByID(ctx context.Context, id string) (*domain.BookingFlow, error) {
	data, err := r.client.Get(ctx, flowKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("BookingFlowRepository.FindByID: %w", err)
	}
	var flow domain.BookingFlow
	if err := json.Unmarshal(data, &flow); err != nil {
		return nil, fmt.Errorf("BookingFlowRepository.FindByID (unmarshal): %w", err)
	}
	return &flow, nil
}

// NewClient connects to Redis and pings it with a short timeout.
func NewClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}
