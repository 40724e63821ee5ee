package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"parking_booking/internal/domain"
	"parking_booking/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition = errors.New("booking flow cannot do that in its current state")
	ErrSlotNotFound      = errors.New("slot not found at this location")
	ErrInvalidHours      = errors.New("provide either hours or delta")
)

// BookingFlowService drives slot selection and the booking modal:
// idle -> reviewing (free slot picked) -> confirmed, with reviewing -> idle on dismiss.
type BookingFlowService struct {
	flowRepo     repository.BookingFlowRepository
	locationRepo repository.LocationRepository
	now          func() time.Time
}

func NewBookingFlowService(flowRepo repository.BookingFlowRepository, locationRepo repository.LocationRepository) *BookingFlowService {
	return &BookingFlowService{
		flowRepo:     flowRepo,
		locationRepo: locationRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *BookingFlowService) Start(ctx context.Context) (*domain.BookingFlow, error) {
	now := s.now()
	flow := &domain.BookingFlow{
		ID:        uuid.New().String(),
		State:     domain.FlowIdle,
		Hours:     domain.MinBookingHours,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.flowRepo.Save(ctx, flow); err != nil {
		return nil, fmt.Errorf("start booking flow: %w", err)
	}
	return flow, nil
}

func (s *BookingFlowService) Get(ctx context.Context, id string) (*domain.BookingFlow, error) {
	return s.flowRepo.FindByID(ctx, id)
}

// SelectSlot picks a slot for review. Picking a slot that is not free changes
// nothing and reports selected=false; this is not an error.
func (s *BookingFlowService) SelectSlot(ctx context.Context, id string, dto domain.SelectSlotDTO) (*domain.BookingFlow, bool, error) {
	flow, err := s.flowRepo.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	loc, err := s.locationRepo.FindByID(ctx, dto.LocationID)
	if err != nil {
		return nil, false, err
	}
	slot, ok := loc.FindSlot(dto.SlotID)
	if !ok {
		return nil, false, fmt.Errorf("%w: '%s' at '%s'", ErrSlotNotFound, dto.SlotID, dto.LocationID)
	}

	selected, err := selectSlot(flow, loc.ID, *slot)
	if err != nil || !selected {
		return flow, false, err
	}
	flow.UpdatedAt = s.now()
	if err := s.flowRepo.Save(ctx, flow); err != nil {
		return nil, false, fmt.Errorf("select slot: %w", err)
	}
	log.Printf("Service: flow %s reviewing slot %s at %s", flow.ID, slot.ID, loc.ID)
	return flow, true, nil
}

func (s *BookingFlowService) SetHours(ctx context.Context, id string, dto domain.SetHoursDTO) (*domain.BookingFlow, error) {
	return s.update(ctx, id, func(f *domain.BookingFlow) error {
		switch {
		case dto.Hours != nil && dto.Delta == nil:
			return setHours(f, *dto.Hours)
		case dto.Delta != nil && dto.Hours == nil:
			return stepHours(f, *dto.Delta)
		default:
			return ErrInvalidHours
		}
	})
}

func (s *BookingFlowService) Dismiss(ctx context.Context, id string) (*domain.BookingFlow, error) {
	return s.update(ctx, id, dismiss)
}

// Confirm ends the flow and returns the request to carry to the confirmation route.
// The slot's status is left as it is.
func (s *BookingFlowService) Confirm(ctx context.Context, id string) (*domain.BookingFlow, *domain.BookingRequest, error) {
	flow, err := s.update(ctx, id, confirm)
	if err != nil {
		return nil, nil, err
	}
	req := flow.Request()
	return flow, &req, nil
}

func (s *BookingFlowService) update(ctx context.Context, id string, apply func(*domain.BookingFlow) error) (*domain.BookingFlow, error) {
	flow, err := s.flowRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(flow); err != nil {
		return nil, err
	}
	flow.UpdatedAt = s.now()
	if err := s.flowRepo.Save(ctx, flow); err != nil {
		return nil, fmt.Errorf("save booking flow %s: %w", id, err)
	}
	return flow, nil
}

func selectSlot(f *domain.BookingFlow, locationID string, slot domain.ParkingSlot) (bool, error) {
	if f.State == domain.FlowConfirmed {
		return false, ErrInvalidTransition
	}
	if !slot.Selectable() {
		return false, nil
	}
	f.State = domain.FlowReviewing
	f.LocationID = locationID
	f.SlotID = slot.ID
	f.SlotNumber = slot.Number
	f.SlotType = slot.Type
	f.SlotPrice = slot.Price
	f.Hours = ClampHours(f.Hours)
	return true, nil
}

func setHours(f *domain.BookingFlow, hours int) error {
	if f.State != domain.FlowReviewing {
		return ErrInvalidTransition
	}
	f.Hours = ClampHours(hours)
	return nil
}

// stepHours is the +/- stepper. delta is bounded first so the sum cannot overflow.
func stepHours(f *domain.BookingFlow, delta int) error {
	if delta > domain.MaxBookingHours {
		delta = domain.MaxBookingHours
	} else if delta < -domain.MaxBookingHours {
		delta = -domain.MaxBookingHours
	}
	return setHours(f, f.Hours+delta)
}

func dismiss(f *domain.BookingFlow) error {
	if f.State != domain.FlowReviewing {
		return ErrInvalidTransition
	}
	f.State = domain.FlowIdle
	f.LocationID, f.SlotID, f.SlotNumber, f.SlotType, f.SlotPrice = "", "", "", "", 0
	return nil
}

func confirm(f *domain.BookingFlow) error {
	if f.State != domain.FlowReviewing {
		return ErrInvalidTransition
	}
	f.State = domain.FlowConfirmed
	return nil
}
