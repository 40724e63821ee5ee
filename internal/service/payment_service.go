package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"parking_booking/internal/domain"
	"parking_booking/internal/repository"

	"github.com/google/uuid"
)

// DefaultPaymentDelay is how long a simulated payment stays in processing.
const DefaultPaymentDelay = 2 * time.Second

// PaymentNotifier is implemented by the websocket manager.
type PaymentNotifier interface {
	NotifyPayment(payment domain.Payment)
}

// BookingPublisher is implemented by the broker publisher.
type BookingPublisher interface {
	PublishBookingConfirmed(ctx context.Context, event domain.BookingConfirmedEvent) error
}

// PaymentService simulates checkout: details -> processing -> success after a
// fixed delay. There is no gateway and no failure path; form fields are not validated.
type PaymentService struct {
	paymentRepo  repository.PaymentRepository
	locationRepo repository.LocationRepository
	delay        time.Duration
	notifier     PaymentNotifier
	publisher    BookingPublisher
	now          func() time.Time
	afterFunc    func(d time.Duration, f func())
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	locationRepo repository.LocationRepository,
	delay time.Duration,
	notifier PaymentNotifier, // may be nil
	publisher BookingPublisher, // may be nil
) *PaymentService {
	if delay < 0 {
		delay = DefaultPaymentDelay
	}
	return &PaymentService{
		paymentRepo:  paymentRepo,
		locationRepo: locationRepo,
		delay:        delay,
		notifier:     notifier,
		publisher:    publisher,
		now:          func() time.Time { return time.Now().UTC() },
		afterFunc:    func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
}

// Confirmation builds the confirmation view for a booking request. The caller
// has already defaulted hours; it is clamped here before pricing.
func (s *PaymentService) Confirmation(ctx context.Context, req domain.BookingRequest) (*domain.ConfirmationView, error) {
	loc, err := s.locationRepo.FindByID(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}
	hours := ClampHours(req.Hours)
	breakdown := CalculatePrice(loc.PricePerHour, hours)
	display := DisplayPrice(breakdown)
	return &domain.ConfirmationView{
		Location:      loc.Summary(),
		SlotID:        req.SlotID,
		SlotLabel:     SlotLabel(req.SlotID),
		Date:          s.now().Format("2006-01-02"),
		Hours:         hours,
		DurationLabel: DurationLabel(hours),
		Breakdown:     breakdown,
		Display:       display,
		PayLabel:      "Pay $" + display.Total,
		PaymentStep:   domain.PaymentDetails,
	}, nil
}

// SlotLabel is the second '-' separated part of a slot id ("dt-12" -> "12").
func SlotLabel(slotID string) string {
	parts := strings.Split(slotID, "-")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// Quote prices a location (or an explicit rate) for the given hours.
func (s *PaymentService) Quote(ctx context.Context, dto domain.QuoteDTO) (*domain.QuoteResponse, error) {
	var rate float64
	switch {
	case dto.Rate != nil:
		rate = *dto.Rate
	case dto.LocationID != "":
		loc, err := s.locationRepo.FindByID(ctx, dto.LocationID)
		if err != nil {
			return nil, err
		}
		rate = loc.PricePerHour
	default:
		return nil, fmt.Errorf("quote needs a location_id or a rate")
	}
	breakdown := CalculatePrice(rate, ClampHours(dto.Hours))
	return &domain.QuoteResponse{Breakdown: breakdown, Display: DisplayPrice(breakdown)}, nil
}

// Submit accepts the payment form and starts processing.
func (s *PaymentService) Submit(ctx context.Context, dto domain.PaymentSubmissionDTO) (*domain.Payment, error) {
	loc, err := s.locationRepo.FindByID(ctx, dto.LocationID)
	if err != nil {
		return nil, err
	}
	method := dto.Method
	if method == "" {
		method = domain.MethodCard
	}
	hours := ClampHours(dto.Hours)
	breakdown := CalculatePrice(loc.PricePerHour, hours)

	payment := &domain.Payment{
		ID:        uuid.New().String(),
		Step:      domain.PaymentProcessing,
		Method:    method,
		Request:   domain.BookingRequest{SlotID: dto.SlotID, LocationID: loc.ID, Hours: hours},
		Breakdown: breakdown,
		Display:   DisplayPrice(breakdown),
		CreatedAt: s.now(),
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, fmt.Errorf("save payment: %w", err)
	}
	log.Printf("Service: payment %s processing (%s, slot %s at %s, %d h, total %s)",
		payment.ID, method, dto.SlotID, loc.ID, hours, payment.Display.Total)
	s.notify(*payment)

	id, locationName := payment.ID, loc.Name
	s.afterFunc(s.delay, func() { s.complete(id, locationName) })
	return payment, nil
}

func (s *PaymentService) Get(ctx context.Context, id string) (*domain.Payment, error) {
	return s.paymentRepo.FindByID(ctx, id)
}

func (s *PaymentService) complete(id, locationName string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		log.Printf("Service: payment %s vanished before completion: %v", id, err)
		return
	}
	if payment.Step == domain.PaymentSuccess {
		return
	}
	done := s.now()
	payment.Step = domain.PaymentSuccess
	payment.CompletedAt = &done
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		log.Printf("Service: could not save completed payment %s: %v", id, err)
		return
	}
	log.Printf("Service: payment %s succeeded", id)
	s.notify(*payment)

	if s.publisher == nil {
		return
	}
	event := domain.BookingConfirmedEvent{
		EventID:      uuid.New().String(),
		PaymentID:    payment.ID,
		LocationID:   payment.Request.LocationID,
		LocationName: locationName,
		SlotID:       payment.Request.SlotID,
		Hours:        payment.Request.Hours,
		Method:       payment.Method,
		Total:        RoundCents(payment.Breakdown.Total),
		ConfirmedAt:  done.Format(time.RFC3339),
	}
	if err := s.publisher.PublishBookingConfirmed(ctx, event); err != nil {
		log.Printf("Service: booking.confirmed for payment %s not published: %v", id, err)
	}
}

func (s *PaymentService) notify(p domain.Payment) {
	if s.notifier != nil {
		s.notifier.NotifyPayment(p)
	}
}
