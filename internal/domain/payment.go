package domain

import "time"

type PaymentStep string

const (
	PaymentDetails    PaymentStep = "details"
	PaymentProcessing PaymentStep = "processing"
	PaymentSuccess    PaymentStep = "success"
)

type PaymentMethod string

const (
	MethodCard   PaymentMethod = "card"
	MethodBank   PaymentMethod = "bank"
	MethodWallet PaymentMethod = "wallet"
)

// Payment is the simulated checkout of one booking request.
type Payment struct {
	ID          string         `json:"id"`
	Step        PaymentStep    `json:"step"`
	Method      PaymentMethod  `json:"method"`
	Request     BookingRequest `json:"request"`
	Breakdown   PriceBreakdown `json:"breakdown"`
	Display     PriceDisplay   `json:"display"`
	CreatedAt   time.Time      `json:"created_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
}

// PaymentSubmissionDTO is the payment form. Fields are accepted as-is, empty included.
type PaymentSubmissionDTO struct {
	SlotID     string            `json:"slot"`
	LocationID string            `json:"location" binding:"required"`
	Hours      int               `json:"hours"`
	Method     PaymentMethod     `json:"method" binding:"omitempty,oneof=card bank wallet"`
	Fields     map[string]string `json:"fields,omitempty"`
}

// BookingConfirmedEvent is published once a simulated payment succeeds.
type BookingConfirmedEvent struct {
	EventID      string        `json:"event_id"`
	PaymentID    string        `json:"payment_id"`
	LocationID   string        `json:"location_id"`
	LocationName string        `json:"location_name"`
	SlotID       string        `json:"slot_id"`
	Hours        int           `json:"hours"`
	Method       PaymentMethod `json:"method"`
	Total        float64       `json:"total"`
	ConfirmedAt  string        `json:"confirmed_at"`
}
