package domain

import (
	"net/url"
	"strconv"
	"time"
)

const (
	MinBookingHours = 1
	MaxBookingHours = 24
)

type FlowState string

const (
	FlowIdle      FlowState = "idle"
	FlowReviewing FlowState = "reviewing"
	FlowConfirmed FlowState = "confirmed"
)

// BookingRequest is what the detail view hands to the confirmation view.
// It only ever travels as query parameters and is never stored.
type BookingRequest struct {
	SlotID     string `json:"slot"`
	LocationID string `json:"location"`
	Hours      int    `json:"hours"`
}

func (r BookingRequest) Query() url.Values {
	v := url.Values{}
	v.Set("slot", r.SlotID)
	v.Set("location", r.LocationID)
	v.Set("hours", strconv.Itoa(r.Hours))
	return v
}

// ConfirmURL is the confirmation route carrying the request.
func (r BookingRequest) ConfirmURL() string {
	return "/booking/confirm?" + r.Query().Encode()
}

// BookingFlow is the state behind the slot grid and booking modal of one visitor.
type BookingFlow struct {
	ID         string    `json:"id"`
	State      FlowState `json:"state"`
	LocationID string    `json:"location_id,omitempty"`
	SlotID     string    `json:"slot_id,omitempty"`
	SlotNumber string    `json:"slot_number,omitempty"`
	SlotType   SlotType  `json:"slot_type,omitempty"`
	SlotPrice  float64   `json:"slot_price,omitempty"`
	Hours      int       `json:"hours"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (f *BookingFlow) Request() BookingRequest {
	return BookingRequest{SlotID: f.SlotID, LocationID: f.LocationID, Hours: f.Hours}
}

type SelectSlotDTO struct {
	LocationID string `json:"location_id" binding:"required"`
	SlotID     string `json:"slot_id" binding:"required"`
}

// SetHoursDTO either sets Hours directly or steps by Delta (the +/- buttons).
type SetHoursDTO struct {
	Hours *int `json:"hours,omitempty"`
	Delta *int `json:"delta,omitempty"`
}

type SelectSlotResponse struct {
	Selected bool         `json:"selected"`
	Flow     *BookingFlow `json:"flow"`
}

type ConfirmFlowResponse struct {
	Flow       *BookingFlow   `json:"flow"`
	Request    BookingRequest `json:"request"`
	ConfirmURL string         `json:"confirm_url"`
}

type PriceBreakdown struct {
	Rate       float64 `json:"rate"`
	Hours      int     `json:"hours"`
	ParkingFee float64 `json:"parking_fee"`
	ServiceFee float64 `json:"service_fee"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
}

// PriceDisplay is a breakdown rounded to cents for presentation.
type PriceDisplay struct {
	ParkingFee string `json:"parking_fee"`
	ServiceFee string `json:"service_fee"`
	Tax        string `json:"tax"`
	Total      string `json:"total"`
}

type QuoteDTO struct {
	LocationID string   `json:"location_id"`
	Rate       *float64 `json:"rate,omitempty" binding:"omitempty,gte=0"`
	Hours      int      `json:"hours"`
}

type QuoteResponse struct {
	Breakdown PriceBreakdown `json:"breakdown"`
	Display   PriceDisplay   `json:"display"`
}

// ConfirmationView is everything the confirmation page renders.
type ConfirmationView struct {
	Location      ParkingLocation `json:"location"`
	SlotID        string          `json:"slot_id"`
	SlotLabel     string          `json:"slot_label"`
	Date          string          `json:"date"`
	Hours         int             `json:"hours"`
	DurationLabel string          `json:"duration_label"`
	Breakdown     PriceBreakdown  `json:"breakdown"`
	Display       PriceDisplay    `json:"display"`
	PayLabel      string          `json:"pay_label"`
	PaymentStep   PaymentStep     `json:"payment_step"`
}
