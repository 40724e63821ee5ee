package service

import (
	"fmt"
	"math"

	"parking_booking/internal/domain"
)

const (
	ServiceFeeRate = 0.10
	TaxRate        = 0.08
)

// CalculatePrice derives the fee breakdown for rate per hour over hours.
// Values keep full precision; round only for display. Callers clamp hours first.
func CalculatePrice(rate float64, hours int) domain.PriceBreakdown {
	parkingFee := rate * float64(hours)
	serviceFee := parkingFee * ServiceFeeRate
	tax := parkingFee * TaxRate
	return domain.PriceBreakdown{
		Rate:       rate,
		Hours:      hours,
		ParkingFee: parkingFee,
		ServiceFee: serviceFee,
		Tax:        tax,
		Total:      parkingFee + serviceFee + tax,
	}
}

// DisplayPrice rounds every component to cents.
func DisplayPrice(p domain.PriceBreakdown) domain.PriceDisplay {
	return domain.PriceDisplay{
		ParkingFee: FormatMoney(p.ParkingFee),
		ServiceFee: FormatMoney(p.ServiceFee),
		Tax:        FormatMoney(p.Tax),
		Total:      FormatMoney(p.Total),
	}
}

func FormatMoney(v float64) string {
	return fmt.Sprintf("%.2f", RoundCents(v))
}

// RoundCents rounds half away from zero to 2 decimals.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func ClampHours(hours int) int {
	if hours < domain.MinBookingHours {
		return domain.MinBookingHours
	}
	if hours > domain.MaxBookingHours {
		return domain.MaxBookingHours
	}
	return hours
}

// ParseHoursParam reads the hours query parameter the way the confirmation
// page always has: the leading integer of the value, or 1 when there is none.
// "3h" gives 3, "abc" and "" give 1. The result is not clamped.
func ParseHoursParam(raw string) int {
	i := 0
	for i < len(raw) && (raw[i] == ' ' || raw[i] == '\t' || raw[i] == '\n') {
		i++
	}
	sign := 1
	if i < len(raw) && (raw[i] == '+' || raw[i] == '-') {
		if raw[i] == '-' {
			sign = -1
		}
		i++
	}
	n, digits := 0, 0
	for ; i < len(raw) && raw[i] >= '0' && raw[i] <= '9'; i++ {
		if n > math.MaxInt32/10 {
			// far beyond any bookable duration
			return sign * math.MaxInt32
		}
		n = n*10 + int(raw[i]-'0')
		digits++
	}
	if digits == 0 {
		return 1
	}
	return sign * n
}

// DurationLabel renders "1 hour" / "N hours".
func DurationLabel(hours int) string {
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
