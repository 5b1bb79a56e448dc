// Package pricing turns a room's nightly rate and a stay into the amounts a booking owes.
package pricing

import (
	"errors"
	"hotel/shared"
	"hotel/shared/constant"
	"math"
	"time"
)

var (
	ErrInvalidDateRange = errors.New("check-out must be at least one night after check-in")
	ErrInvalidPolicy    = errors.New("invalid pricing policy")
)

type Quote struct {
	Nights          int
	NightlyRate     int64
	TotalPrice      int64
	DepositAmount   int64
	RemainingAmount int64
}

// Nights counts whole calendar days between the two dates, ignoring the time of day.
func Nights(checkIn, checkOut time.Time) (int, error) {
	days := shared.DateOnly(checkOut).Sub(shared.DateOnly(checkIn)).Hours() / constant.HoursPerDay
	if days < 1 {
		return 0, ErrInvalidDateRange
	}

	return int(days), nil
}

func Calculate(basePrice int64, discountPercent int, checkIn, checkOut time.Time, depositRate float64) (Quote, error) {
	if basePrice < 0 || discountPercent < 0 || discountPercent > 100 || depositRate < 0 || depositRate > 1 {
		return Quote{}, ErrInvalidPolicy
	}

	nights, err := Nights(checkIn, checkOut)
	if err != nil {
		return Quote{}, err
	}

	rate := round(float64(basePrice) * (1 - float64(discountPercent)/100))
	total := rate * int64(nights)
	deposit := round(float64(total) * depositRate)

	return Quote{
		Nights:          nights,
		NightlyRate:     rate,
		TotalPrice:      total,
		DepositAmount:   deposit,
		RemainingAmount: total - deposit,
	}, nil
}

func round(v float64) int64 {
	return int64(math.Round(v))
}
