package pricing_test

import (
	"hotel/internal/domains/booking/pricing"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
		wantErr  error
	}{
		{name: "three nights", checkIn: day(0), checkOut: day(3), want: 3},
		{name: "time of day ignored", checkIn: day(0).Add(22 * time.Hour), checkOut: day(1).Add(1 * time.Hour), want: 1},
		{name: "same day", checkIn: day(0), checkOut: day(0).Add(20 * time.Hour), wantErr: pricing.ErrInvalidDateRange},
		{name: "reversed", checkIn: day(3), checkOut: day(1), wantErr: pricing.ErrInvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pricing.Nights(tt.checkIn, tt.checkOut)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name     string
		price    int64
		discount int
		nights   int
		rate     float64
		want     pricing.Quote
		wantErr  error
	}{
		{
			name:   "no discount",
			price:  1_000_000,
			nights: 3,
			rate:   0.3,
			want:   pricing.Quote{Nights: 3, NightlyRate: 1_000_000, TotalPrice: 3_000_000, DepositAmount: 900_000, RemainingAmount: 2_100_000},
		},
		{
			name:     "discount rounds nightly rate",
			price:    333_333,
			discount: 15,
			nights:   2,
			rate:     0.3,
			want:     pricing.Quote{Nights: 2, NightlyRate: 283_333, TotalPrice: 566_666, DepositAmount: 170_000, RemainingAmount: 396_666},
		},
		{
			name:     "full discount",
			price:    500_000,
			discount: 100,
			nights:   1,
			rate:     0.3,
			want:     pricing.Quote{Nights: 1},
		},
		{name: "zero nights", price: 100, nights: 0, rate: 0.3, wantErr: pricing.ErrInvalidDateRange},
		{name: "discount over 100", price: 100, discount: 120, nights: 1, rate: 0.3, wantErr: pricing.ErrInvalidPolicy},
		{name: "deposit rate over 1", price: 100, nights: 1, rate: 1.5, wantErr: pricing.ErrInvalidPolicy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pricing.Calculate(tt.price, tt.discount, day(0), day(tt.nights), tt.rate)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.TotalPrice, got.DepositAmount+got.RemainingAmount)
			assert.Equal(t, got.TotalPrice, got.NightlyRate*int64(got.Nights))
		})
	}
}
