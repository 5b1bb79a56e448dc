package refund_test

import (
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/refund"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	checkIn := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	base := refund.Input{
		PaymentStatus:         model.PaymentDeposited,
		Status:                model.StatusConfirmed,
		AmountPaid:            900_000,
		FreeCancelBeforeHours: 24,
		RefundPercent:         100,
		CheckInAt:             checkIn,
	}

	tests := []struct {
		name   string
		modify func(in *refund.Input)
		want   int64
	}{
		{
			name:   "48 hours before check-in",
			modify: func(in *refund.Input) { in.Now = checkIn.Add(-48 * time.Hour) },
			want:   900_000,
		},
		{
			name:   "2 hours before check-in",
			modify: func(in *refund.Input) { in.Now = checkIn.Add(-2 * time.Hour) },
			want:   0,
		},
		{
			name:   "exactly at the window edge",
			modify: func(in *refund.Input) { in.Now = checkIn.Add(-24 * time.Hour) },
			want:   900_000,
		},
		{
			name: "partial refund percent rounds",
			modify: func(in *refund.Input) {
				in.Now = checkIn.Add(-72 * time.Hour)
				in.AmountPaid = 333_333
				in.RefundPercent = 50
			},
			want: 166_667,
		},
		{
			name: "unpaid booking",
			modify: func(in *refund.Input) {
				in.Now = checkIn.Add(-72 * time.Hour)
				in.PaymentStatus = model.PaymentUnpaid
			},
			want: 0,
		},
		{
			name: "already refunded",
			modify: func(in *refund.Input) {
				in.Now = checkIn.Add(-72 * time.Hour)
				in.PaymentStatus = model.PaymentRefundPending
			},
			want: 0,
		},
		{
			name: "cancelled booking",
			modify: func(in *refund.Input) {
				in.Now = checkIn.Add(-72 * time.Hour)
				in.Status = model.StatusCancelled
			},
			want: 0,
		},
		{
			name: "no show",
			modify: func(in *refund.Input) {
				in.Now = checkIn.Add(-72 * time.Hour)
				in.Status = model.StatusNoShow
			},
			want: 0,
		},
		{
			name: "after check-in",
			modify: func(in *refund.Input) {
				in.Now = checkIn.Add(time.Hour)
				in.FreeCancelBeforeHours = 0
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.modify(&in)

			assert.Equal(t, tt.want, refund.Calculate(in))
		})
	}
}

func TestForBooking_UsesSnapshot(t *testing.T) {
	loc := time.FixedZone("ICT", 7*60*60)
	b := model.Booking{
		CheckIn:       time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Status:        model.StatusConfirmed,
		PaymentStatus: model.PaymentPaid,
		TotalPrice:    1_000_000,
		PolicySnapshot: model.PolicySnapshot{
			FreeCancelBeforeHours: 24,
			RefundPercent:         80,
		},
	}

	// check-in is 14:00 ICT on June 10, i.e. 07:00 UTC
	now := time.Date(2025, 6, 9, 7, 0, 0, 0, time.UTC)
	assert.Equal(t, int64(800_000), refund.ForBooking(b, 14, loc, now))

	assert.Equal(t, int64(0), refund.ForBooking(b, 14, loc, now.Add(time.Minute)))
}

func TestCheckInAt(t *testing.T) {
	got := refund.CheckInAt(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), 14, nil)

	assert.Equal(t, time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC), got)
}
