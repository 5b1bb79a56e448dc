// Package refund decides how much of a guest's payment is returned on cancellation.
package refund

import (
	"hotel/internal/domains/booking/model"
	"math"
	"time"
)

type Input struct {
	PaymentStatus         model.PaymentStatus
	Status                model.Status
	AmountPaid            int64
	FreeCancelBeforeHours int
	RefundPercent         int
	CheckInAt             time.Time
	Now                   time.Time
}

// Calculate returns the refund owed. Nothing is owed when no money is held, when the booking
// already ended without a stay, or once the free-cancellation window has closed.
func Calculate(in Input) int64 {
	if !in.PaymentStatus.HasPayment() {
		return 0
	}

	switch in.Status {
	case model.StatusCancelled, model.StatusExpired, model.StatusNoShow:
		return 0
	}

	hoursUntilCheckIn := in.CheckInAt.Sub(in.Now).Hours()
	if hoursUntilCheckIn < float64(in.FreeCancelBeforeHours) {
		return 0
	}

	return int64(math.Round(float64(in.AmountPaid) * float64(in.RefundPercent) / 100))
}

// ForBooking evaluates Calculate against the booking's own policy snapshot.
func ForBooking(b model.Booking, checkInHour int, loc *time.Location, now time.Time) int64 {
	return Calculate(Input{
		PaymentStatus:         b.PaymentStatus,
		Status:                b.Status,
		AmountPaid:            b.PaidAmount(),
		FreeCancelBeforeHours: b.FreeCancelBeforeHours,
		RefundPercent:         b.RefundPercent,
		CheckInAt:             CheckInAt(b.CheckIn, checkInHour, loc),
		Now:                   now,
	})
}

// CheckInAt places the check-in hour on the stay's first date in the hotel's timezone.
func CheckInAt(checkIn time.Time, hour int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}

	year, month, day := checkIn.Date()

	return time.Date(year, month, day, hour, 0, 0, 0, loc)
}
