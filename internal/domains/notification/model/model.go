package model

import (
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/shared/constant"
	"time"
)

const EventBookingConfirmed = "booking.confirmed"

// BookingConfirmed is published once a booking's first payment is credited.
// The email service renders the guest confirmation from it.
type BookingConfirmed struct {
	Event           string `json:"event"`
	BookingID       string `json:"booking_id"`
	OrderCode       string `json:"order_code"`
	PaymentCode     string `json:"payment_code"`
	HotelID         string `json:"hotel_id"`
	RoomID          string `json:"room_id"`
	RoomName        string `json:"room_name"`
	GuestName       string `json:"guest_name"`
	GuestEmail      string `json:"guest_email"`
	Guests          int    `json:"guests"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	Nights          int    `json:"nights"`
	TotalPrice      int64  `json:"total_price"`
	DepositAmount   int64  `json:"deposit_amount"`
	RemainingAmount int64  `json:"remaining_amount"`
	Status          string `json:"status"`
	PaymentStatus   string `json:"payment_status"`
	OccurredAt      string `json:"occurred_at"`
}

func NewBookingConfirmed(b bookingModel.Booking, prefix string, at time.Time) BookingConfirmed {
	return BookingConfirmed{
		Event:           EventBookingConfirmed,
		BookingID:       b.ID,
		OrderCode:       b.OrderCode(),
		PaymentCode:     prefix + b.OrderCode(),
		HotelID:         b.HotelID,
		RoomID:          b.RoomID,
		RoomName:        b.RoomName,
		GuestName:       b.GuestName,
		GuestEmail:      b.GuestEmail,
		Guests:          b.Guests,
		CheckIn:         b.CheckIn.Format(constant.DateOnlyFormat),
		CheckOut:        b.CheckOut.Format(constant.DateOnlyFormat),
		Nights:          b.Nights,
		TotalPrice:      b.TotalPrice,
		DepositAmount:   b.DepositAmount,
		RemainingAmount: b.RemainingAmount,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		OccurredAt:      at.Format(constant.DateFormat),
	}
}
