package model

import (
	"fmt"
	"slices"
	"strings"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
	StatusNoShow    Status = "no_show"
	StatusCompleted Status = "completed"
)

var statusTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusExpired, StatusNoShow},
	StatusConfirmed: {StatusCancelled, StatusNoShow, StatusCompleted},
}

// ParseStatus accepts the lower-case wire form only.
func ParseStatus(s string) (Status, error) {
	status := Status(s)

	switch status {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusExpired, StatusNoShow, StatusCompleted:
		return status, nil
	default:
		return "", fmt.Errorf("unknown booking status %q", s)
	}
}

func (s Status) Terminal() bool {
	_, ok := statusTransitions[s]

	return !ok
}

// CanBecome reports whether the booking lifecycle allows moving from s to next.
func (s Status) CanBecome(next Status) bool {
	return slices.Contains(statusTransitions[s], next)
}

type PaymentStatus string

const (
	PaymentUnpaid        PaymentStatus = "UNPAID"
	PaymentDeposited     PaymentStatus = "DEPOSITED"
	PaymentPaid          PaymentStatus = "PAID"
	PaymentRefundPending PaymentStatus = "REFUND_PENDING"
	PaymentRefunded      PaymentStatus = "REFUNDED"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentUnpaid:        {PaymentDeposited, PaymentPaid, PaymentRefundPending},
	PaymentDeposited:     {PaymentDeposited, PaymentPaid, PaymentRefundPending},
	PaymentPaid:          {PaymentRefundPending},
	PaymentRefundPending: {PaymentRefunded},
}

// ParsePaymentStatus is case-insensitive; the stored form is upper case.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(strings.ToUpper(s))

	switch status {
	case PaymentUnpaid, PaymentDeposited, PaymentPaid, PaymentRefundPending, PaymentRefunded:
		return status, nil
	default:
		return "", fmt.Errorf("unknown payment status %q", s)
	}
}

func (p PaymentStatus) CanBecome(next PaymentStatus) bool {
	return slices.Contains(paymentTransitions[p], next)
}

// HasPayment reports whether money has been received and not handed back.
func (p PaymentStatus) HasPayment() bool {
	return p == PaymentDeposited || p == PaymentPaid
}

// LiveStatuses and ReleasedPaymentStatuses define which bookings hold a room.
var (
	LiveStatuses            = []Status{StatusPending, StatusConfirmed}
	ReleasedPaymentStatuses = []PaymentStatus{PaymentRefundPending, PaymentRefunded}
)
