package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"hotel/shared/model"
	"slices"
	"strings"
	"time"
)

const (
	TableName  = "room_bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldRoomID          = "room_id"
	FieldHotelID         = "hotel_id"
	FieldUserID          = "user_id"
	FieldCheckIn         = "check_in"
	FieldCheckOut        = "check_out"
	FieldStatus          = "status"
	FieldPaymentStatus   = "payment_status"
	FieldDepositAmount   = "deposit_amount"
	FieldRemainingAmount = "remaining_amount"
	FieldExpiryDeadline  = "expiry_deadline"
	FieldRefundInfo      = "refund_info"
	FieldPaymentLogs     = "payment_logs"
	FieldContactLogs     = "contact_logs"
	FieldCreatedAt       = "created_at"
	FieldModifiedAt      = "modified_at"
	FieldModifiedBy      = "modified_by"
)

const orderCodeLength = 8

var (
	ErrInvalidTransition  = errors.New("booking state transition not allowed")
	ErrAlreadySettled     = errors.New("booking already fully paid")
	ErrNoPaymentToRefund  = errors.New("booking has no payment to refund")
	ErrRefundNotPending   = errors.New("booking refund is not pending")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrPreconditionFailed = errors.New("booking changed concurrently")
	ErrScheduleConflict   = errors.New("room already booked for the requested dates")
)

// GuestInfo is the contact data captured at booking time.
type GuestInfo struct {
	GuestName  string `db:"guest_name"`
	GuestEmail string `db:"guest_email"`
	GuestPhone string `db:"guest_phone"`
	Guests     int    `db:"guests"`
	Note       string `db:"note"`
}

// PolicySnapshot freezes the room's pricing and cancellation terms when the booking is made.
// Later edits to the room never change an existing booking.
type PolicySnapshot struct {
	RoomName              string `db:"room_name"`
	RoomType              string `db:"room_type"`
	BasePrice             int64  `db:"base_price"`
	DiscountPercent       int    `db:"discount_percent"`
	MaxPeople             int    `db:"max_people"`
	FreeCancelBeforeHours int    `db:"free_cancel_before_hours"`
	RefundPercent         int    `db:"refund_percent"`
}

type Booking struct {
	ID       string    `db:"id"`
	RoomID   string    `db:"room_id"`
	HotelID  string    `db:"hotel_id"`
	UserID   string    `db:"user_id"`
	CheckIn  time.Time `db:"check_in"`
	CheckOut time.Time `db:"check_out"`
	GuestInfo
	PolicySnapshot
	Nights          int           `db:"nights"`
	NightlyRate     int64         `db:"nightly_rate"`
	TotalPrice      int64         `db:"total_price"`
	DepositAmount   int64         `db:"deposit_amount"`
	RemainingAmount int64         `db:"remaining_amount"`
	Status          Status        `db:"status"`
	PaymentStatus   PaymentStatus `db:"payment_status"`
	ExpiryDeadline  *time.Time    `db:"expiry_deadline"`
	RefundInfo      *RefundInfo   `db:"refund_info"`
	PaymentLogs     PaymentLogs   `db:"payment_logs"`
	ContactLogs     ContactLogs   `db:"contact_logs"`
	model.Metadata
}

// OrderCode is the short reference guests quote in bank transfer descriptions.
func (b Booking) OrderCode() string {
	return OrderCodeOf(b.ID)
}

func OrderCodeOf(id string) string {
	if len(id) <= orderCodeLength {
		return strings.ToUpper(id)
	}

	return strings.ToUpper(id[len(id)-orderCodeLength:])
}

// IsLive reports whether the booking still holds its room for its date range.
func (b Booking) IsLive() bool {
	return slices.Contains(LiveStatuses, b.Status) && !slices.Contains(ReleasedPaymentStatuses, b.PaymentStatus)
}

// Overlaps uses half-open ranges: a stay ending on day D does not clash with one starting on D.
func (b Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return b.CheckIn.Before(checkOut) && b.CheckOut.After(checkIn)
}

func (b Booking) IsOwnedBy(userID string) bool {
	return userID != "" && b.UserID == userID
}

// PaidAmount is what the hotel currently holds for this booking.
func (b Booking) PaidAmount() int64 {
	switch b.PaymentStatus {
	case PaymentPaid:
		return b.TotalPrice
	case PaymentDeposited:
		return b.DepositAmount
	default:
		return 0
	}
}

type RefundInfo struct {
	BankName      string    `json:"bank_name"`
	AccountNumber string    `json:"account_number"`
	AccountHolder string    `json:"account_holder"`
	Reason        string    `json:"reason,omitempty"`
	Amount        int64     `json:"amount"`
	RequestedBy   string    `json:"requested_by"`
	RequestedAt   time.Time `json:"requested_at"`
}

func (r RefundInfo) Value() (driver.Value, error) {
	return jsonValue(r)
}

func (r *RefundInfo) Scan(src any) error {
	return jsonScan(src, r)
}

const (
	ActionCreated              = "BOOKING_CREATED"
	ActionDepositReceived      = "DEPOSIT_RECEIVED"
	ActionCashReceived         = "CASH_RECEIVED"
	ActionFullPaymentConfirmed = "FULL_PAYMENT_CONFIRMED"
	ActionRefundRequested      = "REFUND_REQUESTED"
	ActionRefundConfirmed      = "REFUND_CONFIRMED"
	ActionCancelled            = "CANCELLED"
	ActionNoShow               = "NO_SHOW"
	ActionCompleted            = "COMPLETED"
	ActionAutoCancel           = "SYSTEM_AUTO_CANCEL"
)

// PaymentLog is one append-only audit entry on a booking.
type PaymentLog struct {
	Action            string        `json:"action"`
	Actor             string        `json:"actor"`
	Amount            int64         `json:"amount,omitempty"`
	Method            string        `json:"method,omitempty"`
	FromStatus        Status        `json:"from_status,omitempty"`
	ToStatus          Status        `json:"to_status,omitempty"`
	FromPaymentStatus PaymentStatus `json:"from_payment_status,omitempty"`
	ToPaymentStatus   PaymentStatus `json:"to_payment_status,omitempty"`
	Note              string        `json:"note,omitempty"`
	At                time.Time     `json:"at"`
}

type PaymentLogs []PaymentLog

func (l PaymentLogs) Value() (driver.Value, error) {
	if l == nil {
		l = PaymentLogs{}
	}

	return jsonValue([]PaymentLog(l))
}

func (l *PaymentLogs) Scan(src any) error {
	return jsonScan(src, (*[]PaymentLog)(l))
}

// Value lets a single entry be bound as a one-element JSONB array for appends.
func (p PaymentLog) Value() (driver.Value, error) {
	return jsonValue([]PaymentLog{p})
}

const (
	ContactChannelPhone = "PHONE"
	ContactChannelEmail = "EMAIL"
	ContactChannelChat  = "CHAT"
	ContactChannelOther = "OTHER"
)

// ContactLog records staff follow-up with the guest.
type ContactLog struct {
	Channel string    `json:"channel"`
	Note    string    `json:"note"`
	Actor   string    `json:"actor"`
	At      time.Time `json:"at"`
}

type ContactLogs []ContactLog

func (l ContactLogs) Value() (driver.Value, error) {
	if l == nil {
		l = ContactLogs{}
	}

	return jsonValue([]ContactLog(l))
}

func (l *ContactLogs) Scan(src any) error {
	return jsonScan(src, (*[]ContactLog)(l))
}

func (c ContactLog) Value() (driver.Value, error) {
	return jsonValue([]ContactLog{c})
}

func jsonValue(v any) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal jsonb value: %w", err)
	}

	return string(data), nil
}

func jsonScan(src, dst any) error {
	var data []byte

	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb source %T", src)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal jsonb value: %w", err)
	}

	return nil
}
