package dto

import (
	"fmt"
	"hotel/internal/domains/booking/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/timezone"
	"net/http"
	"time"
)

type CreateBookingRequest struct {
	RoomID     string `json:"room_id"     validate:"required,max=64"`
	CheckIn    string `json:"check_in"    validate:"required,dateonly"`
	CheckOut   string `json:"check_out"   validate:"required,dateonly"`
	GuestName  string `json:"guest_name"  validate:"required,max=100"`
	GuestEmail string `json:"guest_email" validate:"required,email,max=100"`
	GuestPhone string `json:"guest_phone" validate:"required,max=20"`
	Guests     int    `json:"guests"      validate:"required,min=1"`
	Note       string `json:"note"        validate:"omitempty,max=500"`
}

// Dates parses the stay as calendar dates; the time of day is dropped.
func (c *CreateBookingRequest) Dates() (checkIn, checkOut time.Time, err error) {
	return parseStay(c.CheckIn, c.CheckOut)
}

func (c *CreateBookingRequest) GuestInfo() model.GuestInfo {
	return model.GuestInfo{
		GuestName:  c.GuestName,
		GuestEmail: c.GuestEmail,
		GuestPhone: c.GuestPhone,
		Guests:     c.Guests,
		Note:       c.Note,
	}
}

type AvailabilityRequest struct {
	RoomID   string `validate:"required"`
	CheckIn  string `validate:"required,dateonly"`
	CheckOut string `validate:"required,dateonly"`
}

func (a *AvailabilityRequest) FromRequest(r *http.Request) {
	query := r.URL.Query()

	a.RoomID = query.Get("room_id")
	a.CheckIn = query.Get("check_in")
	a.CheckOut = query.Get("check_out")
}

func (a *AvailabilityRequest) Dates() (checkIn, checkOut time.Time, err error) {
	return parseStay(a.CheckIn, a.CheckOut)
}

func parseStay(in, out string) (checkIn, checkOut time.Time, err error) {
	checkIn, err = time.Parse(constant.DateOnlyFormat, in)
	if err != nil {
		return checkIn, checkOut, fmt.Errorf("invalid check_in: %w", err)
	}

	checkOut, err = time.Parse(constant.DateOnlyFormat, out)
	if err != nil {
		return checkIn, checkOut, fmt.Errorf("invalid check_out: %w", err)
	}

	return checkIn, checkOut, nil
}

type CancelRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type CashPaymentRequest struct {
	Amount int64  `json:"amount" validate:"required,gt=0"`
	Note   string `json:"note"   validate:"omitempty,max=500"`
}

type ConfirmPaymentRequest struct {
	Method string `json:"method" validate:"omitempty,oneof=BANK_TRANSFER CASH"`
	Note   string `json:"note"   validate:"omitempty,max=500"`
}

type RefundRequest struct {
	BankName      string `json:"bank_name"      validate:"required,max=100"`
	AccountNumber string `json:"account_number" validate:"required,max=50"`
	AccountHolder string `json:"account_holder" validate:"required,max=100"`
	Reason        string `json:"reason"         validate:"omitempty,max=500"`
}

func (r *RefundRequest) ToModel() model.RefundInfo {
	return model.RefundInfo{
		BankName:      r.BankName,
		AccountNumber: r.AccountNumber,
		AccountHolder: r.AccountHolder,
		Reason:        r.Reason,
	}
}

type NoteRequest struct {
	Note string `json:"note" validate:"omitempty,max=500"`
}

type ContactLogRequest struct {
	Channel string `json:"channel" validate:"required,oneof=PHONE EMAIL CHAT OTHER"`
	Note    string `json:"note"    validate:"required,max=1000"`
}

// ListFilter holds the optional filters accepted when listing bookings.
type ListFilter struct {
	Status        string
	PaymentStatus string
	RoomID        string
	UserID        string
	From          string
	To            string
}

func (l *ListFilter) FromRequest(r *http.Request) {
	query := r.URL.Query()

	l.Status = query.Get("status")
	l.PaymentStatus = query.Get("payment_status")
	l.RoomID = query.Get("room_id")
	l.UserID = query.Get("user_id")
	l.From = query.Get(constant.RequestParamFrom)
	l.To = query.Get(constant.RequestParamTo)
}

// ToFilterGroup validates enum values once here; invalid values are rejected, not ignored.
func (l *ListFilter) ToFilterGroup() (gDto.FilterGroup, error) {
	filters := []any{}

	if l.Status != "" {
		status, err := model.ParseStatus(l.Status)
		if err != nil {
			return gDto.FilterGroup{}, err //nolint:wrapcheck
		}

		filters = append(filters, gDto.Filter{Field: model.FieldStatus, Value: status, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if l.PaymentStatus != "" {
		status, err := model.ParsePaymentStatus(l.PaymentStatus)
		if err != nil {
			return gDto.FilterGroup{}, err //nolint:wrapcheck
		}

		filters = append(filters, gDto.Filter{Field: model.FieldPaymentStatus, Value: status, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if l.RoomID != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldRoomID, Value: l.RoomID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if l.UserID != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldUserID, Value: l.UserID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if l.From != "" {
		from, err := time.Parse(constant.DateOnlyFormat, l.From)
		if err != nil {
			return gDto.FilterGroup{}, fmt.Errorf("invalid from: %w", err)
		}

		filters = append(filters, gDto.Filter{ArgName: "check_in_from", Field: model.FieldCheckIn, Value: from, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName})
	}

	if l.To != "" {
		to, err := time.Parse(constant.DateOnlyFormat, l.To)
		if err != nil {
			return gDto.FilterGroup{}, fmt.Errorf("invalid to: %w", err)
		}

		filters = append(filters, gDto.Filter{ArgName: "check_in_to", Field: model.FieldCheckIn, Value: to, Operator: gDto.FilterOperatorLessEq, Table: model.TableName})
	}

	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}, nil
}

type RefundInfoResponse struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	AccountHolder string `json:"account_holder"`
	Reason        string `json:"reason,omitempty"`
	Amount        int64  `json:"amount"`
	RequestedBy   string `json:"requested_by"`
	RequestedAt   string `json:"requested_at"`
}

type BookingResponse struct {
	ID                    string               `json:"id"`
	OrderCode             string               `json:"order_code"`
	PaymentCode           string               `json:"payment_code"`
	RoomID                string               `json:"room_id"`
	HotelID               string               `json:"hotel_id"`
	UserID                string               `json:"user_id"`
	CheckIn               string               `json:"check_in"`
	CheckOut              string               `json:"check_out"`
	GuestName             string               `json:"guest_name"`
	GuestEmail            string               `json:"guest_email"`
	GuestPhone            string               `json:"guest_phone"`
	Guests                int                  `json:"guests"`
	Note                  string               `json:"note,omitempty"`
	RoomName              string               `json:"room_name"`
	RoomType              string               `json:"room_type"`
	BasePrice             int64                `json:"base_price"`
	DiscountPercent       int                  `json:"discount_percent"`
	FreeCancelBeforeHours int                  `json:"free_cancel_before_hours"`
	RefundPercent         int                  `json:"refund_percent"`
	Nights                int                  `json:"nights"`
	NightlyRate           int64                `json:"nightly_rate"`
	TotalPrice            int64                `json:"total_price"`
	DepositAmount         int64                `json:"deposit_amount"`
	RemainingAmount       int64                `json:"remaining_amount"`
	Status                string               `json:"status"`
	PaymentStatus         string               `json:"payment_status"`
	ExpiryDeadline        *string              `json:"expiry_deadline"`
	RefundInfo            *RefundInfoResponse  `json:"refund_info,omitempty"`
	PaymentLogs           []model.PaymentLog   `json:"payment_logs"`
	ContactLogs           []model.ContactLog   `json:"contact_logs"`
	gDto.Metadata
}

// FromModel fills the response; prefix is the marker guests put before the order code in transfers.
func (r *BookingResponse) FromModel(m model.Booking, prefix string) {
	r.ID = m.ID
	r.OrderCode = m.OrderCode()
	r.PaymentCode = prefix + m.OrderCode()
	r.RoomID = m.RoomID
	r.HotelID = m.HotelID
	r.UserID = m.UserID
	r.CheckIn = m.CheckIn.Format(constant.DateOnlyFormat)
	r.CheckOut = m.CheckOut.Format(constant.DateOnlyFormat)
	r.GuestName = m.GuestName
	r.GuestEmail = m.GuestEmail
	r.GuestPhone = m.GuestPhone
	r.Guests = m.Guests
	r.Note = m.Note
	r.RoomName = m.RoomName
	r.RoomType = m.RoomType
	r.BasePrice = m.BasePrice
	r.DiscountPercent = m.DiscountPercent
	r.FreeCancelBeforeHours = m.FreeCancelBeforeHours
	r.RefundPercent = m.RefundPercent
	r.Nights = m.Nights
	r.NightlyRate = m.NightlyRate
	r.TotalPrice = m.TotalPrice
	r.DepositAmount = m.DepositAmount
	r.RemainingAmount = m.RemainingAmount
	r.Status = string(m.Status)
	r.PaymentStatus = string(m.PaymentStatus)

	if m.ExpiryDeadline != nil {
		deadline := timezone.Format(*m.ExpiryDeadline, constant.DateFormat)
		r.ExpiryDeadline = &deadline
	}

	if m.RefundInfo != nil {
		r.RefundInfo = &RefundInfoResponse{
			BankName:      m.RefundInfo.BankName,
			AccountNumber: m.RefundInfo.AccountNumber,
			AccountHolder: m.RefundInfo.AccountHolder,
			Reason:        m.RefundInfo.Reason,
			Amount:        m.RefundInfo.Amount,
			RequestedBy:   m.RefundInfo.RequestedBy,
			RequestedAt:   timezone.Format(m.RefundInfo.RequestedAt, constant.DateFormat),
		}
	}

	r.PaymentLogs = append([]model.PaymentLog{}, m.PaymentLogs...)
	r.ContactLogs = append([]model.ContactLog{}, m.ContactLogs...)
	r.Metadata.FromModel(m.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int, prefix string) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod, prefix)
	}
}

type AvailabilityResponse struct {
	RoomID    string `json:"room_id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Available bool   `json:"available"`
}

type RefundResponse struct {
	RefundAmount int64           `json:"refund_amount"`
	Booking      BookingResponse `json:"booking"`
}

type SweepResponse struct {
	Count int `json:"count"`
}
