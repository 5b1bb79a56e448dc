package booking

import (
	"context"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

var sortableFields = []string{"created_at", "check_in", "check_out", "total_price", "status", "payment_status"}

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/mine", handler.GetMyBookings)
		routerGroup.Get("/availability", handler.CheckAvailability)
		routerGroup.Post("/sweep", handler.SweepExpired)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Post("/{id}/cancel", handler.CancelBooking)
		routerGroup.Post("/{id}/cash-payments", handler.RecordCashPayment)
		routerGroup.Post("/{id}/confirm-payment", handler.ConfirmFullPayment)
		routerGroup.Post("/{id}/refund", handler.RequestRefund)
		routerGroup.Post("/{id}/refund/confirm", handler.ConfirmRefund)
		routerGroup.Post("/{id}/no-show", handler.MarkNoShow)
		routerGroup.Post("/{id}/complete", handler.CompleteBooking)
		routerGroup.Post("/{id}/contact-logs", handler.AddContactLog)
	})
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a new booking
// @Description Reserve a room for a date range. The booking stays pending until the deposit is paid.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created " + booking.ID)

	response.WithJSON(writer, http.StatusCreated, booking)
}

// GetBookings lists bookings for staff.
// @Summary List bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param payment_status query string false "Filter by payment status"
// @Param room_id query string false "Filter by room"
// @Param user_id query string false "Filter by guest"
// @Param from query string false "Stays ending after this date"
// @Param to query string false "Stays starting before this date"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(writer http.ResponseWriter, request *http.Request) {
	handler.list(writer, request, false)
}

// GetMyBookings lists the caller's own bookings.
// @Summary List my bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Router /v1/bookings/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyBookings(writer http.ResponseWriter, request *http.Request) {
	handler.list(writer, request, true)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request, mine bool) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)
	queryParams.RestrictSortBy(sortableFields...)

	listFilter := dto.ListFilter{}
	listFilter.FromRequest(request)

	if mine {
		listFilter.UserID, _ = ctx.Value(constant.ContextKeyUserID).(string)
		if listFilter.UserID == constant.Empty {
			response.WithError(writer, failure.Unauthorized("missing user"))

			return
		}
	}

	filter, err := listFilter.ToFilterGroup()
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, failure.BadRequest(err))

		return
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, bookings)
}

// CheckAvailability reports whether a room is free for a date range.
// @Summary Check room availability
// @Tags Booking
// @Produce json
// @Param room_id query string true "Room ID"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.AvailabilityResponse]
// @Failure 400 {object} response.Error
// @Router /v1/bookings/availability [get]
func (handler *Handler) CheckAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	req := dto.AvailabilityRequest{}
	req.FromRequest(request)

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.CheckAvailability(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	booking, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, booking)
}

// act decodes the body into a T, runs the operation for the booking in the path and
// writes its result.
func act[T any, R any](handler *Handler, writer http.ResponseWriter, request *http.Request, span string, op func(ctx context.Context, id string, req T) (R, error)) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+span)
	defer scope.End()

	var req T

	if request.ContentLength != 0 {
		if err := validator.Validate(request.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("op", span).Msg("failed to validate request body")

			response.WithError(writer, err)

			return
		}
	} else if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := op(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking", id).Str("op", span).Msg("booking operation failed")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent(span + " on booking " + id + " by user " + user)

	response.WithJSON(writer, http.StatusOK, res)
}

// CancelBooking cancels an unpaid booking.
// @Summary Cancel a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.CancelRequest false "Cancellation reason"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelBooking(writer http.ResponseWriter, request *http.Request) {
	act(handler, writer, request, "CancelBooking", handler.service.Cancel)
}

// RecordCashPayment records cash received at the front desk.
// @Summary Record a cash payment
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.CashPaymentRequest true "Cash payment"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/cash-payments [post]
// @Security BearerAuth
func (handler *Handler) RecordCashPayment(writer http.ResponseWriter, request *http.Request) {
	act(handler, writer, request, "RecordCashPayment", handler.service.RecordCashPayment)
}

// ConfirmFullPayment marks the remaining balance as paid.
// @Summary Confirm full payment
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.ConfirmPaymentRequest false "Payment method and note"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/confirm-payment [post]
// @Security BearerAuth
func (handler *Handler) ConfirmFullPayment(writer http.ResponseWriter, request *http.Request) {
	act(handler, writer, request, "ConfirmFullPayment", handler.service.ConfirmFullPayment)
}

// RequestRefund cancels a paid booking and records where the refund goes.
// @Summary Request a refund
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.RefundRequest true "Bank details"
// @Success 200 {object} response.Data[dto.RefundResponse]
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/refund [post]
// @Security BearerAuth
func (handler *Handler) RequestRefund(writer http.ResponseWriter, request *http.Request) {
	act(handler, writer, request, "RequestRefund", handler.service.RequestRefund)
}

// ConfirmRefund records that the refund was paid out.
// @Summary Confirm a refund
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.NoteRequest false "Note"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/refund/confirm [post]
// @Security BearerAuth
func (handler *Handler) ConfirmRefund(writer http.ResponseWriter, request *http.Request) {
	act(handler, writer, request, "ConfirmRefund", handler.service.ConfirmRefund)
}

// MarkNoShow records that the guest never arrived.
// @Summary Mark a booking as no-show
// @Tags Booking
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Router /v1/bookings/{id}/no-show [post]
// @Security BearerAuth
func (handler *Handler) MarkNoShow(writer http.ResponseWriter, request *http.Request) {
	act(handler, writer, request, "MarkNoShow", handler.service.MarkNoShow)
}

// CompleteBooking closes a stay after check-out.
// @Summary Complete a booking
// @Tags Booking
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Router /v1/bookings/{id}/complete [post]
// @Security BearerAuth
func (handler *Handler) CompleteBooking(writer http.ResponseWriter, request *http.Request) {
	act(handler, writer, request, "CompleteBooking", handler.service.Complete)
}

// AddContactLog appends a staff follow-up note.
// @Summary Add a contact log entry
// @Tags Booking
// @Accept json
// @Param id path string true "Booking ID"
// @Param request body dto.ContactLogRequest true "Contact entry"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Router /v1/bookings/{id}/contact-logs [post]
// @Security BearerAuth
func (handler *Handler) AddContactLog(writer http.ResponseWriter, request *http.Request) {
	act(handler, writer, request, "AddContactLog", handler.service.AddContactLog)
}

// SweepExpired runs the expiry sweep now.
// @Summary Cancel expired unpaid bookings
// @Tags Booking
// @Success 200 {object} response.Data[dto.SweepResponse]
// @Router /v1/bookings/sweep [post]
// @Security BearerAuth
func (handler *Handler) SweepExpired(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SweepExpired")
	defer scope.End()

	res, err := handler.service.SweepExpired(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("manual sweep failed")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
