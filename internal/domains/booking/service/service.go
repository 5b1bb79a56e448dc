package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/pricing"
	"hotel/internal/domains/booking/refund"
	"hotel/internal/domains/booking/repository"
	ledgerModel "hotel/internal/domains/ledger/model"
	ledgerService "hotel/internal/domains/ledger/service"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/clock"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/keylock"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"net/http"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

var staffRoles = []string{constant.RoleSuperAdmin, constant.RoleAdmin, constant.RoleStaff}

// Catalog is the room data a booking needs.
type Catalog interface {
	LookupRoom(ctx context.Context, id string) (roomModel.Room, error)
	AdjustAvailability(ctx context.Context, id string, delta int) error
}

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string, req dto.CancelRequest) (dto.BookingResponse, error)
	RecordCashPayment(ctx context.Context, id string, req dto.CashPaymentRequest) (dto.BookingResponse, error)
	ConfirmFullPayment(ctx context.Context, id string, req dto.ConfirmPaymentRequest) (dto.BookingResponse, error)
	RequestRefund(ctx context.Context, id string, req dto.RefundRequest) (dto.RefundResponse, error)
	ConfirmRefund(ctx context.Context, id string, req dto.NoteRequest) (dto.BookingResponse, error)
	MarkNoShow(ctx context.Context, id string, req dto.NoteRequest) (dto.BookingResponse, error)
	Complete(ctx context.Context, id string, req dto.NoteRequest) (dto.BookingResponse, error)
	AddContactLog(ctx context.Context, id string, req dto.ContactLogRequest) (dto.BookingResponse, error)
	SweepExpired(ctx context.Context) (dto.SweepResponse, error)
	FindByOrderCode(ctx context.Context, code string) (model.Booking, error)
	// ConfirmTransfer applies a gateway-reported transfer. applied is false when the
	// booking had already moved on, which callers treat as already handled.
	ConfirmTransfer(ctx context.Context, booking model.Booking, credited, received int64) (res model.Booking, applied bool, err error)
}

type serviceImpl struct {
	repo    repository.Booking
	catalog Catalog
	clock   clock.Clock
	locks   *keylock.KeyLock
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
}

func New(repo repository.Booking, catalog Catalog, clk clock.Clock, locks *keylock.KeyLock, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:    repo,
		catalog: catalog,
		clock:   clk,
		locks:   locks,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
	}
}

func actor(ctx context.Context) (userID string, staff bool) {
	userID, _ = ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return userID, slices.Contains(staffRoles, role)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := actor(ctx)

	checkIn, checkOut, err := req.Dates()
	if err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	if _, err = pricing.Nights(checkIn, checkOut); err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	now := s.clock.Now()
	if checkIn.Before(shared.DateOnly(now)) {
		return res, failure.BadRequestFromString("check-in date cannot be in the past") //nolint:wrapcheck
	}

	room, err := s.catalog.LookupRoom(ctx, req.RoomID)
	if err != nil {
		log.Error().Err(err).Str("room", req.RoomID).Msg("failed to look up room")

		return res, err //nolint:wrapcheck
	}

	if req.Guests > room.MaxPeople {
		return res, failure.BadRequestFromString(fmt.Sprintf("room allows at most %d guests", room.MaxPeople)) //nolint:wrapcheck
	}

	quote, err := pricing.Calculate(room.Price, room.DiscountPercent, checkIn, checkOut, s.cfg.Booking.DepositRate)
	if errors.Is(err, pricing.ErrInvalidDateRange) {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("room", room.ID).Msg("room has an invalid pricing policy")

		return res, fmt.Errorf("failed to price booking: %w", err)
	}

	booking := newBooking(req, room, quote, checkIn, checkOut, user, now, s.cfg.Booking.PaymentWindowMinutes)

	unlock := s.locks.Lock(room.ID)
	defer unlock()

	err = s.repo.InsertIfAvailable(ctx, booking)
	if errors.Is(err, model.ErrScheduleConflict) {
		return res, failure.Conflict("room is already booked for the selected dates") //nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	log.Info().Str("booking", booking.ID).Str("room", room.ID).Int64("total", booking.TotalPrice).Msg("booking created")

	s.adjustAvailability(ctx, room.ID, -1)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	res.FromModel(booking, s.cfg.Payment.OrderCodePrefix)

	return res, nil
}

func newBooking(req dto.CreateBookingRequest, room roomModel.Room, quote pricing.Quote, checkIn, checkOut time.Time, user string, now time.Time, windowMinutes int) model.Booking {
	deadline := now.Add(time.Duration(windowMinutes) * time.Minute)

	return model.Booking{
		ID:        uuid.NewString(),
		RoomID:    room.ID,
		HotelID:   room.HotelID,
		UserID:    user,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		GuestInfo: req.GuestInfo(),
		PolicySnapshot: model.PolicySnapshot{
			RoomName:              room.Name,
			RoomType:              room.Type,
			BasePrice:             room.Price,
			DiscountPercent:       room.DiscountPercent,
			MaxPeople:             room.MaxPeople,
			FreeCancelBeforeHours: room.FreeCancelBeforeHours,
			RefundPercent:         room.RefundPercent,
		},
		Nights:          quote.Nights,
		NightlyRate:     quote.NightlyRate,
		TotalPrice:      quote.TotalPrice,
		DepositAmount:   quote.DepositAmount,
		RemainingAmount: quote.RemainingAmount,
		Status:          model.StatusPending,
		PaymentStatus:   model.PaymentUnpaid,
		ExpiryDeadline:  &deadline,
		PaymentLogs: model.PaymentLogs{{
			Action:          model.ActionCreated,
			Actor:           user,
			Amount:          quote.TotalPrice,
			ToStatus:        model.StatusPending,
			ToPaymentStatus: model.PaymentUnpaid,
			At:              now,
		}},
		ContactLogs: model.ContactLogs{},
		Metadata:    gModel.NewMetadata(user, now),
	}
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CheckAvailability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	checkIn, checkOut, err := req.Dates()
	if err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	if _, err = pricing.Nights(checkIn, checkOut); err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	conflict, err := s.repo.HasConflict(ctx, req.RoomID, checkIn, checkOut, constant.Empty)
	if err != nil {
		log.Error().Err(err).Msg("failed to check availability")

		return res, fmt.Errorf("failed to check availability: %w", err)
	}

	return dto.AvailabilityResponse{
		RoomID:    req.RoomID,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Available: !conflict,
	}, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit, s.cfg.Payment.OrderCodePrefix)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, staff := actor(ctx)
	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		if !staff && res.UserID != user {
			return dto.BookingResponse{}, failure.Forbidden("not allowed to view this booking") //nolint:wrapcheck
		}

		return res, nil
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if err = authorize(ctx, booking); err != nil {
		return res, err
	}

	res.FromModel(booking, s.cfg.Payment.OrderCodePrefix)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	return booking, nil
}

// authorize allows the booking's owner and staff.
func authorize(ctx context.Context, booking model.Booking) error {
	user, staff := actor(ctx)
	if staff || booking.IsOwnedBy(user) {
		return nil
	}

	return failure.Forbidden("not allowed to act on this booking") //nolint:wrapcheck
}

func (s *serviceImpl) FindByOrderCode(ctx context.Context, code string) (model.Booking, error) {
	booking, err := s.repo.FindByOrderCode(ctx, code)
	if err != nil {
		log.Error().Err(err).Str("code", code).Msg("failed to find booking by order code")

		return booking, fmt.Errorf("failed to find booking by order code: %w", err)
	}

	return booking, nil
}

// transition applies a guarded change and returns the booking as written.
func (s *serviceImpl) transition(ctx context.Context, booking model.Booking, build func(model.Booking) (model.Transition, error)) (model.Booking, error) {
	t, err := build(booking)
	if err != nil {
		return booking, toFailure(err)
	}

	if err = s.repo.ApplyTransition(ctx, t); err != nil {
		if errors.Is(err, model.ErrPreconditionFailed) {
			return booking, err //nolint:wrapcheck
		}

		log.Error().Err(err).Str("booking", booking.ID).Str("action", t.Log.Action).Msg("failed to apply booking transition")

		return booking, fmt.Errorf("failed to update booking: %w", err)
	}

	wasLive := booking.IsLive()

	t.Apply(&booking)

	log.Info().
		Str("booking", booking.ID).
		Str("action", t.Log.Action).
		Str("actor", t.Log.Actor).
		Str("status", string(booking.Status)).
		Str("paymentStatus", string(booking.PaymentStatus)).
		Msg("booking transitioned")

	s.invalidate(ctx, booking.ID, t.Entry != nil)

	if wasLive && !booking.IsLive() {
		s.adjustAvailability(ctx, booking.RoomID, 1)
	}

	return booking, nil
}

// adjustAvailability moves the room's available count. The booking is already
// written, so a catalog failure is only logged.
func (s *serviceImpl) adjustAvailability(ctx context.Context, roomID string, delta int) {
	if err := s.catalog.AdjustAvailability(ctx, roomID, delta); err != nil {
		log.Error().Err(err).Str("room", roomID).Int("delta", delta).Msg("failed to adjust room availability")
	}
}

// transitionByID loads the booking, checks access, and reports a lost race as a conflict.
func (s *serviceImpl) transitionByID(ctx context.Context, id string, ownerAllowed bool, build func(model.Booking) (model.Transition, error)) (model.Booking, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return booking, err
	}

	if ownerAllowed {
		if err = authorize(ctx, booking); err != nil {
			return booking, err
		}
	}

	booking, err = s.transition(ctx, booking, build)
	if errors.Is(err, model.ErrPreconditionFailed) {
		return booking, failure.Conflict("booking was changed by another request, reload and retry") //nolint:wrapcheck
	}

	return booking, err
}

func (s *serviceImpl) invalidate(ctx context.Context, id string, ledgerChanged bool) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)

		if ledgerChanged {
			ledgerService.InvalidateCaches(c, s.cache)
		}
	}()
}

func toFailure(err error) error {
	switch {
	case errors.Is(err, model.ErrAlreadySettled):
		return failure.Conflict("booking is already fully paid") //nolint:wrapcheck
	case errors.Is(err, model.ErrNoPaymentToRefund):
		return failure.Conflict("booking has no payment to refund") //nolint:wrapcheck
	case errors.Is(err, model.ErrRefundNotPending):
		return failure.Conflict("booking refund is not pending") //nolint:wrapcheck
	case errors.Is(err, model.ErrInvalidAmount):
		return failure.BadRequest(err) //nolint:wrapcheck
	case errors.Is(err, model.ErrInvalidTransition):
		return failure.Conflict(err.Error()) //nolint:wrapcheck
	default:
		return err
	}
}

func (s *serviceImpl) respond(booking model.Booking, err error) (res dto.BookingResponse, _ error) {
	if err != nil {
		return res, err
	}

	res.FromModel(booking, s.cfg.Payment.OrderCodePrefix)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string, req dto.CancelRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := actor(ctx)

	return s.respond(s.transitionByID(ctx, id, true, func(b model.Booking) (model.Transition, error) {
		if b.PaymentStatus.HasPayment() {
			return model.Transition{}, failure.Conflict("booking has a payment, request a refund instead") //nolint:wrapcheck
		}

		return b.Cancel(user, req.Reason, s.clock.Now())
	}))
}

func (s *serviceImpl) RecordCashPayment(ctx context.Context, id string, req dto.CashPaymentRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.RecordCashPayment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := actor(ctx)

	return s.respond(s.transitionByID(ctx, id, false, func(b model.Booking) (model.Transition, error) {
		return b.ReceiveCash(req.Amount, user, req.Note, s.clock.Now())
	}))
}

func (s *serviceImpl) ConfirmFullPayment(ctx context.Context, id string, req dto.ConfirmPaymentRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ConfirmFullPayment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := actor(ctx)

	method := ledgerModel.MethodCash
	if req.Method != constant.Empty {
		if method, err = ledgerModel.ParseMethod(req.Method); err != nil {
			return res, failure.BadRequest(err) //nolint:wrapcheck
		}
	}

	return s.respond(s.transitionByID(ctx, id, false, func(b model.Booking) (model.Transition, error) {
		return b.ConfirmFullPayment(method, user, req.Note, s.clock.Now())
	}))
}

func (s *serviceImpl) RequestRefund(ctx context.Context, id string, req dto.RefundRequest) (res dto.RefundResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.RequestRefund")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := actor(ctx)

	var amount int64

	booking, err := s.transitionByID(ctx, id, true, func(b model.Booking) (model.Transition, error) {
		now := s.clock.Now()

		info := req.ToModel()
		info.Amount = refund.ForBooking(b, s.cfg.Booking.CheckInHour, timezone.GetLocation(), now)

		amount = info.Amount

		return b.RequestRefund(info, user, now)
	})
	if err != nil {
		return res, err
	}

	res.RefundAmount = amount
	res.Booking.FromModel(booking, s.cfg.Payment.OrderCodePrefix)

	return res, nil
}

func (s *serviceImpl) ConfirmRefund(ctx context.Context, id string, req dto.NoteRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ConfirmRefund")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := actor(ctx)

	return s.respond(s.transitionByID(ctx, id, false, func(b model.Booking) (model.Transition, error) {
		return b.ConfirmRefund(user, req.Note, s.clock.Now())
	}))
}

func (s *serviceImpl) MarkNoShow(ctx context.Context, id string, req dto.NoteRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.MarkNoShow")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := actor(ctx)

	return s.respond(s.transitionByID(ctx, id, false, func(b model.Booking) (model.Transition, error) {
		return b.MarkNoShow(user, req.Note, s.clock.Now())
	}))
}

func (s *serviceImpl) Complete(ctx context.Context, id string, req dto.NoteRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Complete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := actor(ctx)

	return s.respond(s.transitionByID(ctx, id, false, func(b model.Booking) (model.Transition, error) {
		return b.Complete(user, req.Note, s.clock.Now())
	}))
}

func (s *serviceImpl) AddContactLog(ctx context.Context, id string, req dto.ContactLogRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.AddContactLog")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := actor(ctx)

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	entry := model.ContactLog{Channel: req.Channel, Note: req.Note, Actor: user, At: s.clock.Now()}

	if err = s.repo.AppendContactLog(ctx, id, entry); err != nil {
		if errors.Is(err, model.ErrPreconditionFailed) {
			return res, failure.NotFound("booking not found") //nolint:wrapcheck
		}

		log.Error().Err(err).Str("booking", id).Msg("failed to append contact log")

		return res, fmt.Errorf("failed to append contact log: %w", err)
	}

	booking.ContactLogs = append(booking.ContactLogs, entry)
	s.invalidate(ctx, id, false)

	res.FromModel(booking, s.cfg.Payment.OrderCodePrefix)

	return res, nil
}

func (s *serviceImpl) ConfirmTransfer(ctx context.Context, booking model.Booking, credited, received int64) (res model.Booking, applied bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ConfirmTransfer")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.transition(ctx, booking, func(b model.Booking) (model.Transition, error) {
		return b.ConfirmTransfer(credited, received, s.clock.Now())
	})
	if errors.Is(err, model.ErrPreconditionFailed) {
		log.Info().Str("booking", booking.ID).Msg("transfer already handled by a concurrent update")

		return booking, false, nil
	}

	if err != nil {
		return booking, false, err
	}

	return res, true, nil
}

// SweepExpired cancels unpaid bookings whose payment window has passed. A booking paid
// between the scan and the write keeps its payment: the guarded write simply loses.
func (s *serviceImpl) SweepExpired(ctx context.Context) (res dto.SweepResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.SweepExpired")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := s.clock.Now()

	expired, err := s.repo.FindExpired(ctx, now, s.cfg.Booking.SweepBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to find expired bookings")

		return res, fmt.Errorf("failed to find expired bookings: %w", err)
	}

	var errs []error

	for _, booking := range expired {
		_, err := s.transition(ctx, booking, func(b model.Booking) (model.Transition, error) {
			return b.AutoCancel(now)
		})

		switch {
		case err == nil:
			res.Count++
		case errors.Is(err, model.ErrPreconditionFailed), failure.HasCode(err, http.StatusConflict):
			log.Debug().Str("booking", booking.ID).Msg("booking no longer expired, skipping")
		default:
			errs = append(errs, err)
		}
	}

	scope.SetAttribute("sweep.count", res.Count)

	if len(errs) > 0 {
		return res, errors.Join(errs...)
	}

	return res, nil
}
