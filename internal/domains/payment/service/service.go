package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	bookingModel "hotel/internal/domains/booking/model"
	bookingService "hotel/internal/domains/booking/service"
	notificationService "hotel/internal/domains/notification/service"
	"hotel/internal/domains/payment/model/dto"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"net/http"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

type Payment interface {
	// HandleWebhook reconciles a transfer notification with its booking. Only store
	// failures are returned; every other outcome is reported in the result.
	HandleWebhook(ctx context.Context, req dto.WebhookRequest) (dto.WebhookResult, error)
}

type serviceImpl struct {
	bookings  bookingService.Booking
	notifier  notificationService.Notifier
	cfg       *config.Config
	otel      otel.Otel
	orderCode *regexp.Regexp
}

func New(bookings bookingService.Booking, notifier notificationService.Notifier, cfg *config.Config, otel otel.Otel) Payment {
	return &serviceImpl{
		bookings:  bookings,
		notifier:  notifier,
		cfg:       cfg,
		otel:      otel,
		orderCode: OrderCodePattern(cfg.Payment.OrderCodePrefix),
	}
}

// OrderCodePattern matches the prefix followed by the order code, ignoring case and
// any spaces a banking app inserts after the prefix.
func OrderCodePattern(prefix string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(prefix) + `\s*([A-Z0-9]{6,})`)
}

func (s *serviceImpl) extractOrderCode(text string) string {
	match := s.orderCode.FindStringSubmatch(text)
	if len(match) < 2 {
		return constant.Empty
	}

	return strings.ToUpper(match[1])
}

func (s *serviceImpl) HandleWebhook(ctx context.Context, req dto.WebhookRequest) (res dto.WebhookResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.HandleWebhook")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	logger := log.With().Int64("webhook", req.ID).Str("gateway", req.Gateway).Int64("amount", req.TransferAmount).Logger()

	if !req.IsIncoming() {
		logger.Info().Str("transferType", req.TransferType).Msg("ignoring outgoing transfer")

		return dto.WebhookResult{Outcome: dto.OutcomeIgnored}, nil
	}

	res.OrderCode = s.extractOrderCode(req.Text())
	if res.OrderCode == constant.Empty {
		logger.Info().Msg("no order code in transfer content, discarding")

		res.Outcome = dto.OutcomeNoOrderCode

		return res, nil
	}

	booking, err := s.bookings.FindByOrderCode(ctx, res.OrderCode)
	if err != nil {
		return res, fmt.Errorf("failed to resolve order code %s: %w", res.OrderCode, err)
	}

	if booking.ID == constant.Empty {
		logger.Info().Str("code", res.OrderCode).Msg("no booking for order code, discarding")

		res.Outcome = dto.OutcomeNotFound

		return res, nil
	}

	res.BookingID = booking.ID
	logger = logger.With().Str("booking", booking.ID).Logger()

	if booking.PaymentStatus.HasPayment() {
		logger.Info().Str("paymentStatus", string(booking.PaymentStatus)).Msg("booking already paid, discarding duplicate transfer")

		res.Outcome = dto.OutcomeAlreadyPaid

		return res, nil
	}

	if booking.Status != bookingModel.StatusPending || booking.PaymentStatus != bookingModel.PaymentUnpaid {
		logger.Warn().
			Str("status", string(booking.Status)).
			Str("paymentStatus", string(booking.PaymentStatus)).
			Msg("transfer received for a booking that no longer accepts payment")

		res.Outcome = dto.OutcomeNotPayable

		return res, nil
	}

	credited, ok := s.credit(req.TransferAmount, booking.DepositAmount)
	if !ok {
		logger.Warn().Int64("deposit", booking.DepositAmount).Msg("transfer below required deposit, discarding")

		res.Outcome = dto.OutcomeInsufficient

		return res, nil
	}

	confirmed, applied, err := s.bookings.ConfirmTransfer(ctx, booking, credited, req.TransferAmount)
	if failure.HasCode(err, http.StatusConflict) {
		applied, err = false, nil
	}

	if err != nil {
		return res, fmt.Errorf("failed to confirm transfer: %w", err)
	}

	if !applied {
		logger.Info().Msg("transfer already applied by a concurrent update")

		res.Outcome = dto.OutcomeAlreadyHandled

		return res, nil
	}

	res.Outcome = dto.OutcomeConfirmed
	res.Credited = credited

	logger.Info().Int64("credited", credited).Str("paymentStatus", string(confirmed.PaymentStatus)).Msg("transfer confirmed")

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.notifier.NotifyBookingConfirmed(c, confirmed); err != nil {
			log.Error().Err(err).Str("booking", confirmed.ID).Msg("failed to send booking confirmation")
		}
	}()

	return res, nil
}

// credit returns the amount counted against the booking. A transfer within the tolerance of
// the deposit counts as the full deposit; the sandbox test amount also stands in for it.
func (s *serviceImpl) credit(amount, deposit int64) (int64, bool) {
	if amount >= deposit-s.cfg.Payment.AmountTolerance {
		return max(amount, deposit), true
	}

	if s.cfg.Payment.TestAmount > 0 && amount == s.cfg.Payment.TestAmount {
		return deposit, true
	}

	return 0, false
}
