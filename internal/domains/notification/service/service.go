package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/notification/model"
	"hotel/shared/clock"
	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
)

type Notifier interface {
	NotifyBookingConfirmed(ctx context.Context, booking bookingModel.Booking) error
}

type serviceImpl struct {
	kafka kafka.Client
	clock clock.Clock
	cfg   *config.Config
	otel  otel.Otel
}

func New(kafka kafka.Client, clk clock.Clock, cfg *config.Config, otel otel.Otel) Notifier {
	return &serviceImpl{
		kafka: kafka,
		clock: clk,
		cfg:   cfg,
		otel:  otel,
	}
}

func (s *serviceImpl) NotifyBookingConfirmed(ctx context.Context, booking bookingModel.Booking) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".notification.NotifyBookingConfirmed")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !s.kafka.Enabled() {
		log.Debug().Str("booking", booking.ID).Msg("kafka disabled, booking confirmation not published")

		return nil
	}

	event := model.NewBookingConfirmed(booking, s.cfg.Payment.OrderCodePrefix, s.clock.Now())
	topic := s.cfg.Kafka.Topic.BookingConfirmed

	if err = s.kafka.SendMessages(ctx, topic, kafka.Message{Key: booking.ID, Value: event}); err != nil {
		log.Error().Err(err).Str("booking", booking.ID).Msg("failed to publish booking confirmation")

		return fmt.Errorf("failed to publish booking confirmation: %w", err)
	}

	log.Info().Str("booking", booking.ID).Str("topic", topic).Msg("booking confirmation published")

	return nil
}
