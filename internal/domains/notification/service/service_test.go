package service_test

import (
	"context"
	"errors"
	"hotel/config"
	"hotel/infras/kafka"
	kafkaMocks "hotel/infras/kafka/mocks"
	"hotel/infras/otel/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/notification/model"
	"hotel/internal/domains/notification/service"
	"hotel/shared/clock"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNotifier_NotifyBookingConfirmed(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	booking := bookingModel.Booking{
		ID:            "7f1c2d3e-0000-4000-8000-00000abc12de",
		RoomID:        "room-1",
		CheckIn:       time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC),
		GuestInfo:     bookingModel.GuestInfo{GuestName: "Lan", GuestEmail: "lan@example.com", Guests: 2},
		TotalPrice:    3_000_000,
		DepositAmount: 900_000,
		Status:        bookingModel.StatusConfirmed,
		PaymentStatus: bookingModel.PaymentDeposited,
	}

	cfg := &config.Config{}
	cfg.Payment.OrderCodePrefix = "HOTEL"
	cfg.Kafka.Topic.BookingConfirmed = "booking.confirmed"

	tests := []struct {
		name    string
		sendErr error
		wantErr bool
	}{
		{name: "published"},
		{name: "broker down", sendErr: errors.New("broker down"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := kafkaMocks.NewMockClient(ctrl)

			var sent kafka.Message

			client.EXPECT().Enabled().Return(true)
			client.EXPECT().
				SendMessages(gomock.Any(), "booking.confirmed", gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, msgs ...kafka.Message) error {
					require.Len(t, msgs, 1)
					sent = msgs[0]

					return tt.sendErr
				})

			notifier := service.New(client, clock.NewFrozen(now), cfg, mocks.NewOtel())

			err := notifier.NotifyBookingConfirmed(context.Background(), booking)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, booking.ID, sent.Key)

			event, ok := sent.Value.(model.BookingConfirmed)
			require.True(t, ok)
			assert.Equal(t, "0ABC12DE", event.OrderCode)
			assert.Equal(t, "HOTEL0ABC12DE", event.PaymentCode)
			assert.Equal(t, "2025-06-10", event.CheckIn)
			assert.Equal(t, "lan@example.com", event.GuestEmail)
			assert.Equal(t, string(bookingModel.PaymentDeposited), event.PaymentStatus)
		})
	}
}

func TestNotifier_KafkaDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)
	client.EXPECT().Enabled().Return(false)

	notifier := service.New(client, clock.NewFrozen(time.Now()), &config.Config{}, mocks.NewOtel())

	assert.NoError(t, notifier.NotifyBookingConfirmed(context.Background(), bookingModel.Booking{ID: "b-1"}))
}
