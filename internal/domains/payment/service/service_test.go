package service_test

import (
	"context"
	"errors"
	"hotel/config"
	"hotel/infras/otel/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	notificationMocks "hotel/internal/domains/notification/mocks"
	"hotel/internal/domains/payment/model/dto"
	"hotel/internal/domains/payment/service"
	"hotel/shared/failure"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const bookingID = "7f1c2d3e-0000-4000-8000-00000abc12de"

func pending() bookingModel.Booking {
	return bookingModel.Booking{
		ID:              bookingID,
		TotalPrice:      3_000_000,
		DepositAmount:   900_000,
		RemainingAmount: 2_100_000,
		Status:          bookingModel.StatusPending,
		PaymentStatus:   bookingModel.PaymentUnpaid,
	}
}

func setup(t *testing.T) (*bookingMocks.MockBookingService, *notificationMocks.MockNotifier, service.Payment) {
	ctrl := gomock.NewController(t)

	bookings := bookingMocks.NewMockBookingService(ctrl)
	notifier := notificationMocks.NewMockNotifier(ctrl)

	cfg := &config.Config{}
	cfg.Payment.OrderCodePrefix = "HOTEL"
	cfg.Payment.AmountTolerance = 1000
	cfg.Payment.TestAmount = 2000

	return bookings, notifier, service.New(bookings, notifier, cfg, mocks.NewOtel())
}

func TestOrderCodePattern(t *testing.T) {
	pattern := service.OrderCodePattern("HOTEL")

	tests := []struct {
		text string
		want string
	}{
		{text: "HOTEL0ABC12DE", want: "0ABC12DE"},
		{text: "MBVCB.123 hotel 0abc12de chuyen tien", want: "0abc12de"},
		{text: "payment HOTEL  0ABC12DE.", want: "0ABC12DE"},
		{text: "HOTEL12", want: ""},
		{text: "no code here", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			match := pattern.FindStringSubmatch(tt.text)
			if tt.want == "" {
				assert.Nil(t, match)

				return
			}

			require.Len(t, match, 2)
			assert.Equal(t, tt.want, match[1])
		})
	}
}

func TestPaymentService_HandleWebhookConfirms(t *testing.T) {
	tests := []struct {
		name         string
		amount       int64
		wantCredited int64
	}{
		{name: "exact deposit", amount: 900_000, wantCredited: 900_000},
		{name: "within tolerance", amount: 899_500, wantCredited: 900_000},
		{name: "more than deposit", amount: 1_200_000, wantCredited: 1_200_000},
		{name: "sandbox amount", amount: 2000, wantCredited: 900_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings, notifier, svc := setup(t)

			confirmed := pending()
			confirmed.Status = bookingModel.StatusConfirmed
			confirmed.PaymentStatus = bookingModel.PaymentDeposited

			notified := make(chan bookingModel.Booking, 1)

			bookings.EXPECT().FindByOrderCode(gomock.Any(), "0ABC12DE").Return(pending(), nil)
			bookings.EXPECT().ConfirmTransfer(gomock.Any(), pending(), tt.wantCredited, tt.amount).Return(confirmed, true, nil)
			notifier.EXPECT().NotifyBookingConfirmed(gomock.Any(), confirmed).
				DoAndReturn(func(_ context.Context, b bookingModel.Booking) error {
					notified <- b

					return errors.New("smtp down")
				})

			res, err := svc.HandleWebhook(context.Background(), dto.WebhookRequest{
				ID:             1,
				Content:        "HOTEL0ABC12DE",
				TransferType:   "in",
				TransferAmount: tt.amount,
			})

			require.NoError(t, err)
			assert.Equal(t, dto.OutcomeConfirmed, res.Outcome)
			assert.Equal(t, tt.wantCredited, res.Credited)
			assert.Equal(t, bookingID, res.BookingID)

			select {
			case b := <-notified:
				assert.Equal(t, bookingModel.PaymentDeposited, b.PaymentStatus)
			case <-time.After(time.Second):
				t.Fatal("confirmation was not sent")
			}
		})
	}
}

func TestPaymentService_HandleWebhookDiscards(t *testing.T) {
	paid := pending()
	paid.Status = bookingModel.StatusConfirmed
	paid.PaymentStatus = bookingModel.PaymentDeposited

	cancelled := pending()
	cancelled.Status = bookingModel.StatusCancelled

	tests := []struct {
		name      string
		req       dto.WebhookRequest
		setupMock func(bookings *bookingMocks.MockBookingService)
		want      dto.Outcome
		wantErr   bool
	}{
		{
			name: "outgoing transfer",
			req:  dto.WebhookRequest{Content: "HOTEL0ABC12DE", TransferType: "out", TransferAmount: 900_000},
			want: dto.OutcomeIgnored,
		},
		{
			name: "no order code",
			req:  dto.WebhookRequest{Content: "salary", TransferAmount: 900_000},
			want: dto.OutcomeNoOrderCode,
		},
		{
			name: "unknown order code",
			req:  dto.WebhookRequest{Content: "HOTEL0ABC12DE", TransferAmount: 900_000},
			setupMock: func(bookings *bookingMocks.MockBookingService) {
				bookings.EXPECT().FindByOrderCode(gomock.Any(), "0ABC12DE").Return(bookingModel.Booking{}, nil)
			},
			want: dto.OutcomeNotFound,
		},
		{
			name: "replayed notification",
			req:  dto.WebhookRequest{Content: "HOTEL0ABC12DE", TransferAmount: 900_000},
			setupMock: func(bookings *bookingMocks.MockBookingService) {
				bookings.EXPECT().FindByOrderCode(gomock.Any(), "0ABC12DE").Return(paid, nil)
			},
			want: dto.OutcomeAlreadyPaid,
		},
		{
			name: "cancelled booking",
			req:  dto.WebhookRequest{Content: "HOTEL0ABC12DE", TransferAmount: 900_000},
			setupMock: func(bookings *bookingMocks.MockBookingService) {
				bookings.EXPECT().FindByOrderCode(gomock.Any(), "0ABC12DE").Return(cancelled, nil)
			},
			want: dto.OutcomeNotPayable,
		},
		{
			name: "amount too small",
			req:  dto.WebhookRequest{Content: "HOTEL0ABC12DE", TransferAmount: 500_000},
			setupMock: func(bookings *bookingMocks.MockBookingService) {
				bookings.EXPECT().FindByOrderCode(gomock.Any(), "0ABC12DE").Return(pending(), nil)
			},
			want: dto.OutcomeInsufficient,
		},
		{
			name: "lost race with the sweeper",
			req:  dto.WebhookRequest{Content: "HOTEL0ABC12DE", TransferAmount: 900_000},
			setupMock: func(bookings *bookingMocks.MockBookingService) {
				bookings.EXPECT().FindByOrderCode(gomock.Any(), "0ABC12DE").Return(pending(), nil)
				bookings.EXPECT().ConfirmTransfer(gomock.Any(), gomock.Any(), int64(900_000), int64(900_000)).Return(pending(), false, nil)
			},
			want: dto.OutcomeAlreadyHandled,
		},
		{
			name: "settled between read and write",
			req:  dto.WebhookRequest{Content: "HOTEL0ABC12DE", TransferAmount: 900_000},
			setupMock: func(bookings *bookingMocks.MockBookingService) {
				bookings.EXPECT().FindByOrderCode(gomock.Any(), "0ABC12DE").Return(pending(), nil)
				bookings.EXPECT().ConfirmTransfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(pending(), false, failure.Conflict("booking is already fully paid"))
			},
			want: dto.OutcomeAlreadyHandled,
		},
		{
			name: "store down",
			req:  dto.WebhookRequest{Content: "HOTEL0ABC12DE", TransferAmount: 900_000},
			setupMock: func(bookings *bookingMocks.MockBookingService) {
				bookings.EXPECT().FindByOrderCode(gomock.Any(), "0ABC12DE").Return(bookingModel.Booking{}, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings, _, svc := setup(t)
			if tt.setupMock != nil {
				tt.setupMock(bookings)
			}

			res, err := svc.HandleWebhook(context.Background(), tt.req)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Outcome)
		})
	}
}
