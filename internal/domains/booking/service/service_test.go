package service_test

import (
	"context"
	"errors"
	"hotel/config"
	"hotel/infras/otel/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/service"
	ledgerModel "hotel/internal/domains/ledger/model"
	roomModel "hotel/internal/domains/room/model"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/clock"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/keylock"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// memoryRepo is an in-memory booking store that enforces transition guards the
// way the conditional UPDATE does.
type memoryRepo struct {
	mu       sync.Mutex
	bookings map[string]model.Booking
	entries  []ledgerModel.Transaction
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{bookings: map[string]model.Booking{}}
}

func (r *memoryRepo) InsertIfAvailable(_ context.Context, booking model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.RoomID == booking.RoomID && b.IsLive() && b.Overlaps(booking.CheckIn, booking.CheckOut) {
			return model.ErrScheduleConflict
		}
	}

	r.bookings[booking.ID] = booking

	return nil
}

func (r *memoryRepo) HasConflict(_ context.Context, roomID string, checkIn, checkOut time.Time, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.ID != excludeID && b.RoomID == roomID && b.IsLive() && b.Overlaps(checkIn, checkOut) {
			return true, nil
		}
	}

	return false, nil
}

func (r *memoryRepo) Get(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Booking, error) {
	_, args := filter.GetWhereClause()
	id, _ := args[model.FieldID].(string)

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.bookings[id], nil
}

func (r *memoryRepo) GetAll(context.Context, gDto.QueryParams, gDto.FilterGroup, ...string) ([]model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := make([]model.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		res = append(res, b)
	}

	return res, nil
}

func (r *memoryRepo) Count(context.Context, gDto.FilterGroup) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.bookings), nil
}

func (r *memoryRepo) FindByOrderCode(_ context.Context, code string) (model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.OrderCode() == code {
			return b, nil
		}
	}

	return model.Booking{}, nil
}

func (r *memoryRepo) FindExpired(_ context.Context, now time.Time, limit int) ([]model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var res []model.Booking

	for _, b := range r.bookings {
		if b.Status == model.StatusPending && b.PaymentStatus == model.PaymentUnpaid &&
			b.ExpiryDeadline != nil && b.ExpiryDeadline.Before(now) && len(res) < limit {
			res = append(res, b)
		}
	}

	return res, nil
}

func (r *memoryRepo) ApplyTransition(_ context.Context, t model.Transition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[t.BookingID]
	if !ok || !t.Guard.Holds(b) {
		return model.ErrPreconditionFailed
	}

	t.Apply(&b)
	r.bookings[b.ID] = b

	if t.Entry != nil {
		r.entries = append(r.entries, *t.Entry)
	}

	return nil
}

func (r *memoryRepo) AppendContactLog(_ context.Context, id string, entry model.ContactLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return model.ErrPreconditionFailed
	}

	b.ContactLogs = append(b.ContactLogs, entry)
	r.bookings[id] = b

	return nil
}

func (r *memoryRepo) booking(id string) model.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.bookings[id]
}

func (r *memoryRepo) ledger() []ledgerModel.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]ledgerModel.Transaction{}, r.entries...)
}

var (
	start = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	room  = roomModel.Room{
		ID:                    "room-1",
		HotelID:               "hotel-1",
		Name:                  "Deluxe",
		Type:                  "double",
		Price:                 1_000_000,
		MaxPeople:             2,
		FreeCancelBeforeHours: 48,
		RefundPercent:         100,
		AvailableCount:        1,
		Active:                true,
	}
)

// roomSlots tracks the net availability change the service asks the catalog for.
type roomSlots struct {
	mu    sync.Mutex
	delta int
	err   error
}

func (r *roomSlots) adjust(_ context.Context, _ string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}

	r.delta += delta

	return nil
}

func (r *roomSlots) fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.err = err
}

func (r *roomSlots) net() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.delta
}

type fixture struct {
	repo  *memoryRepo
	slots *roomSlots
	clock *clock.Frozen
	svc   service.Booking
}

func setup(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	catalog := bookingMocks.NewMockCatalog(ctrl)
	catalog.EXPECT().LookupRoom(gomock.Any(), room.ID).Return(room, nil).AnyTimes()

	slots := &roomSlots{}
	catalog.EXPECT().AdjustAvailability(gomock.Any(), room.ID, gomock.Any()).DoAndReturn(slots.adjust).AnyTimes()

	cfg := &config.Config{}
	cfg.Booking.DepositRate = 0.3
	cfg.Booking.PaymentWindowMinutes = 15
	cfg.Booking.CheckInHour = 14
	cfg.Booking.SweepBatchSize = 100
	cfg.Payment.OrderCodePrefix = "HOTEL"

	repo := newMemoryRepo()
	clk := clock.NewFrozen(start)

	return fixture{
		repo:  repo,
		slots: slots,
		clock: clk,
		svc:   service.New(repo, catalog, clk, keylock.New(), cfg, mockCache, mocks.NewOtel()),
	}
}

func guest(user string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, user)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleUser)
}

func staff() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleStaff)
}

func createRequest(checkIn, checkOut string) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		RoomID:     room.ID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		GuestName:  "Lan",
		GuestEmail: "lan@example.com",
		GuestPhone: "0900000000",
		Guests:     2,
	}
}

func (f fixture) create(t *testing.T) dto.BookingResponse {
	t.Helper()

	res, err := f.svc.Create(guest("u1"), createRequest("2025-06-10", "2025-06-12"))
	require.NoError(t, err)

	return res
}

func TestBookingService_Create(t *testing.T) {
	f := setup(t)

	res := f.create(t)

	assert.Equal(t, 2, res.Nights)
	assert.Equal(t, int64(2_000_000), res.TotalPrice)
	assert.Equal(t, int64(600_000), res.DepositAmount)
	assert.Equal(t, int64(1_400_000), res.RemainingAmount)
	assert.Equal(t, string(model.StatusPending), res.Status)
	assert.Equal(t, string(model.PaymentUnpaid), res.PaymentStatus)
	assert.Equal(t, "HOTEL"+res.OrderCode, res.PaymentCode)
	assert.Equal(t, "u1", res.UserID)
	require.NotNil(t, res.ExpiryDeadline)

	stored := f.repo.booking(res.ID)
	assert.Equal(t, start.Add(15*time.Minute), *stored.ExpiryDeadline)
	require.Len(t, stored.PaymentLogs, 1)
	assert.Equal(t, model.ActionCreated, stored.PaymentLogs[0].Action)
	assert.Equal(t, "Deluxe", stored.RoomName)

	// the booking holds one slot of the room
	assert.Equal(t, -1, f.slots.net())
}

func TestBookingService_CreateRejects(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.CreateBookingRequest
		wantCode int
	}{
		{name: "check-out before check-in", req: createRequest("2025-06-12", "2025-06-10"), wantCode: http.StatusBadRequest},
		{name: "zero nights", req: createRequest("2025-06-10", "2025-06-10"), wantCode: http.StatusBadRequest},
		{name: "check-in in the past", req: createRequest("2025-05-30", "2025-06-02"), wantCode: http.StatusBadRequest},
		{
			name: "too many guests",
			req: func() dto.CreateBookingRequest {
				r := createRequest("2025-06-10", "2025-06-12")
				r.Guests = 3

				return r
			}(),
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)

			_, err := f.svc.Create(guest("u1"), tt.req)

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
			assert.Zero(t, f.slots.net())
		})
	}
}

func TestBookingService_CreateOverlap(t *testing.T) {
	f := setup(t)
	f.create(t)

	_, err := f.svc.Create(guest("u2"), createRequest("2025-06-11", "2025-06-13"))
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	// back-to-back stays share a boundary date without overlapping
	_, err = f.svc.Create(guest("u2"), createRequest("2025-06-12", "2025-06-14"))
	assert.NoError(t, err)
}

func TestBookingService_CreateConcurrent(t *testing.T) {
	f := setup(t)

	const attempts = 20

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	for i := range attempts {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			_, err := f.svc.Create(guest("u"+string(rune('a'+i))), createRequest("2025-06-10", "2025-06-12"))

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				succeeded++
			case failure.GetCode(err) == http.StatusConflict:
				conflicts++
			}
		}(i)
	}

	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)
	assert.Equal(t, -1, f.slots.net())
}

func TestBookingService_CheckAvailability(t *testing.T) {
	f := setup(t)
	f.create(t)

	res, err := f.svc.CheckAvailability(context.Background(), dto.AvailabilityRequest{RoomID: room.ID, CheckIn: "2025-06-11", CheckOut: "2025-06-12"})
	require.NoError(t, err)
	assert.False(t, res.Available)

	res, err = f.svc.CheckAvailability(context.Background(), dto.AvailabilityRequest{RoomID: room.ID, CheckIn: "2025-06-12", CheckOut: "2025-06-13"})
	require.NoError(t, err)
	assert.True(t, res.Available)
}

func TestBookingService_Get(t *testing.T) {
	f := setup(t)
	created := f.create(t)

	res, err := f.svc.Get(guest("u1"), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, res.ID)

	_, err = f.svc.Get(guest("intruder"), created.ID)
	assert.Equal(t, http.StatusForbidden, failure.GetCode(err))

	_, err = f.svc.Get(staff(), created.ID)
	assert.NoError(t, err)

	_, err = f.svc.Get(staff(), "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestBookingService_TransferThenFullPayment(t *testing.T) {
	f := setup(t)
	created := f.create(t)
	ctx := context.Background()

	b, err := f.svc.FindByOrderCode(ctx, created.OrderCode)
	require.NoError(t, err)

	confirmed, applied, err := f.svc.ConfirmTransfer(ctx, b, 600_000, 600_000)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, model.StatusConfirmed, confirmed.Status)
	assert.Equal(t, model.PaymentDeposited, confirmed.PaymentStatus)
	assert.Nil(t, confirmed.ExpiryDeadline)

	// replaying the same webhook with the stale booking loses the guard
	_, applied, err = f.svc.ConfirmTransfer(ctx, b, 600_000, 600_000)
	require.NoError(t, err)
	assert.False(t, applied)

	// a fresh read sees the booking as already settled
	_, _, err = f.svc.ConfirmTransfer(ctx, f.repo.booking(created.ID), 600_000, 600_000)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	paid, err := f.svc.ConfirmFullPayment(staff(), created.ID, dto.ConfirmPaymentRequest{Method: "CASH"})
	require.NoError(t, err)
	assert.Equal(t, string(model.PaymentPaid), paid.PaymentStatus)
	assert.Equal(t, int64(0), paid.RemainingAmount)

	entries := f.repo.ledger()
	require.Len(t, entries, 2)
	assert.Equal(t, int64(600_000), entries[0].Amount)
	assert.Equal(t, ledgerModel.MethodBankTransfer, entries[0].Method)
	assert.Equal(t, int64(1_400_000), entries[1].Amount)
	assert.Equal(t, ledgerModel.MethodCash, entries[1].Method)

	_, err = f.svc.ConfirmFullPayment(staff(), created.ID, dto.ConfirmPaymentRequest{})
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
}

func TestBookingService_RecordCashPayment(t *testing.T) {
	f := setup(t)
	created := f.create(t)

	res, err := f.svc.RecordCashPayment(staff(), created.ID, dto.CashPaymentRequest{Amount: 500_000})
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusConfirmed), res.Status)
	assert.Equal(t, string(model.PaymentDeposited), res.PaymentStatus)
	assert.Equal(t, int64(500_000), res.DepositAmount)
	assert.Equal(t, int64(1_500_000), res.RemainingAmount)

	res, err = f.svc.RecordCashPayment(staff(), created.ID, dto.CashPaymentRequest{Amount: 1_500_000})
	require.NoError(t, err)
	assert.Equal(t, string(model.PaymentPaid), res.PaymentStatus)
	assert.Equal(t, int64(0), res.RemainingAmount)

	_, err = f.svc.RecordCashPayment(staff(), created.ID, dto.CashPaymentRequest{Amount: 1})
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	assert.Len(t, f.repo.ledger(), 2)
}

func TestBookingService_RefundFlow(t *testing.T) {
	f := setup(t)
	created := f.create(t)
	ctx := context.Background()

	_, _, err := f.svc.ConfirmTransfer(ctx, f.repo.booking(created.ID), 600_000, 600_000)
	require.NoError(t, err)

	req := dto.RefundRequest{BankName: "VCB", AccountNumber: "0123", AccountHolder: "LAN"}

	res, err := f.svc.RequestRefund(guest("u1"), created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, int64(600_000), res.RefundAmount)
	assert.Equal(t, string(model.StatusCancelled), res.Booking.Status)
	assert.Equal(t, string(model.PaymentRefundPending), res.Booking.PaymentStatus)
	require.NotNil(t, res.Booking.RefundInfo)
	assert.Equal(t, "u1", res.Booking.RefundInfo.RequestedBy)

	// the room is free again once the refund is requested
	assert.Zero(t, f.slots.net())

	avail, err := f.svc.CheckAvailability(ctx, dto.AvailabilityRequest{RoomID: room.ID, CheckIn: "2025-06-10", CheckOut: "2025-06-12"})
	require.NoError(t, err)
	assert.True(t, avail.Available)

	_, err = f.svc.RequestRefund(guest("u1"), created.ID, req)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	done, err := f.svc.ConfirmRefund(staff(), created.ID, dto.NoteRequest{Note: "sent"})
	require.NoError(t, err)
	assert.Equal(t, string(model.PaymentRefunded), done.PaymentStatus)

	entries := f.repo.ledger()
	require.Len(t, entries, 2)
	assert.Equal(t, ledgerModel.TypeOutflow, entries[1].Type)
	assert.Equal(t, int64(600_000), entries[1].Amount)

	_, err = f.svc.ConfirmRefund(staff(), created.ID, dto.NoteRequest{})
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.Zero(t, f.slots.net())
}

func TestBookingService_RefundInsideWindow(t *testing.T) {
	f := setup(t)
	created := f.create(t)

	_, _, err := f.svc.ConfirmTransfer(context.Background(), f.repo.booking(created.ID), 600_000, 600_000)
	require.NoError(t, err)

	// 2025-06-09 20:00 is 18 hours before the 14:00 check-in
	f.clock.Set(time.Date(2025, 6, 9, 20, 0, 0, 0, time.UTC))
	f.slots.fail(errors.New("catalog down"))

	res, err := f.svc.RequestRefund(guest("u1"), created.ID, dto.RefundRequest{BankName: "VCB", AccountNumber: "1", AccountHolder: "LAN"})
	require.NoError(t, err)
	assert.Zero(t, res.RefundAmount)
	assert.Equal(t, -1, f.slots.net())

	_, err = f.svc.ConfirmRefund(staff(), created.ID, dto.NoteRequest{})
	require.NoError(t, err)

	// a zero refund moves no money
	assert.Len(t, f.repo.ledger(), 1)
}

func TestBookingService_RequestRefundWithoutPayment(t *testing.T) {
	f := setup(t)
	created := f.create(t)

	_, err := f.svc.RequestRefund(guest("u1"), created.ID, dto.RefundRequest{BankName: "VCB", AccountNumber: "1", AccountHolder: "LAN"})
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	_, err = f.svc.RequestRefund(guest("u2"), created.ID, dto.RefundRequest{BankName: "VCB", AccountNumber: "1", AccountHolder: "LAN"})
	assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
}

func TestBookingService_Cancel(t *testing.T) {
	f := setup(t)
	created := f.create(t)

	_, err := f.svc.Cancel(guest("u2"), created.ID, dto.CancelRequest{})
	assert.Equal(t, http.StatusForbidden, failure.GetCode(err))

	res, err := f.svc.Cancel(guest("u1"), created.ID, dto.CancelRequest{Reason: "plans changed"})
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusCancelled), res.Status)
	assert.Nil(t, res.ExpiryDeadline)
	assert.Zero(t, f.slots.net())

	_, err = f.svc.Cancel(guest("u1"), created.ID, dto.CancelRequest{})
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.Zero(t, f.slots.net())
}

func TestBookingService_CancelWithPayment(t *testing.T) {
	f := setup(t)
	created := f.create(t)

	_, err := f.svc.RecordCashPayment(staff(), created.ID, dto.CashPaymentRequest{Amount: 600_000})
	require.NoError(t, err)

	_, err = f.svc.Cancel(guest("u1"), created.ID, dto.CancelRequest{})
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.Equal(t, -1, f.slots.net())
}

func TestBookingService_Lifecycle(t *testing.T) {
	f := setup(t)
	created := f.create(t)

	_, err := f.svc.Complete(staff(), created.ID, dto.NoteRequest{})
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	_, err = f.svc.ConfirmFullPayment(staff(), created.ID, dto.ConfirmPaymentRequest{Method: "BANK_TRANSFER"})
	require.NoError(t, err)

	res, err := f.svc.Complete(staff(), created.ID, dto.NoteRequest{Note: "checked out"})
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusCompleted), res.Status)
	assert.Zero(t, f.slots.net())

	_, err = f.svc.MarkNoShow(staff(), created.ID, dto.NoteRequest{})
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
}

func TestBookingService_MarkNoShow(t *testing.T) {
	f := setup(t)
	created := f.create(t)

	res, err := f.svc.MarkNoShow(staff(), created.ID, dto.NoteRequest{})
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusNoShow), res.Status)
	assert.Zero(t, f.slots.net())
}

func TestBookingService_AddContactLog(t *testing.T) {
	f := setup(t)
	created := f.create(t)

	res, err := f.svc.AddContactLog(staff(), created.ID, dto.ContactLogRequest{Channel: "PHONE", Note: "confirmed arrival time"})
	require.NoError(t, err)
	require.Len(t, res.ContactLogs, 1)
	assert.Equal(t, "staff-1", res.ContactLogs[0].Actor)

	_, err = f.svc.AddContactLog(staff(), "missing", dto.ContactLogRequest{Channel: "PHONE", Note: "x"})
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestBookingService_SweepExpired(t *testing.T) {
	f := setup(t)
	expiring := f.create(t)

	paid, err := f.svc.Create(guest("u2"), createRequest("2025-06-20", "2025-06-21"))
	require.NoError(t, err)

	_, err = f.svc.RecordCashPayment(staff(), paid.ID, dto.CashPaymentRequest{Amount: 300_000})
	require.NoError(t, err)

	res, err := f.svc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Count)
	assert.Equal(t, -2, f.slots.net())

	f.clock.Advance(16 * time.Minute)

	res, err = f.svc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)

	swept := f.repo.booking(expiring.ID)
	assert.Equal(t, model.StatusCancelled, swept.Status)
	assert.Equal(t, constant.ActorSystem, swept.ModifiedBy)
	assert.Equal(t, model.ActionAutoCancel, swept.PaymentLogs[len(swept.PaymentLogs)-1].Action)
	assert.Equal(t, model.StatusConfirmed, f.repo.booking(paid.ID).Status)
	assert.Equal(t, -1, f.slots.net())

	res, err = f.svc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Count)
}

func TestBookingService_GetAll(t *testing.T) {
	f := setup(t)
	f.create(t)

	res, err := f.svc.GetAll(staff(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Bookings, 1)
}
