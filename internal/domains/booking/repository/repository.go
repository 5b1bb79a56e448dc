package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	ledgerRepo "hotel/internal/domains/ledger/repository"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/logger"
	gRepo "hotel/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
)

const roomLockQuery = "SELECT pg_advisory_xact_lock(hashtext($1))"

type Booking interface {
	// InsertIfAvailable inserts the booking unless a live booking overlaps it, holding a
	// per-room lock for the duration of the check and insert.
	InsertIfAvailable(ctx context.Context, booking model.Booking) error
	HasConflict(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeID string) (bool, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	FindByOrderCode(ctx context.Context, code string) (model.Booking, error)
	FindExpired(ctx context.Context, now time.Time, limit int) ([]model.Booking, error)
	// ApplyTransition writes the transition only if its guard still holds, returning
	// model.ErrPreconditionFailed otherwise.
	ApplyTransition(ctx context.Context, transition model.Transition) error
	AppendContactLog(ctx context.Context, id string, entry model.ContactLog) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db     *postgres.Connection
	ledger ledgerRepo.Transaction
	otel   otel.Otel
}

func New(db *postgres.Connection, ledger ledgerRepo.Transaction, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		ledger:     ledger,
		otel:       otel,
	}
}

func (r *repositoryImpl) InsertIfAvailable(ctx context.Context, booking model.Booking) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.InsertIfAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, roomLockQuery, booking.RoomID); err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to lock room %s: %w", booking.RoomID, err)
		}

		conflict, err := r.ExistTx(ctx, tx, ConflictFilter(booking.RoomID, booking.CheckIn, booking.CheckOut, constant.Empty))
		if err != nil {
			return err //nolint:wrapcheck
		}

		if conflict {
			return model.ErrScheduleConflict
		}

		return r.InsertTx(ctx, tx, booking) //nolint:wrapcheck
	})
}

func (r *repositoryImpl) HasConflict(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeID string) (bool, error) {
	return r.Exist(ctx, ConflictFilter(roomID, checkIn, checkOut, excludeID)) //nolint:wrapcheck
}

// FindByOrderCode returns the most recent booking whose id ends with code, or a zero booking.
func (r *repositoryImpl) FindByOrderCode(ctx context.Context, code string) (model.Booking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.FindByOrderCode")
	defer scope.End()

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: code, Operator: gDto.FilterOperatorSuffix, Table: model.TableName},
		},
	}

	bookings, err := r.GetAll(ctx, gDto.QueryParams{Limit: 1, SortBy: model.FieldCreatedAt, SortDir: gDto.SortDirDesc}, filter)
	if err != nil {
		return model.Booking{}, err //nolint:wrapcheck
	}

	if len(bookings) == 0 {
		return model.Booking{}, nil
	}

	return bookings[0], nil
}

func (r *repositoryImpl) FindExpired(ctx context.Context, now time.Time, limit int) ([]model.Booking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.FindExpired")
	defer scope.End()

	return r.GetAll(ctx, gDto.QueryParams{Limit: limit, SortBy: model.FieldExpiryDeadline, SortDir: gDto.SortDirAsc}, ExpiredFilter(now)) //nolint:wrapcheck
}

func (r *repositoryImpl) ApplyTransition(ctx context.Context, transition model.Transition) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ApplyTransition")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("booking.action", transition.Log.Action)

	changes := transition.Changes()
	changes[model.FieldPaymentLogs] = appendJSON(model.FieldPaymentLogs, "payment_log", transition.Log)

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		affected, err := r.UpdateTx(ctx, tx, changes, GuardFilter(transition.BookingID, transition.Guard))
		if err != nil {
			return err //nolint:wrapcheck
		}

		if affected == 0 {
			return model.ErrPreconditionFailed
		}

		if transition.Entry == nil {
			return nil
		}

		return r.ledger.InsertTx(ctx, tx, *transition.Entry) //nolint:wrapcheck
	})
}

func (r *repositoryImpl) AppendContactLog(ctx context.Context, id string, entry model.ContactLog) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.AppendContactLog")
	defer scope.End()

	changes := map[string]any{
		model.FieldContactLogs: appendJSON(model.FieldContactLogs, "contact_log", entry),
		model.FieldModifiedAt:  entry.At,
		model.FieldModifiedBy:  entry.Actor,
	}

	affected, err := r.Update(ctx, changes, GuardFilter(id, model.Guard{}))
	if err != nil {
		return err //nolint:wrapcheck
	}

	if affected == 0 {
		return model.ErrPreconditionFailed
	}

	return nil
}

func appendJSON(column, arg string, value any) gRepo.Expr {
	return gRepo.Expr{
		SQL:  fmt.Sprintf("%s || CAST(:%s AS jsonb)", column, arg),
		Args: map[string]any{arg: value},
	}
}

// ConflictFilter matches live bookings of the room whose stay overlaps [checkIn, checkOut).
func ConflictFilter(roomID string, checkIn, checkOut time.Time, excludeID string) gDto.FilterGroup {
	holding := []model.PaymentStatus{model.PaymentUnpaid, model.PaymentDeposited, model.PaymentPaid}

	filters := []any{
		gDto.Filter{Field: model.FieldRoomID, Value: roomID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{ArgName: "live_status", Field: model.FieldStatus, Value: model.LiveStatuses, Operator: gDto.FilterOperatorIn, Table: model.TableName},
		gDto.Filter{ArgName: "holding_payment", Field: model.FieldPaymentStatus, Value: holding, Operator: gDto.FilterOperatorIn, Table: model.TableName},
		gDto.Filter{ArgName: "requested_check_out", Field: model.FieldCheckIn, Value: checkOut, Operator: gDto.FilterOperatorLess, Table: model.TableName},
		gDto.Filter{ArgName: "requested_check_in", Field: model.FieldCheckOut, Value: checkIn, Operator: gDto.FilterOperatorGreater, Table: model.TableName},
	}

	if excludeID != constant.Empty {
		filters = append(filters, gDto.Filter{ArgName: "exclude_id", Field: model.FieldID, Value: excludeID, Operator: gDto.FilterOperatorNotEq, Table: model.TableName})
	}

	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}
}

// ExpiredFilter matches unpaid pending bookings whose payment window closed before now.
func ExpiredFilter(now time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusPending, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldPaymentStatus, Value: model.PaymentUnpaid, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{ArgName: "expired_before", Field: model.FieldExpiryDeadline, Value: now, Operator: gDto.FilterOperatorLess, Table: model.TableName},
		},
	}
}

// GuardFilter selects the booking only while guard still holds.
func GuardFilter(id string, guard model.Guard) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName},
	}

	if len(guard.Statuses) > 0 {
		filters = append(filters, gDto.Filter{ArgName: "guard_status", Field: model.FieldStatus, Value: guard.Statuses, Operator: gDto.FilterOperatorIn, Table: model.TableName})
	}

	if len(guard.PaymentStatuses) > 0 {
		filters = append(filters, gDto.Filter{ArgName: "guard_payment_status", Field: model.FieldPaymentStatus, Value: guard.PaymentStatuses, Operator: gDto.FilterOperatorIn, Table: model.TableName})
	}

	if guard.DepositAmount != nil {
		filters = append(filters, gDto.Filter{ArgName: "guard_deposit_amount", Field: model.FieldDepositAmount, Value: *guard.DepositAmount, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if guard.RefundInfoUnset {
		filters = append(filters, gDto.Filter{Field: model.FieldRefundInfo, Operator: gDto.FilterIsNull, Table: model.TableName})
	}

	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}
}
