package model

import (
	"fmt"
	ledgerModel "hotel/internal/domains/ledger/model"
	"hotel/shared/constant"
	"hotel/shared/model"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Guard is the state a booking must still be in for a Transition to apply.
// Empty fields are not checked.
type Guard struct {
	Statuses        []Status
	PaymentStatuses []PaymentStatus
	DepositAmount   *int64
	RefundInfoUnset bool
}

func (g Guard) Holds(b Booking) bool {
	if len(g.Statuses) > 0 && !slices.Contains(g.Statuses, b.Status) {
		return false
	}

	if len(g.PaymentStatuses) > 0 && !slices.Contains(g.PaymentStatuses, b.PaymentStatus) {
		return false
	}

	if g.DepositAmount != nil && *g.DepositAmount != b.DepositAmount {
		return false
	}

	if g.RefundInfoUnset && b.RefundInfo != nil {
		return false
	}

	return true
}

// Transition is a guarded change to one booking. The log entry and the optional
// ledger entry are written together with the field changes or not at all.
type Transition struct {
	BookingID       string
	Guard           Guard
	Status          *Status
	PaymentStatus   *PaymentStatus
	DepositAmount   *int64
	RemainingAmount *int64
	ClearExpiry     bool
	RefundInfo      *RefundInfo
	Log             PaymentLog
	Entry           *ledgerModel.Transaction
	At              time.Time
}

// Changes lists the column updates, excluding the appended log.
func (t Transition) Changes() map[string]any {
	changes := model.Modified(t.Log.Actor, t.At)

	if t.Status != nil {
		changes[FieldStatus] = *t.Status
	}

	if t.PaymentStatus != nil {
		changes[FieldPaymentStatus] = *t.PaymentStatus
	}

	if t.DepositAmount != nil {
		changes[FieldDepositAmount] = *t.DepositAmount
	}

	if t.RemainingAmount != nil {
		changes[FieldRemainingAmount] = *t.RemainingAmount
	}

	if t.ClearExpiry {
		changes[FieldExpiryDeadline] = nil
	}

	if t.RefundInfo != nil {
		changes[FieldRefundInfo] = *t.RefundInfo
	}

	return changes
}

// Apply performs the transition on an in-memory booking.
func (t Transition) Apply(b *Booking) {
	if t.Status != nil {
		b.Status = *t.Status
	}

	if t.PaymentStatus != nil {
		b.PaymentStatus = *t.PaymentStatus
	}

	if t.DepositAmount != nil {
		b.DepositAmount = *t.DepositAmount
	}

	if t.RemainingAmount != nil {
		b.RemainingAmount = *t.RemainingAmount
	}

	if t.ClearExpiry {
		b.ExpiryDeadline = nil
	}

	if t.RefundInfo != nil {
		info := *t.RefundInfo
		b.RefundInfo = &info
	}

	b.PaymentLogs = append(b.PaymentLogs, t.Log)
	b.Touch(t.Log.Actor, t.At)
}

func (b Booking) transition(actor, action, note string, now time.Time) Transition {
	return Transition{
		BookingID: b.ID,
		Log: PaymentLog{
			Action:            action,
			Actor:             actor,
			Note:              note,
			FromStatus:        b.Status,
			ToStatus:          b.Status,
			FromPaymentStatus: b.PaymentStatus,
			ToPaymentStatus:   b.PaymentStatus,
			At:                now,
		},
		At: now,
	}
}

func (t *Transition) setStatus(s Status) {
	t.Status = &s
	t.Log.ToStatus = s
}

func (t *Transition) setPaymentStatus(p PaymentStatus) {
	t.PaymentStatus = &p
	t.Log.ToPaymentStatus = p
}

// settle records that paid in total has been received, splitting it into deposit and remainder.
func (t *Transition) settle(b Booking, paid int64) {
	deposit := min(paid, b.TotalPrice)
	remaining := b.TotalPrice - deposit

	if remaining == 0 {
		t.setPaymentStatus(PaymentPaid)
	} else {
		t.setPaymentStatus(PaymentDeposited)
	}

	t.DepositAmount = &deposit
	t.RemainingAmount = &remaining

	if b.Status == StatusPending {
		t.setStatus(StatusConfirmed)
	}

	t.ClearExpiry = true
}

func (t *Transition) record(b Booking, typ ledgerModel.Type, method ledgerModel.Method, amount int64, description string) {
	t.Log.Amount = amount
	t.Log.Method = string(method)

	if amount <= 0 {
		return
	}

	t.Entry = &ledgerModel.Transaction{
		ID:          uuid.NewString(),
		BookingID:   b.ID,
		Type:        typ,
		Method:      method,
		Amount:      amount,
		Description: fmt.Sprintf("%s %s", description, b.OrderCode()),
		CreatedBy:   t.Log.Actor,
		CreatedAt:   t.At,
	}
}

// ConfirmTransfer credits a bank transfer reported by the payment gateway.
// credited is the amount counted against the booking; received is what actually arrived.
func (b Booking) ConfirmTransfer(credited, received int64, now time.Time) (Transition, error) {
	if b.PaymentStatus.HasPayment() {
		return Transition{}, ErrAlreadySettled
	}

	if b.Status != StatusPending || b.PaymentStatus != PaymentUnpaid {
		return Transition{}, fmt.Errorf("%w: transfer for %s booking", ErrInvalidTransition, b.Status)
	}

	t := b.transition(constant.ActorGateway, ActionDepositReceived, creditNote(credited, received), now)
	t.Guard = Guard{
		Statuses:        []Status{StatusPending},
		PaymentStatuses: []PaymentStatus{PaymentUnpaid},
	}
	t.settle(b, credited)
	t.record(b, ledgerModel.TypeInflow, ledgerModel.MethodBankTransfer, received, "Bank transfer for booking")

	return t, nil
}

// creditNote records the gap when a transfer inside the tolerance, or the
// sandbox amount, is credited as more than the ledger received.
func creditNote(credited, received int64) string {
	if credited == received {
		return ""
	}

	return fmt.Sprintf("credited %d against %d received, shortfall %d", credited, received, credited-received)
}

// ReceiveCash adds a cash payment to what has been received so far.
func (b Booking) ReceiveCash(amount int64, actor, note string, now time.Time) (Transition, error) {
	if amount <= 0 {
		return Transition{}, ErrInvalidAmount
	}

	if b.PaymentStatus == PaymentPaid {
		return Transition{}, ErrAlreadySettled
	}

	if !b.IsLive() || !b.PaymentStatus.CanBecome(PaymentDeposited) {
		return Transition{}, fmt.Errorf("%w: cash for %s/%s booking", ErrInvalidTransition, b.Status, b.PaymentStatus)
	}

	deposit := b.DepositAmount

	t := b.transition(actor, ActionCashReceived, note, now)
	t.Guard = Guard{
		Statuses:        LiveStatuses,
		PaymentStatuses: []PaymentStatus{b.PaymentStatus},
		DepositAmount:   &deposit,
	}
	t.settle(b, b.PaidAmount()+amount)
	t.record(b, ledgerModel.TypeInflow, ledgerModel.MethodCash, amount, "Cash payment for booking")

	return t, nil
}

// ConfirmFullPayment marks the outstanding balance as received through method.
func (b Booking) ConfirmFullPayment(method ledgerModel.Method, actor, note string, now time.Time) (Transition, error) {
	if b.PaymentStatus == PaymentPaid && b.RemainingAmount == 0 {
		return Transition{}, ErrAlreadySettled
	}

	if !b.IsLive() || !b.PaymentStatus.CanBecome(PaymentPaid) {
		return Transition{}, fmt.Errorf("%w: full payment for %s/%s booking", ErrInvalidTransition, b.Status, b.PaymentStatus)
	}

	deposit := b.DepositAmount

	t := b.transition(actor, ActionFullPaymentConfirmed, note, now)
	t.Guard = Guard{
		Statuses:        LiveStatuses,
		PaymentStatuses: []PaymentStatus{b.PaymentStatus},
		DepositAmount:   &deposit,
	}
	t.settle(b, b.TotalPrice)
	t.record(b, ledgerModel.TypeInflow, method, b.TotalPrice-b.PaidAmount(), "Final payment for booking")

	return t, nil
}

// RequestRefund cancels a live booking and records where the refund should go.
// info.Amount must already hold the computed refund.
func (b Booking) RequestRefund(info RefundInfo, actor string, now time.Time) (Transition, error) {
	if !b.PaymentStatus.HasPayment() {
		return Transition{}, ErrNoPaymentToRefund
	}

	if b.RefundInfo != nil {
		return Transition{}, fmt.Errorf("%w: refund already requested", ErrInvalidTransition)
	}

	if b.Status == StatusCompleted {
		return Transition{}, fmt.Errorf("%w: refund for completed booking", ErrInvalidTransition)
	}

	info.RequestedBy = actor
	info.RequestedAt = now

	t := b.transition(actor, ActionRefundRequested, info.Reason, now)
	t.Guard = Guard{
		Statuses:        []Status{b.Status},
		PaymentStatuses: []PaymentStatus{b.PaymentStatus},
		RefundInfoUnset: true,
	}

	if b.Status.CanBecome(StatusCancelled) {
		t.setStatus(StatusCancelled)
	}

	t.setPaymentStatus(PaymentRefundPending)
	t.ClearExpiry = true
	t.RefundInfo = &info
	t.Log.Amount = info.Amount

	return t, nil
}

// ConfirmRefund records that staff paid the refund out. A zero refund writes no ledger entry.
func (b Booking) ConfirmRefund(actor, note string, now time.Time) (Transition, error) {
	if b.PaymentStatus != PaymentRefundPending {
		return Transition{}, ErrRefundNotPending
	}

	var amount int64
	if b.RefundInfo != nil {
		amount = b.RefundInfo.Amount
	}

	t := b.transition(actor, ActionRefundConfirmed, note, now)
	t.Guard = Guard{PaymentStatuses: []PaymentStatus{PaymentRefundPending}}
	t.setPaymentStatus(PaymentRefunded)
	t.record(b, ledgerModel.TypeOutflow, ledgerModel.MethodBankTransfer, amount, "Refund for booking")

	return t, nil
}

func (b Booking) Cancel(actor, reason string, now time.Time) (Transition, error) {
	return b.moveTo(StatusCancelled, ActionCancelled, actor, reason, now)
}

func (b Booking) MarkNoShow(actor, note string, now time.Time) (Transition, error) {
	return b.moveTo(StatusNoShow, ActionNoShow, actor, note, now)
}

func (b Booking) Complete(actor, note string, now time.Time) (Transition, error) {
	return b.moveTo(StatusCompleted, ActionCompleted, actor, note, now)
}

// AutoCancel releases an unpaid booking whose payment window has passed.
func (b Booking) AutoCancel(now time.Time) (Transition, error) {
	if b.Status != StatusPending || b.PaymentStatus != PaymentUnpaid {
		return Transition{}, fmt.Errorf("%w: auto cancel for %s/%s booking", ErrInvalidTransition, b.Status, b.PaymentStatus)
	}

	if b.ExpiryDeadline == nil || !b.ExpiryDeadline.Before(now) {
		return Transition{}, fmt.Errorf("%w: payment window still open", ErrInvalidTransition)
	}

	t := b.transition(constant.ActorSystem, ActionAutoCancel, "payment window expired", now)
	t.Guard = Guard{
		Statuses:        []Status{StatusPending},
		PaymentStatuses: []PaymentStatus{PaymentUnpaid},
	}
	t.setStatus(StatusCancelled)
	t.ClearExpiry = true

	return t, nil
}

func (b Booking) moveTo(next Status, action, actor, note string, now time.Time) (Transition, error) {
	if !b.Status.CanBecome(next) {
		return Transition{}, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, b.Status, next)
	}

	t := b.transition(actor, action, note, now)
	t.Guard = Guard{Statuses: []Status{b.Status}}
	t.setStatus(next)
	t.ClearExpiry = true

	return t, nil
}
