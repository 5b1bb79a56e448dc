package model

import (
	"fmt"
	"time"
)

const (
	TableName  = "transactions"
	EntityName = "transaction"

	FieldID          = "id"
	FieldBookingID   = "booking_id"
	FieldType        = "type"
	FieldMethod      = "method"
	FieldAmount      = "amount"
	FieldDescription = "description"
	FieldCreatedAt   = "created_at"
)

type Type string

const (
	TypeInflow  Type = "INFLOW"
	TypeOutflow Type = "OUTFLOW"
)

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeInflow, TypeOutflow:
		return Type(s), nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

type Method string

const (
	MethodBankTransfer Method = "BANK_TRANSFER"
	MethodCash         Method = "CASH"
)

func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodBankTransfer, MethodCash:
		return Method(s), nil
	default:
		return "", fmt.Errorf("unknown payment method %q", s)
	}
}

// Transaction is an immutable ledger entry. It is written once and never updated.
type Transaction struct {
	ID          string    `db:"id"`
	BookingID   string    `db:"booking_id"`
	Type        Type      `db:"type"`
	Method      Method    `db:"method"`
	Amount      int64     `db:"amount"`
	Description string    `db:"description"`
	CreatedBy   string    `db:"created_by"`
	CreatedAt   time.Time `db:"created_at"`
}

// Signed returns the amount as it affects the hotel's cash position.
func (t Transaction) Signed() int64 {
	if t.Type == TypeOutflow {
		return -t.Amount
	}

	return t.Amount
}

// Summary aggregates ledger entries over a period.
type Summary struct {
	From     time.Time
	To       time.Time
	Inflow   int64
	Outflow  int64
	ByMethod map[Method]MethodTotal
	Count    int
}

type MethodTotal struct {
	Inflow  int64
	Outflow int64
}

func (s Summary) Net() int64 {
	return s.Inflow - s.Outflow
}

// Summarize folds entries into a Summary. Entries outside [from, to) are skipped.
func Summarize(from, to time.Time, entries []Transaction) Summary {
	summary := Summary{
		From:     from,
		To:       to,
		ByMethod: map[Method]MethodTotal{},
	}

	for _, entry := range entries {
		if entry.CreatedAt.Before(from) || !entry.CreatedAt.Before(to) {
			continue
		}

		total := summary.ByMethod[entry.Method]

		switch entry.Type {
		case TypeInflow:
			summary.Inflow += entry.Amount
			total.Inflow += entry.Amount
		case TypeOutflow:
			summary.Outflow += entry.Amount
			total.Outflow += entry.Amount
		}

		summary.ByMethod[entry.Method] = total
		summary.Count++
	}

	return summary
}
