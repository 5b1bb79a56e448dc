package dto

import (
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/ledger/model"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/timezone"
	"time"
)

type TransactionResponse struct {
	ID          string `json:"id"`
	BookingID   string `json:"booking_id"`
	OrderCode   string `json:"order_code"`
	Type        string `json:"type"`
	Method      string `json:"method"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	CreatedBy   string `json:"created_by"`
	CreatedAt   string `json:"created_at"`
}

func (r *TransactionResponse) FromModel(m model.Transaction) {
	r.ID = m.ID
	r.BookingID = m.BookingID
	r.OrderCode = bookingModel.OrderCodeOf(m.BookingID)
	r.Type = string(m.Type)
	r.Method = string(m.Method)
	r.Amount = m.Amount
	r.Description = m.Description
	r.CreatedBy = m.CreatedBy
	r.CreatedAt = timezone.Format(m.CreatedAt, constant.DateFormat)
}

type GetTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetTransactionsResponse) FromModels(models []model.Transaction, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Transactions = make([]TransactionResponse, len(models))
	for i, mod := range models {
		r.Transactions[i].FromModel(mod)
	}
}

// PeriodRequest is an inclusive range of calendar dates.
type PeriodRequest struct {
	From string `json:"from" validate:"required,dateonly"`
	To   string `json:"to"   validate:"required,dateonly"`
}

// Bounds returns the half-open instant range covering both dates in the hotel timezone.
func (p PeriodRequest) Bounds() (from, to time.Time, err error) {
	from, err = timezone.Parse(constant.DateOnlyFormat, p.From)
	if err != nil {
		return from, to, err //nolint:wrapcheck
	}

	to, err = timezone.Parse(constant.DateOnlyFormat, p.To)
	if err != nil {
		return from, to, err //nolint:wrapcheck
	}

	return from, to.AddDate(0, 0, 1), nil
}

type MethodTotalResponse struct {
	Method  string `json:"method"`
	Inflow  int64  `json:"inflow"`
	Outflow int64  `json:"outflow"`
}

type SummaryResponse struct {
	From     string                `json:"from"`
	To       string                `json:"to"`
	Inflow   int64                 `json:"inflow"`
	Outflow  int64                 `json:"outflow"`
	Net      int64                 `json:"net"`
	Count    int                   `json:"count"`
	ByMethod []MethodTotalResponse `json:"by_method"`
}

func (r *SummaryResponse) FromModel(s model.Summary) {
	r.From = timezone.Format(s.From, constant.DateFormat)
	r.To = timezone.Format(s.To, constant.DateFormat)
	r.Inflow = s.Inflow
	r.Outflow = s.Outflow
	r.Net = s.Net()
	r.Count = s.Count

	r.ByMethod = []MethodTotalResponse{}
	for _, method := range []model.Method{model.MethodBankTransfer, model.MethodCash} {
		total, ok := s.ByMethod[method]
		if !ok {
			continue
		}

		r.ByMethod = append(r.ByMethod, MethodTotalResponse{Method: string(method), Inflow: total.Inflow, Outflow: total.Outflow})
	}
}

type ExportResponse struct {
	URL   string `json:"url"`
	Count int    `json:"count"`
}
