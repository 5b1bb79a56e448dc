package ledger

import (
	"hotel/infras/otel"
	"hotel/internal/domains/ledger/model"
	"hotel/internal/domains/ledger/model/dto"
	"hotel/internal/domains/ledger/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"hotel/shared/validator"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Ledger
	otel    otel.Otel
}

func New(service service.Ledger, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/ledger", func(routerGroup chi.Router) {
		routerGroup.Get("/transactions", handler.GetTransactions)
		routerGroup.Get("/summary", handler.GetSummary)
		routerGroup.Post("/export", handler.ExportReport)
	})
}

// GetTransactions lists ledger entries.
// @Summary List ledger entries
// @Tags Ledger
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param booking_id query string false "Filter by booking"
// @Param type query string false "INFLOW or OUTFLOW"
// @Param method query string false "BANK_TRANSFER or CASH"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetTransactionsResponse]
// @Failure 400 {object} response.Error
// @Router /v1/ledger/transactions [get]
// @Security BearerAuth
func (handler *Handler) GetTransactions(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTransactions")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)
	queryParams.RestrictSortBy(model.FieldCreatedAt, model.FieldAmount)

	filter, err := transactionFilter(request)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	transactions, err := handler.service.List(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get transactions")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, transactions)
}

func transactionFilter(request *http.Request) (gDto.FilterGroup, error) {
	query := request.URL.Query()
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if bookingID := query.Get(model.FieldBookingID); bookingID != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{Field: model.FieldBookingID, Value: bookingID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if raw := query.Get(model.FieldType); raw != constant.Empty {
		kind, err := model.ParseType(raw)
		if err != nil {
			return group, failure.BadRequest(err) //nolint:wrapcheck
		}

		group.Filters = append(group.Filters, gDto.Filter{Field: model.FieldType, Value: string(kind), Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if raw := query.Get(model.FieldMethod); raw != constant.Empty {
		method, err := model.ParseMethod(raw)
		if err != nil {
			return group, failure.BadRequest(err) //nolint:wrapcheck
		}

		group.Filters = append(group.Filters, gDto.Filter{Field: model.FieldMethod, Value: string(method), Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if raw := query.Get(constant.RequestParamFrom); raw != constant.Empty {
		from, err := timezone.Parse(constant.DateOnlyFormat, raw)
		if err != nil {
			return group, failure.BadRequestFromString("from must be a date in YYYY-MM-DD format") //nolint:wrapcheck
		}

		group.Filters = append(group.Filters, gDto.Filter{ArgName: "created_from", Field: model.FieldCreatedAt, Value: from, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName})
	}

	if raw := query.Get(constant.RequestParamTo); raw != constant.Empty {
		to, err := timezone.Parse(constant.DateOnlyFormat, raw)
		if err != nil {
			return group, failure.BadRequestFromString("to must be a date in YYYY-MM-DD format") //nolint:wrapcheck
		}

		group.Filters = append(group.Filters, gDto.Filter{ArgName: "created_to", Field: model.FieldCreatedAt, Value: to.AddDate(0, 0, 1), Operator: gDto.FilterOperatorLess, Table: model.TableName})
	}

	return group, nil
}

// GetSummary totals the ledger over a period.
// @Summary Ledger summary
// @Tags Ledger
// @Produce json
// @Param from query string true "From date (YYYY-MM-DD)"
// @Param to query string true "To date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.SummaryResponse]
// @Failure 400 {object} response.Error
// @Router /v1/ledger/summary [get]
// @Security BearerAuth
func (handler *Handler) GetSummary(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSummary")
	defer scope.End()

	req := dto.PeriodRequest{
		From: request.URL.Query().Get(constant.RequestParamFrom),
		To:   request.URL.Query().Get(constant.RequestParamTo),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	summary, err := handler.service.Summary(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to summarize ledger")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, summary)
}

// ExportReport writes the period's entries to a CSV file in object storage.
// @Summary Export ledger report
// @Tags Ledger
// @Accept json
// @Produce json
// @Param request body dto.PeriodRequest true "Period"
// @Success 200 {object} response.Data[dto.ExportResponse]
// @Failure 400 {object} response.Error
// @Router /v1/ledger/export [post]
// @Security BearerAuth
func (handler *Handler) ExportReport(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportReport")
	defer scope.End()

	req := dto.PeriodRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	report, err := handler.service.ExportReport(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export ledger report")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Ledger report exported by user " + user)

	response.WithJSON(writer, http.StatusOK, report)
}
