package ledger_test

import (
	"context"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/internal/domains/ledger/mocks"
	"hotel/internal/domains/ledger/model/dto"
	"hotel/internal/handlers/ledger"
	gDto "hotel/shared/dto"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*mocks.MockLedgerService, chi.Router) {
	t.Helper()

	service := mocks.NewMockLedgerService(gomock.NewController(t))
	handler := ledger.New(service, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return service, router
}

func serve(router chi.Router, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestGetTransactions(t *testing.T) {
	service, router := setup(t)

	service.EXPECT().
		List(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTransactionsResponse, error) {
			_, args := filter.GetWhereClause()

			assert.Equal(t, "b-1", args["booking_id"])
			assert.Equal(t, "INFLOW", args["type"])
			assert.Equal(t, "CASH", args["method"])
			assert.Contains(t, args, "created_from")
			assert.Contains(t, args, "created_to")
			assert.Equal(t, 2, params.Page)

			return dto.GetTransactionsResponse{TotalData: 1, TotalPage: 1}, nil
		})

	rec := serve(router, httptest.NewRequest(http.MethodGet,
		"/ledger/transactions?booking_id=b-1&type=INFLOW&method=CASH&from=2025-06-01&to=2025-06-30&page=2", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetTransactions_InvalidFilter(t *testing.T) {
	_, router := setup(t)

	for _, query := range []string{"type=SIDEWAYS", "method=CHEQUE", "from=yesterday"} {
		rec := serve(router, httptest.NewRequest(http.MethodGet, "/ledger/transactions?"+query, nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

func TestGetSummary(t *testing.T) {
	service, router := setup(t)

	service.EXPECT().
		Summary(gomock.Any(), dto.PeriodRequest{From: "2025-06-01", To: "2025-06-30"}).
		Return(dto.SummaryResponse{Inflow: 900000, Net: 900000}, nil)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/ledger/summary?from=2025-06-01&to=2025-06-30", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"inflow":900000`)

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/ledger/summary?from=2025-06-01", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportReport(t *testing.T) {
	service, router := setup(t)

	service.EXPECT().
		ExportReport(gomock.Any(), dto.PeriodRequest{From: "2025-06-01", To: "2025-06-30"}).
		Return(dto.ExportResponse{URL: "https://cdn.example.com/reports/ledger/x.csv", Count: 4}, nil)

	body := strings.NewReader(`{"from":"2025-06-01","to":"2025-06-30"}`)
	rec := serve(router, httptest.NewRequest(http.MethodPost, "/ledger/export", body))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "x.csv")
}
