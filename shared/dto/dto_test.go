package dto_test

import (
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/model"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "creator",
		ModifiedBy: "modifier",
	})

	assert.NotEmpty(t, metadata.CreatedAt)
	assert.NotEmpty(t, metadata.ModifiedAt)
	assert.Equal(t, "creator", metadata.CreatedBy)
	assert.Equal(t, "modifier", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name: "with all valid parameters",
			queryParams: map[string]string{
				"page":     "2",
				"limit":    "20",
				"sort_by":  "check_in",
				"sort_dir": "asc",
			},
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "check_in", SortDir: "ASC"},
		},
		{
			name:           "defaults applied",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:        "invalid values ignored",
			queryParams: map[string]string{"page": "-1", "limit": "abc", "sort_dir": "sideways"},
			expected:    dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			for key, value := range tt.queryParams {
				values.Set(key, value)
			}

			req := &http.Request{URL: &url.URL{RawQuery: values.Encode()}}

			queryParams := dto.QueryParams{}
			queryParams.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, queryParams)
		})
	}
}

func TestQueryParams_RestrictSortBy(t *testing.T) {
	q := dto.QueryParams{SortBy: "1; DROP TABLE room_bookings"}
	q.RestrictSortBy("check_in", "created_at")

	assert.Equal(t, constant.DefaultValueSortBy, q.SortBy)
	assert.Equal(t, constant.DefaultValueSortDir, q.SortDir)

	q = dto.QueryParams{SortBy: "check_in", SortDir: dto.SortDirAsc}
	q.RestrictSortBy("check_in")

	assert.Equal(t, "check_in", q.SortBy)
	assert.Equal(t, dto.SortDirAsc, q.SortDir)
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "eq with table",
			filter:    dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorEq, Table: "room_bookings"},
			wantWhere: "room_bookings.status = :status",
			wantArgs:  map[string]any{"status": "pending"},
		},
		{
			name:      "in with slice",
			filter:    dto.Filter{Field: "status", Value: []string{"pending", "confirmed"}, Operator: dto.FilterOperatorIn},
			wantWhere: "status IN (:status_0, :status_1)",
			wantArgs:  map[string]any{"status_0": "pending", "status_1": "confirmed"},
		},
		{
			name:      "less with arg name",
			filter:    dto.Filter{ArgName: "requested_out", Field: "check_in", Value: 5, Operator: dto.FilterOperatorLess},
			wantWhere: "check_in < :requested_out",
			wantArgs:  map[string]any{"requested_out": 5},
		},
		{
			name:      "greater",
			filter:    dto.Filter{Field: "check_out", Value: 3, Operator: dto.FilterOperatorGreater},
			wantWhere: "check_out > :check_out",
			wantArgs:  map[string]any{"check_out": 3},
		},
		{
			name:      "suffix",
			filter:    dto.Filter{Field: "id", Value: "ABCD1234", Operator: dto.FilterOperatorSuffix},
			wantWhere: "LOWER(id) LIKE LOWER(:id)",
			wantArgs:  map[string]any{"id": "%ABCD1234"},
		},
		{
			name:      "in with empty slice",
			filter:    dto.Filter{Field: "status", Value: []string{}, Operator: dto.FilterOperatorIn},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "like",
			filter:    dto.Filter{Field: "name", Value: "deluxe", Operator: dto.FilterOperatorLike},
			wantWhere: "LOWER(name) LIKE LOWER(:name)",
			wantArgs:  map[string]any{"name": "%deluxe%"},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "name", Value: "x", Operator: "regex"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
		{
			name:      "is null",
			filter:    dto.Filter{Field: "refund_info", Operator: dto.FilterIsNull},
			wantWhere: "refund_info IS NULL",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "room_id", Value: "r1", Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{ArgName: "s1", Field: "status", Value: "pending", Operator: dto.FilterOperatorEq},
					dto.Filter{ArgName: "s2", Field: "status", Value: "confirmed", Operator: dto.FilterOperatorEq},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(room_id = :room_id AND (status = :s1 OR status = :s2))", where)
	assert.Len(t, args, 3)

	implicitAnd := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "a", Value: 1, Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "b", Value: 2, Operator: "regex"},
			dto.Filter{Field: "c", Value: 3, Operator: dto.FilterOperatorEq},
		},
	}
	where, _ = implicitAnd.GetWhereClause()

	assert.Equal(t, "(a = :a AND c = :c)", where)

	empty := dto.FilterGroup{}
	where, args = empty.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestQueryParams_LimitCapAndOffset(t *testing.T) {
	req := &http.Request{URL: &url.URL{RawQuery: "page=4&limit=5000"}}

	q := dto.QueryParams{}
	q.FromRequest(req, true)

	assert.Equal(t, constant.MaxValueLimit, q.Limit)
	assert.Equal(t, 300, q.Offset())
	assert.Zero(t, dto.QueryParams{Page: 1, Limit: 10}.Offset())
}
