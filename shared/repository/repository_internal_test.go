package repository

import (
	"errors"
	"fmt"
	"hotel/shared/dto"
	"hotel/shared/failure"
	"net/http"
	"reflect"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

type audit struct {
	CreatedAt time.Time `db:"created_at"`
	CreatedBy string    `db:"created_by"`
}

type entry struct {
	ID      string `db:"id"`
	Amount  int64  `db:"amount"`
	Scratch string `db:"-"`
	Ignored string
	audit
}

func TestColumnsOf(t *testing.T) {
	assert.Equal(t, []string{"id", "amount", "created_at", "created_by"}, columnsOf(reflect.TypeOf(entry{})))
}

func TestInsertQuery(t *testing.T) {
	assert.Equal(t,
		"INSERT INTO transactions (id, amount) VALUES (:id, :amount)",
		insertQuery("transactions", []string{"id", "amount"}),
	)
}

func TestSelectClause(t *testing.T) {
	repo := Repository[entry]{table: "transactions", columns: columnsOf(reflect.TypeOf(entry{}))}

	assert.Equal(t, "transactions.id, transactions.amount, transactions.created_at, transactions.created_by", repo.selectClause())
	assert.Equal(t, "transactions.id, transactions.amount", repo.selectClause("amount", "id"))
}

func TestPageClause(t *testing.T) {
	args := map[string]any{}

	clause := pageClause(dto.QueryParams{Page: 3, Limit: 10, SortBy: "created_at", SortDir: "DESC"}, args)

	assert.Equal(t, "ORDER BY created_at DESC LIMIT :limit OFFSET :offset", clause)
	assert.Equal(t, map[string]any{"limit": 10, "offset": 20}, args)

	args = map[string]any{}

	assert.Equal(t, "LIMIT :limit", pageClause(dto.QueryParams{Limit: 1}, args))
	assert.Empty(t, pageClause(dto.QueryParams{}, map[string]any{}))
}

func TestSetClause(t *testing.T) {
	args := map[string]any{}

	clause := setClause(map[string]any{
		"status":       "confirmed",
		"payment_logs": Expr{SQL: "payment_logs || CAST(:payment_log AS jsonb)", Args: map[string]any{"payment_log": "{}"}},
	}, args)

	assert.Equal(t, "payment_logs = payment_logs || CAST(:payment_log AS jsonb), status = :status", clause)
	assert.Equal(t, map[string]any{"status": "confirmed", "payment_log": "{}"}, args)
}

func TestBuildWhereClause(t *testing.T) {
	where, args := BuildWhereClause(dto.FilterGroup{})

	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = BuildWhereClause(dto.FilterGroup{Filters: []any{dto.Filter{Field: "id", Value: "b-1", Operator: dto.FilterOperatorEq}}})

	assert.Equal(t, " WHERE (id = :id) ", where)
	assert.Equal(t, "b-1", args["id"])
}

func TestConstraintFailure(t *testing.T) {
	repo := &Repository[entry]{entity: "transaction"}

	unique := repo.constraintFailure(fmt.Errorf("exec: %w", &pq.Error{Code: "23505"}))
	assert.Equal(t, http.StatusConflict, failure.GetCode(unique))

	fk := repo.constraintFailure(&pq.Error{Code: "23503"})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(fk))

	assert.NoError(t, repo.constraintFailure(&pq.Error{Code: "42P01"}))
	assert.NoError(t, repo.constraintFailure(errors.New("connection reset")))
}
