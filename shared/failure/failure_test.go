package failure_test

import (
	"errors"
	"fmt"
	"hotel/shared/failure"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{Code: http.StatusBadRequest, Message: "check-out must be after check-in"}

	assert.Equal(t, "check-out must be after check-in", f.Error())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("bad")), code: http.StatusBadRequest, msg: "bad"},
		{name: "bad request from string", err: failure.BadRequestFromString("invalid date range"), code: http.StatusBadRequest, msg: "invalid date range"},
		{name: "unauthorized", err: failure.Unauthorized("no token"), code: http.StatusUnauthorized, msg: "no token"},
		{name: "internal", err: failure.InternalError(errors.New("boom")), code: http.StatusInternalServerError, msg: "boom"},
		{name: "not found", err: failure.NotFound("booking not found"), code: http.StatusNotFound, msg: "booking not found"},
		{name: "conflict", err: failure.Conflict("room is already booked"), code: http.StatusConflict, msg: "room is already booked"},
		{name: "forbidden", err: failure.Forbidden("not yours"), code: http.StatusForbidden, msg: "not yours"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}
}

func TestNilInputs(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode(t *testing.T) {
	wrapped := fmt.Errorf("create booking: %w", failure.Conflict("room is already booked"))

	assert.Equal(t, http.StatusConflict, failure.GetCode(wrapped))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
}

func TestHasCode(t *testing.T) {
	wrapped := fmt.Errorf("refund: %w", failure.NotFound("booking not found"))

	assert.True(t, failure.HasCode(wrapped, http.StatusNotFound))
	assert.False(t, failure.HasCode(wrapped, http.StatusConflict))
	assert.False(t, failure.HasCode(errors.New("plain"), http.StatusNotFound))
}

func TestNew(t *testing.T) {
	err := failure.New(http.StatusServiceUnavailable, "ledger export unavailable")

	assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))
	assert.Equal(t, "ledger export unavailable", err.Error())
	assert.True(t, failure.HasCode(failure.ForbiddenError, http.StatusForbidden))
}
