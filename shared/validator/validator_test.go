package validator_test

import (
	"hotel/shared/failure"
	"hotel/shared/validator"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stayRequest struct {
	RoomID   string `json:"room_id"   validate:"required"`
	CheckIn  string `json:"check_in"  validate:"required,dateonly"`
	Email    string `json:"email"     validate:"omitempty,email"`
	Guests   int    `json:"guests"    validate:"gte=1,lte=10"`
	Method   string `json:"method"    validate:"omitempty,oneof=CASH BANK_TRANSFER"`
	Internal string `json:"internal"  validate:"empty"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		data    stayRequest
		wantMsg string
	}{
		{
			name: "valid",
			data: stayRequest{RoomID: "r1", CheckIn: "2025-01-02", Guests: 2, Method: "CASH"},
		},
		{
			name:    "missing required",
			data:    stayRequest{CheckIn: "2025-01-02", Guests: 2},
			wantMsg: "RoomID is required",
		},
		{
			name:    "bad date",
			data:    stayRequest{RoomID: "r1", CheckIn: "02/01/2025", Guests: 2},
			wantMsg: "CheckIn must be a date in YYYY-MM-DD format",
		},
		{
			name:    "bad email",
			data:    stayRequest{RoomID: "r1", CheckIn: "2025-01-02", Guests: 2, Email: "nope"},
			wantMsg: "Email must be a valid email address",
		},
		{
			name:    "too few guests",
			data:    stayRequest{RoomID: "r1", CheckIn: "2025-01-02", Guests: 0},
			wantMsg: "Guests must be greater than or equal to 1",
		},
		{
			name:    "bad enum",
			data:    stayRequest{RoomID: "r1", CheckIn: "2025-01-02", Guests: 1, Method: "cheque"},
			wantMsg: "Method must be one of CASH BANK_TRANSFER",
		},
		{
			name:    "field must stay empty",
			data:    stayRequest{RoomID: "r1", CheckIn: "2025-01-02", Guests: 1, Internal: "x"},
			wantMsg: "Internal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidate(t *testing.T) {
	req := stayRequest{}
	err := validator.Validate(strings.NewReader(`{"room_id":"r1","check_in":"2025-01-02","guests":3}`), &req)

	assert.NoError(t, err)
	assert.Equal(t, "r1", req.RoomID)
	assert.Equal(t, 3, req.Guests)

	err = validator.Validate(strings.NewReader(`{not json`), &req)

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("2025-12-31", "dateonly"))
	assert.Error(t, validator.ValidateVar("2025-13-01", "dateonly"))
	assert.Error(t, validator.ValidateVar(int64(0), "gt=0"))
}

func TestValidateStruct_ListsEveryField(t *testing.T) {
	type roomRequest struct {
		Name      string `validate:"max=3"`
		MaxPeople int    `validate:"min=2"`
	}

	err := validator.ValidateStruct(&roomRequest{Name: "Deluxe", MaxPeople: 1})

	assert.EqualError(t, err, "Name must be at most 3 characters; MaxPeople must be greater than or equal to 2")
}
