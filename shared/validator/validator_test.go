package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"hotel/shared/failure"
	"hotel/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guestRequest struct {
	Name  string `json:"name"  validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
	Tier  string `json:"tier"  validate:"omitempty,oneof=standard gold"`
}

type stayRequest struct {
	CheckIn        string  `json:"checkIn"        validate:"required,stay_date"`
	CheckOut       *string `json:"checkOut"       validate:"omitnil,stay_date"`
	NumberOfGuests int     `json:"numberOfGuests" validate:"required,gte=1,lte=4"`
}

func assertBadRequest(t *testing.T, err error, msg string) {
	t.Helper()

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	if msg != "" {
		assert.EqualError(t, err, msg)
	}
}

func TestValidateStruct_Messages(t *testing.T) {
	badDate := "20/01/2024"

	tests := []struct {
		name string
		data stayRequest
		msg  string
	}{
		{
			name: "date only",
			data: stayRequest{CheckIn: "2024-01-15", NumberOfGuests: 1},
		},
		{
			name: "rfc3339 with optional check-out",
			data: stayRequest{CheckIn: "2024-01-15T14:00:00Z", CheckOut: ptr("2024-01-20"), NumberOfGuests: 2},
		},
		{
			name: "missing check-in uses the json name",
			data: stayRequest{NumberOfGuests: 1},
			msg:  "checkIn is required",
		},
		{
			name: "unparseable check-in",
			data: stayRequest{CheckIn: "15/01/2024", NumberOfGuests: 1},
			msg:  "checkIn must be a date in YYYY-MM-DD or RFC3339 format",
		},
		{
			name: "unparseable optional check-out",
			data: stayRequest{CheckIn: "2024-01-15", CheckOut: &badDate, NumberOfGuests: 1},
			msg:  "checkOut must be a date in YYYY-MM-DD or RFC3339 format",
		},
		{
			name: "too many guests",
			data: stayRequest{CheckIn: "2024-01-15", NumberOfGuests: 5},
			msg:  "numberOfGuests must be less than or equal to 4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.msg == "" {
				assert.NoError(t, err)

				return
			}

			assertBadRequest(t, err, tt.msg)
		})
	}
}

func TestValidateStruct_FirstFailureWins(t *testing.T) {
	err := validator.ValidateStruct(&guestRequest{Email: "not-an-email", Tier: "platinum"})

	assertBadRequest(t, err, "name is required")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		msg       string
		malformed bool
	}{
		{
			name: "valid body",
			body: `{"name":"Jane Smith","email":"jane@example.com","tier":"gold"}`,
		},
		{
			name: "rule failure",
			body: `{"name":"Jane Smith","email":"jane"}`,
			msg:  "email must be a valid email address",
		},
		{
			name: "oneof lists the choices",
			body: `{"name":"Jane Smith","email":"jane@example.com","tier":"platinum"}`,
			msg:  "tier must be one of standard gold",
		},
		{
			name:      "malformed json",
			body:      `{"name":`,
			malformed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req guestRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)

			switch {
			case tt.malformed:
				assertBadRequest(t, err, "")
				assert.Contains(t, err.Error(), "failed to decode request body")
			case tt.msg != "":
				assertBadRequest(t, err, tt.msg)
			default:
				require.NoError(t, err)
				assert.Equal(t, "Jane Smith", req.Name)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name  string
		field any
		tag   string
		msg   string
	}{
		{name: "uuid", field: "8a1f6c1e-3b3f-4a52-9df4-3f1f2f0c9b11", tag: "uuid"},
		{name: "not a uuid", field: "room-101", tag: "uuid", msg: " must be a valid UUID"},
		{name: "allowed image", field: "image/png", tag: "mimetypes=image/jpeg image/png"},
		{name: "media type parameters are ignored", field: "image/jpeg; charset=binary", tag: "mimetypes=image/jpeg image/png"},
		{name: "pdf is not an image", field: "application/pdf", tag: "mimetypes=image/jpeg image/png", msg: " must be one of image/jpeg image/png"},
		{name: "empty content type", field: "", tag: "mimetypes=image/jpeg", msg: " must be one of image/jpeg"},
		{name: "file within limit", field: int64(1 << 20), tag: "maxfilesize=1"},
		{name: "file over limit", field: int64(1<<20 + 1), tag: "maxfilesize=1", msg: " must not exceed 1 MB"},
		{name: "file size must be an integer", field: "1", tag: "maxfilesize=1", msg: " must not exceed 1 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.msg == "" {
				assert.NoError(t, err)

				return
			}

			assertBadRequest(t, err, tt.msg)
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
