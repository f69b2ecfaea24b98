package failure_test

import (
	"errors"
	"fmt"
	"hotel/shared/failure"
	"net/http"
	"testing"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "room is not available",
	}

	if f.Error() != "room is not available" {
		t.Errorf("expected error message to be 'room is not available', got %s", f.Error())
	}
}

func TestPredefinedFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
		message string
	}{
		{
			name:    "EmptyUpdateRequest",
			failure: failure.EmptyUpdateRequest,
			code:    http.StatusBadRequest,
			message: "update request cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.failure.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, tt.failure.Code)
			}
			if tt.failure.Message != tt.message {
				t.Errorf("expected message to be %s, got %s", tt.message, tt.failure.Message)
			}
			if tt.failure.Kind != failure.KindInvalidInput {
				t.Errorf("expected kind to be %s, got %s", failure.KindInvalidInput, tt.failure.Kind)
			}
		})
	}
}

func TestBadRequest(t *testing.T) {
	if failure.BadRequest(nil) != nil {
		t.Error("expected nil for nil input")
	}

	err := failure.BadRequest(errors.New("validation failed"))

	var f *failure.Failure
	if !errors.As(err, &f) {
		t.Fatalf("expected *failure.Failure, got %T", err)
	}

	if f.Code != http.StatusBadRequest || f.Kind != failure.KindInvalidInput || f.Message != "validation failed" {
		t.Errorf("unexpected failure %+v", f)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		kind    failure.Kind
		message string
	}{
		{
			name:    "bad request from string",
			err:     failure.BadRequestFromString("checkOut must be after checkIn"),
			code:    http.StatusBadRequest,
			kind:    failure.KindInvalidInput,
			message: "checkOut must be after checkIn",
		},
		{
			name:    "not found",
			err:     failure.NotFound("guest not found"),
			code:    http.StatusNotFound,
			kind:    failure.KindNotFound,
			message: "guest not found",
		},
		{
			name:    "conflict is reported as bad request",
			err:     failure.Conflict("room is already booked for the selected dates"),
			code:    http.StatusBadRequest,
			kind:    failure.KindConflict,
			message: "room is already booked for the selected dates",
		},
		{
			name:    "internal",
			err:     failure.InternalError(errors.New("connection reset")),
			code:    http.StatusInternalServerError,
			kind:    failure.KindInternal,
			message: "connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failure.GetCode(tt.err); got != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, got)
			}

			if got := failure.GetKind(tt.err); got != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, got)
			}

			if tt.err.Error() != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, tt.err.Error())
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("creating booking: %w", failure.NotFound("room not found")),
			expected: http.StatusNotFound,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.GetCode(tt.input)
			if result != tt.expected {
				t.Errorf("expected code to be %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestGetKind(t *testing.T) {
	if failure.GetKind(errors.New("boom")) != failure.KindInternal {
		t.Error("expected plain errors to be internal")
	}

	if failure.GetKind(&failure.Failure{Code: http.StatusBadRequest}) != failure.KindInternal {
		t.Error("expected a failure without kind to be internal")
	}

	sentinel := failure.Conflict("duplicate")
	wrapped := fmt.Errorf("insert: %w", sentinel)

	if !errors.Is(wrapped, sentinel) {
		t.Error("expected wrapped sentinel to match with errors.Is")
	}

	if failure.GetKind(wrapped) != failure.KindConflict {
		t.Errorf("expected conflict kind, got %s", failure.GetKind(wrapped))
	}
}
