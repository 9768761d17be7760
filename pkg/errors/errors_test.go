package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	plain := New(CodeConflict, "bus already booked", http.StatusConflict)
	if got := plain.Error(); got != "CONFLICT: bus already booked" {
		t.Errorf("Error() = %q", got)
	}

	wrapped := Wrap(errors.New("socket closed"), CodeInternal, "failed to save booking", http.StatusInternalServerError)
	want := "INTERNAL_ERROR: failed to save booking (caused by: socket closed)"
	if got := wrapped.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Internal("boom", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestAppError_StatusCodeDefaults(t *testing.T) {
	err := &AppError{Code: "X", Message: "no status"}
	if err.StatusCode() != http.StatusInternalServerError {
		t.Errorf("StatusCode() = %d, want 500", err.StatusCode())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"not found with id", NotFoundWithID("Booking", "abc"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("bad", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("bad json"), CodeInvalidInput, http.StatusBadRequest},
		{"unauthorized", Unauthorized("wrong pin"), CodeUnauthorized, http.StatusUnauthorized},
		{"conflict", Conflict("taken"), CodeConflict, http.StatusConflict},
		{"too many requests", TooManyRequests("slow down"), CodeTooManyRequests, http.StatusTooManyRequests},
		{"internal", Internal("oops", nil), CodeInternal, http.StatusInternalServerError},
		{"timeout", Timeout("late"), CodeTimeout, http.StatusGatewayTimeout},
		{"payload too large", PayloadTooLarge(), CodePayloadTooLarge, http.StatusRequestEntityTooLarge},
		{"unsupported media type", UnsupportedMediaType("application/json"), CodeUnsupportedMediaType, http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.code)
			}
			if tt.err.StatusCode() != tt.status {
				t.Errorf("StatusCode() = %d, want %d", tt.err.StatusCode(), tt.status)
			}
		})
	}
}

func TestNotFoundWithID_Details(t *testing.T) {
	err := NotFoundWithID("Booking", "abc")
	if err.Message != "Booking not found" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Details["id"] != "abc" || err.Details["resource"] != "Booking" {
		t.Errorf("Details = %v", err.Details)
	}
}

func TestAsAppError(t *testing.T) {
	conflict := Conflict("taken")
	wrapped := fmt.Errorf("create: %w", conflict)

	if !IsAppError(wrapped) {
		t.Error("expected wrapped AppError to be detected")
	}
	if got := AsAppError(wrapped); got != conflict {
		t.Errorf("AsAppError returned %v, want the original conflict", got)
	}

	plain := errors.New("plain")
	if IsAppError(plain) {
		t.Error("plain error reported as AppError")
	}
	got := AsAppError(plain)
	if got.Code != CodeInternal || !errors.Is(got, plain) {
		t.Errorf("AsAppError(plain) = %v", got)
	}
}

func TestDateConflict(t *testing.T) {
	cause := errors.New("dates taken")
	err := DateConflict(cause, "Vettaiyan", []string{"2024-06-12", "2024-06-13"}, []string{"b1"})

	if err.StatusCode() != http.StatusConflict || err.Code != CodeConflict {
		t.Errorf("got %s / %d", err.Code, err.StatusCode())
	}
	if err.Message != "Vettaiyan is already booked on 2024-06-12, 2024-06-13" {
		t.Errorf("Message = %q", err.Message)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not preserved")
	}
	if dates, ok := err.Details["dates"].([]string); !ok || len(dates) != 2 {
		t.Errorf("details.dates = %v", err.Details["dates"])
	}
}
