package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructorsMapToStatuses(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"not found", NotFound("Event"), CodeNotFound, http.StatusNotFound},
		{"invalid input", InvalidInput("bad"), CodeInvalidInput, http.StatusBadRequest},
		{"unauthorized", Unauthorized("nope"), CodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden("nope"), CodeForbidden, http.StatusForbidden},
		{"conflict", Conflict("dup"), CodeConflict, http.StatusConflict},
		{"internal", Internal("boom", nil), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, tt.err.Code)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, tt.err.StatusCode())
			}
		})
	}
}

func TestNotFoundWithIDCarriesDetails(t *testing.T) {
	err := NotFoundWithID("Event", "abc123")

	if err.Details["resource"] != "Event" {
		t.Errorf("expected resource detail Event, got %v", err.Details["resource"])
	}
	if err.Details["id"] != "abc123" {
		t.Errorf("expected id detail abc123, got %v", err.Details["id"])
	}
}

func TestInternalWrapsCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Internal("Failed to query", cause)

	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause to be reachable via errors.Is")
	}
}

func TestAsAppErrorWrapsUnknownErrors(t *testing.T) {
	plain := fmt.Errorf("something broke")
	appErr := AsAppError(plain)

	if appErr.Code != CodeInternal {
		t.Errorf("expected %s, got %s", CodeInternal, appErr.Code)
	}
	if appErr.StatusCode() != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", appErr.StatusCode())
	}
	if !errors.Is(appErr, plain) {
		t.Error("expected original error to be wrapped")
	}
}

func TestAsAppErrorPassesThroughAppErrors(t *testing.T) {
	original := Conflict("dup")
	if got := AsAppError(original); got != original {
		t.Error("expected the same AppError instance back")
	}
}
