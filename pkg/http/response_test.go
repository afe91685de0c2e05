package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "evently/pkg/errors"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	return body
}

func TestWriteErrorMapsAppErrors(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectStatus int
		expectMsg    string
	}{
		{"not found", apperrors.NotFound("Event"), http.StatusNotFound, "Event not found"},
		{"invalid input", apperrors.InvalidInput("Missing or invalid fields"), http.StatusBadRequest, "Missing or invalid fields"},
		{"unauthorized", apperrors.Unauthorized("Invalid credentials"), http.StatusUnauthorized, "Invalid credentials"},
		{"conflict", apperrors.Conflict("You have already booked this event"), http.StatusConflict, "You have already booked this event"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			if rec.Code != tt.expectStatus {
				t.Errorf("expected status %d, got %d", tt.expectStatus, rec.Code)
			}
			if got := decodeError(t, rec).Error; got != tt.expectMsg {
				t.Errorf("expected message %q, got %q", tt.expectMsg, got)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected JSON content type, got %q", ct)
			}
		})
	}
}

func TestWriteErrorHidesInternalDetail(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"wrapped internal", apperrors.Internal("Failed to create booking", errors.New("write concern timeout"))},
		{"plain error", errors.New("mongo: no documents in result")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			if rec.Code != http.StatusInternalServerError {
				t.Errorf("expected 500, got %d", rec.Code)
			}
			if got := decodeError(t, rec).Error; got != "Internal server error" {
				t.Errorf("expected generic message, got %q", got)
			}
		})
	}
}

func TestWriteErrorIncludesDetails(t *testing.T) {
	err := apperrors.InvalidInput("Missing or invalid fields").
		WithDetails(map[string]any{"title": "title is required"})

	rec := httptest.NewRecorder()
	WriteError(rec, err)

	body := decodeError(t, rec)
	if body.Details["title"] != "title is required" {
		t.Errorf("expected field detail, got %+v", body.Details)
	}
}

func TestWriteMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteMessage(rec, "Event deleted successfully")

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var body MessageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Message != "Event deleted successfully" {
		t.Errorf("unexpected message: %q", body.Message)
	}
}
