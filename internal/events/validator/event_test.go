package validator

import (
	"errors"
	"io"
	"testing"
	"time"

	"evently/pkg/logger"
	"evently/pkg/model"
)

func newTestValidator() *EventValidator {
	return NewEventValidator(logger.New(logger.Config{
		Level:   "error",
		Format:  logger.FormatJSON,
		Output:  io.Discard,
		Service: "test",
	}))
}

func TestValidateAcceptsCompleteInput(t *testing.T) {
	v := newTestValidator()

	err := v.Validate(&model.EventInput{
		Title:       "GopherCon",
		Description: "A conference",
		Date:        time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
		Location:    "Berlin",
	})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateRejectsZeroDate(t *testing.T) {
	v := newTestValidator()

	err := v.Validate(&model.EventInput{
		Title:       "GopherCon",
		Description: "A conference",
		Location:    "Berlin",
	})

	var validationErrs ValidationErrors
	if !errors.As(err, &validationErrs) {
		t.Fatalf("expected ValidationErrors, got %T: %v", err, err)
	}
	if len(validationErrs) != 1 || validationErrs[0].Field != "Date" {
		t.Errorf("expected a Date error, got %v", validationErrs)
	}
}

func TestValidateReportsEveryMissingField(t *testing.T) {
	v := newTestValidator()

	err := v.Validate(&model.EventInput{Date: time.Now()})

	var validationErrs ValidationErrors
	if !errors.As(err, &validationErrs) {
		t.Fatalf("expected ValidationErrors, got %T: %v", err, err)
	}

	fields := make(map[string]bool, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields[fieldErr.Field] = true
	}
	for _, want := range []string{"Title", "Description", "Location"} {
		if !fields[want] {
			t.Errorf("expected error for field %s, got %v", want, validationErrs)
		}
	}
}
