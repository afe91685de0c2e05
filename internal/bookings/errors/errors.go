package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrDuplicate surfaces the unique (user_id, event_id) index violation.
	ErrDuplicate = errors.New("booking already exists for this user and event")
)
