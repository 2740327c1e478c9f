package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports a missing receipt record or download token.
	ErrNotFound = errors.New("receipt not found")

	// ErrMailDelivery wraps any failure while sending the receipt mail.
	// The record is marked mail_failed and the submission is terminal.
	ErrMailDelivery = errors.New("mail delivery failed")
)

// ValidationError reports a missing required submission field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func NewValidationError(field string) error {
	return &ValidationError{Field: field}
}

// IsValidationError reports whether err is a submission validation failure.
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
