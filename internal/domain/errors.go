package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing career record.
	ErrNotFound = errors.New("not found")
	// ErrDataAccess signals an unreadable or unparsable source dataset.
	ErrDataAccess = errors.New("data access error")
	// ErrInvalidSchema signals a dataset or request that does not match the expected fields.
	ErrInvalidSchema = errors.New("invalid schema")
	// ErrUnknownField signals a filter on a column the dataset does not have.
	ErrUnknownField = fmt.Errorf("unknown field: %w", ErrInvalidSchema)
	// ErrInvalidQuery signals a malformed search request.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrPredictorDisabled signals that role prediction is not configured.
	ErrPredictorDisabled = errors.New("predictor disabled")
	// ErrPredictorProviderError signals an embedding provider failure.
	ErrPredictorProviderError = errors.New("predictor provider error")
)

// UnknownFieldError reports the offending field name and wraps ErrUnknownField.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownField.Error(), e.Field)
}

func (e *UnknownFieldError) Unwrap() error { return ErrUnknownField }

// NewUnknownField creates an unknown field error.
func NewUnknownField(field string) error {
	return &UnknownFieldError{Field: field}
}
