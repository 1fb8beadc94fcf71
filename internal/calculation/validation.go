package calculation

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is wrapped by every ValidationError
var ErrInvalidInput = errors.New("invalid input")

// ErrUnknownReference is returned when a scenario names a catalog entry that does not exist
var ErrUnknownReference = errors.New("unknown catalog reference")

// ValidationError reports a calculator input outside its numeric domain
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s (%s): %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func requireNonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return &ValidationError{Field: field, Value: d.String(), Reason: "must not be negative"}
	}
	return nil
}

func requirePositive(field string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return &ValidationError{Field: field, Value: d.String(), Reason: "must be greater than zero"}
	}
	return nil
}

func requirePercent(field string, d decimal.Decimal) error {
	if d.IsNegative() || d.GreaterThan(hundred) {
		return &ValidationError{Field: field, Value: d.String(), Reason: "must be between 0 and 100"}
	}
	return nil
}

func requireFraction(field string, d decimal.Decimal) error {
	if d.IsNegative() || d.GreaterThan(one) {
		return &ValidationError{Field: field, Value: d.String(), Reason: "must be between 0 and 1"}
	}
	return nil
}

func requireMembers(n int) error {
	if n <= 0 {
		return &ValidationError{Field: "member count", Value: fmt.Sprintf("%d", n), Reason: "must be greater than zero"}
	}
	return nil
}

// firstError returns the first non-nil error
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
