package nutrition

import (
	"errors"
	"fmt"
)

var (
	// ErrNonPositiveAmount reports a serving amount that is zero or negative.
	ErrNonPositiveAmount = errors.New("nutrition: amount must be positive")
	// ErrNegativeNutrient reports a nutrient value below zero.
	ErrNegativeNutrient = errors.New("nutrition: nutrient values must not be negative")
	// ErrOutOfRange reports a total that no longer fits a float64.
	ErrOutOfRange = errors.New("nutrition: value out of range")
	// ErrNothingToLog reports an aggregation request without any items.
	ErrNothingToLog = errors.New("nutrition: nothing to log")
)

// DomainError is returned when an input violates a numeric precondition.
type DomainError struct {
	Op  string
	Msg string
	Err error
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("nutrition: %s: %s", e.Op, e.Msg)
}

func (e *DomainError) Unwrap() error { return e.Err }

// UsageError is returned when an operation is invoked in a state where it
// cannot produce a result.
type UsageError struct {
	Op  string
	Msg string
	Err error
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("nutrition: %s: %s", e.Op, e.Msg)
}

func (e *UsageError) Unwrap() error { return e.Err }
