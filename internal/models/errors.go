package models

import (
	"errors"
	"fmt"
)

// Common error types
var (
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("operation conflicts with current state")
	ErrDistribution = errors.New("invalid weight distribution")
	ErrProvider     = errors.New("text provider failure")
	ErrSink         = errors.New("storage sink failure")
)

// AppError represents an application-level error with context
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ErrInvalidInput creates a validation error
func ErrInvalidInput(message string) error {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
	}
}

// ErrNotFoundWithMsg creates a not found error with custom message
func ErrNotFoundWithMsg(message string) error {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: message,
		Err:     ErrNotFound,
	}
}

// ErrConflictWithMsg creates a conflict error with custom message
func ErrConflictWithMsg(message string) error {
	return &AppError{
		Code:    "CONFLICT",
		Message: message,
		Err:     ErrConflict,
	}
}

// ErrInvalidDistribution signals a malformed weight table. This is a
// configuration error: it is surfaced immediately and never retried.
func ErrInvalidDistribution(message string) error {
	return &AppError{
		Code:    "INVALID_DISTRIBUTION",
		Message: message,
		Err:     ErrDistribution,
	}
}

// ErrProviderFailure signals a locale text provider error. Callers recover
// locally with a deterministic fallback value and keep generating.
func ErrProviderFailure(message string, err error) error {
	return &AppError{
		Code:    "PROVIDER_FAILURE",
		Message: message,
		Err:     errors.Join(ErrProvider, err),
	}
}

// ErrSinkFailure signals a storage flush error. Fatal to the run: a
// partially flushed batch leaves identifier bookkeeping in an unknown state.
func ErrSinkFailure(message string, err error) error {
	return &AppError{
		Code:    "SINK_FAILURE",
		Message: message,
		Err:     errors.Join(ErrSink, err),
	}
}
