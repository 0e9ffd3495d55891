package types

import (
	"errors"
	"fmt"
)

// Error kinds returned by the store. Every StoreError matches exactly one of them with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage error")
)

type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// StoreError is the single error type surfaced by store operations.
type StoreError struct {
	Kind    error
	Op      string
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the underlying cause.
func (e *StoreError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewValidationError reports a bad field or enum value.
func NewValidationError(op, format string, args ...any) *StoreError {
	return &StoreError{Kind: ErrValidation, Op: op, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError reports a reference to a record that does not exist.
func NewNotFoundError(op, entity, id string) *StoreError {
	return &StoreError{Kind: ErrNotFound, Op: op, Message: fmt.Sprintf("%s %q", entity, id)}
}

// NewStorageError wraps a failure of the underlying database.
func NewStorageError(op string, err error) *StoreError {
	return &StoreError{Kind: ErrStorage, Op: op, Err: err}
}
