package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrCodeInvalid          ErrorCode = "INVALID"
	ErrCodeInvalidFrequency ErrorCode = "INVALID_FREQUENCY"
	ErrCodeInvalidDate      ErrorCode = "INVALID_DATE"
	ErrCodeUnknownItem      ErrorCode = "UNKNOWN_ITEM"
	ErrCodeStoreFailure     ErrorCode = "STORE_FAILURE"
	ErrCodeConflict         ErrorCode = "CONFLICT"
	ErrCodeForbidden        ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal         ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WrapStore classifies a persistence failure. Write paths must surface these,
// never swallow them.
func WrapStore(message string, err error) *Error {
	return WrapError(ErrCodeStoreFailure, message, err)
}

// Common domain errors.
var (
	ErrUserNotFound       = NewError(ErrCodeNotFound, "user not found")
	ErrItemNotFound       = NewError(ErrCodeNotFound, "item not found")
	ErrDefinitionNotFound = NewError(ErrCodeNotFound, "task definition not found")
	ErrOccurrenceNotFound = NewError(ErrCodeNotFound, "occurrence not found")
	ErrSessionNotFound    = NewError(ErrCodeNotFound, "session not found")
	ErrUnknownItem        = NewError(ErrCodeUnknownItem, "referenced item does not exist")
	ErrInvalidFrequency   = NewError(ErrCodeInvalidFrequency, "frequency interval must be positive")
	ErrInvalidDate        = NewError(ErrCodeInvalidDate, "invalid date")
	ErrUnauthorized       = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrInvalidPayload     = NewError(ErrCodeInvalid, "invalid payload")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
