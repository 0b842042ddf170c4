package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrBusinessRule indicates that an operation would break a business rule,
// e.g. a refund exceeding the customer's total purchases.
var ErrBusinessRule = errors.New("business rule violation")

// ErrConcurrency signals an optimistic-concurrency conflict. Reserved; nothing
// returns it yet.
var ErrConcurrency = errors.New("concurrent modification conflict")

// AppError wraps an underlying store or infrastructure error with a status
// code and a message naming the operation that failed.
type AppError struct {
	Code    int
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

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
