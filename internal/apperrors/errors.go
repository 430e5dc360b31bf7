package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the request conflicts with the current state of a resource,
// e.g. deleting a customer that still has appointments.
var ErrConflict = errors.New("resource conflict")

// ErrForbidden indicates the caller is authenticated but may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrRefreshTokenExpired indicates the stored refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
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

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError wraps ErrNotFound with a message.
func NewNotFoundError(message string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, message)
}

// NewValidationFailedError wraps ErrValidation with a message.
func NewValidationFailedError(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}

// NewConflictError wraps ErrConflict with a message.
func NewConflictError(message string) error {
	return fmt.Errorf("%w: %s", ErrConflict, message)
}

// NewDuplicateError wraps ErrDuplicate with a message.
func NewDuplicateError(message string) error {
	return fmt.Errorf("%w: %s", ErrDuplicate, message)
}

// Message returns the part of a wrapped sentinel error that is safe to show to a client,
// e.g. "validation error: appointment is already approved" becomes "appointment is already approved".
func Message(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{ErrValidation, ErrNotFound, ErrDuplicate, ErrConflict, ErrForbidden, ErrUnauthorized} {
		if !errors.Is(err, sentinel) {
			continue
		}
		prefix := sentinel.Error() + ": "
		if idx := strings.Index(msg, prefix); idx >= 0 {
			return msg[idx+len(prefix):]
		}
		return sentinel.Error()
	}
	return msg
}
