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

// Ledger error kinds. Each is matchable with errors.Is so callers can branch on cause.
var (
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrInvalidStatus           = errors.New("invalid charge status")
	ErrInvalidType             = errors.New("invalid charge type")
	ErrAlreadyApplied          = errors.New("late fee already applied")
	ErrGracePeriodNotElapsed   = errors.New("grace period has not elapsed")
	ErrFeatureDisabled         = errors.New("feature disabled")
	ErrZeroFee                 = errors.New("computed fee is zero")

	// ErrConcurrentModification is returned when a record changed between read and write;
	// nothing was committed and the caller may retry.
	ErrConcurrentModification = errors.New("record was modified concurrently")
)

// Not-found kinds for specific entities. All of them also match ErrNotFound.
var (
	ErrLeaseNotFound    = fmt.Errorf("lease %w", ErrNotFound)
	ErrChargeNotFound   = fmt.Errorf("charge %w", ErrNotFound)
	ErrPaymentNotFound  = fmt.Errorf("payment %w", ErrNotFound)
	ErrMortgageNotFound = fmt.Errorf("mortgage %w", ErrNotFound)
)

// AppError wraps an infrastructure failure with a status-like code and a message safe to log.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}
