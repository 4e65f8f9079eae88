package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized is returned when a user is not authorized to perform an action
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when a user is not allowed to perform an action
	ErrForbidden = errors.New("forbidden")
	// ErrInsufficientFunds is returned when a debit would leave a balance below zero
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrConflict is returned when a concurrent writer already moved the record on
	ErrConflict = errors.New("conflict")
	// ErrOracleUnavailable is returned by price providers that failed or timed out.
	// Services never surface it; they fall back to a 1:1 valuation.
	ErrOracleUnavailable = errors.New("pricing oracle unavailable")
	// ErrTransactionAborted is returned when an atomic write failed for an
	// infrastructure reason. Nothing was persisted and the call may be retried.
	ErrTransactionAborted = errors.New("transaction aborted")
)

var classified = []error{
	ErrNotFound,
	ErrAlreadyExists,
	ErrValidation,
	ErrUnauthorized,
	ErrForbidden,
	ErrInsufficientFunds,
	ErrConflict,
	ErrTransactionAborted,
}

// IsDomainError reports whether err belongs to the domain taxonomy.
func IsDomainError(err error) bool {
	for _, target := range classified {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Aborted returns err unchanged when it is already a domain error and wraps it
// as ErrTransactionAborted otherwise.
func Aborted(err error) error {
	if err == nil || IsDomainError(err) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrTransactionAborted, err)
}

// Validationf builds an ErrValidation with a formatted detail.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
