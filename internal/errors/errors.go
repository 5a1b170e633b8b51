package errors

import "fmt"

// ErrorCode represents an Arcana error code.
type ErrorCode string

const (
	ErrInvalidRequest  ErrorCode = "INVALID_REQUEST"   // 400
	ErrNotFound        ErrorCode = "NOT_FOUND"         // 404
	ErrPersistFailed   ErrorCode = "PERSIST_FAILED"    // 503
	ErrNoCardAvailable ErrorCode = "NO_CARD_AVAILABLE" // 500
	ErrStoreOpenFailed ErrorCode = "STORE_OPEN_FAILED" // 500
	ErrInternal        ErrorCode = "INTERNAL"          // 500
)

// ArcanaError represents a structured error with code, status, and details.
type ArcanaError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
	Cause   error
}

// Error implements the error interface.
func (e *ArcanaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *ArcanaError) Unwrap() error {
	return e.Cause
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *ArcanaError {
	return &ArcanaError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a pull or card cannot be found.
func NewNotFound(identifier string) *ArcanaError {
	return &ArcanaError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewPersistFailed creates a 503 error for a failed history commit.
// The operation is retryable from the caller's point of view; no partial
// state is left behind.
func NewPersistFailed(err error) *ArcanaError {
	msg := "failed to save history"
	if err != nil {
		msg = fmt.Sprintf("failed to save history: %v", err)
	}
	return &ArcanaError{
		Code:    ErrPersistFailed,
		Status:  503,
		Message: msg,
		Cause:   err,
	}
}

// NewNoCardAvailable creates a 500 error for a draw from an empty deck.
// The catalog's emergency-deck guarantee makes this unreachable in practice;
// hitting it means a programming invariant was violated.
func NewNoCardAvailable() *ArcanaError {
	return &ArcanaError{
		Code:    ErrNoCardAvailable,
		Status:  500,
		Message: "deck has no cards to draw from",
	}
}

// NewStoreOpenFailed creates a 500 error for a store that could not be
// opened even by the in-memory fallback tier.
func NewStoreOpenFailed(err error) *ArcanaError {
	msg := "failed to open history store"
	if err != nil {
		msg = fmt.Sprintf("failed to open history store: %v", err)
	}
	return &ArcanaError{
		Code:    ErrStoreOpenFailed,
		Status:  500,
		Message: msg,
		Cause:   err,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *ArcanaError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &ArcanaError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
		Cause:   err,
	}
}

// Is checks if an error is an ArcanaError with the given code.
func Is(err error, code ErrorCode) bool {
	if aErr, ok := err.(*ArcanaError); ok {
		return aErr.Code == code
	}
	return false
}
