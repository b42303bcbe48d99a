package apperrors

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a failure so handlers can map it to a status
// code without inspecting messages.
type ErrorCode string

const (
	ValidationError  ErrorCode = "validation_error"
	InsufficientFunds ErrorCode = "insufficient_funds"
	InvalidState     ErrorCode = "invalid_state"
	Forbidden        ErrorCode = "forbidden"
	InvalidSignature ErrorCode = "invalid_signature"
	DuplicateRequest ErrorCode = "duplicate_request"
	LockTimeout      ErrorCode = "lock_timeout"
	Expired          ErrorCode = "expired"
	NotFound         ErrorCode = "not_found"
	InternalError    ErrorCode = "internal_error"
)

// AppError carries a machine-readable code alongside the message.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *AppError) WithDetails(details string) *AppError {
	return &AppError{Code: e.Code, Message: e.Message, Details: details}
}

// CodeOf extracts the error code from err, returning InternalError for
// anything outside the taxonomy.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return InternalError
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// Predefined errors for common cases
var (
	ErrWalletNotFound      = New(NotFound, "wallet not found")
	ErrTransactionNotFound = New(NotFound, "transaction not found")
	ErrInsufficientFunds   = New(InsufficientFunds, "insufficient funds")
	ErrDuplicateRequest    = New(DuplicateRequest, "request already in progress")
	ErrLockTimeout         = New(LockTimeout, "could not acquire wallet lock, retry")
	ErrInvalidSignature    = New(InvalidSignature, "unauthorized")
	ErrExpired             = New(Expired, "transaction has expired")
)
