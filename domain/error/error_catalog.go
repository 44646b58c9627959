package apperror

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode string

// Error codes for different categories
const (
	// Authentication Errors (1xxx)
	ErrCodeInvalidCredentials ErrorCode = "AUTH_1001"
	ErrCodeInvalidToken       ErrorCode = "AUTH_1002"
	ErrCodeTooManyAttempts    ErrorCode = "AUTH_1003"
	ErrCodeAccountSuspended   ErrorCode = "AUTH_1004"

	// Validation Errors (2xxx)
	ErrCodeInvalidRequest    ErrorCode = "VALID_2001"
	ErrCodeUserNotFound      ErrorCode = "VALID_2002"
	ErrCodeEventNotFound     ErrorCode = "VALID_2003"
	ErrCodeInvalidCreditCode ErrorCode = "VALID_2004"
	ErrCodeInvalidStatus     ErrorCode = "VALID_2005"

	// Audit / Executor Errors (3xxx)
	ErrCodeUnknownActionCode ErrorCode = "AUDIT_3001"
	ErrCodeMissingReason     ErrorCode = "AUDIT_3002"
	ErrCodeAuditWriteFailed  ErrorCode = "AUDIT_3003"

	// Credit Ledger Errors (4xxx)
	ErrCodeNoCreditAvailable  ErrorCode = "CREDIT_4001"
	ErrCodeCreditNotConsumed  ErrorCode = "CREDIT_4002"
	ErrCodeCapacityTooLarge   ErrorCode = "CREDIT_4003"

	// Database Errors (5xxx)
	ErrCodeDatabaseError ErrorCode = "DB_5001"
)

// AppError represents a structured application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Cause   error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string, details string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}

// IsCode reports whether err is (or wraps) an AppError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// CodeOf extracts the error code from err, or "" when err carries none.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// Common error constructors

func ErrInvalidCredentials(details string) *AppError {
	return NewAppError(ErrCodeInvalidCredentials, "Invalid email or password", details, nil)
}

func ErrInvalidToken(details string) *AppError {
	return NewAppError(ErrCodeInvalidToken, "Invalid token", details, nil)
}

func ErrTooManyAttempts(details string) *AppError {
	return NewAppError(ErrCodeTooManyAttempts, "Too many login attempts", details, nil)
}

func ErrAccountSuspended(userID string) *AppError {
	return NewAppError(ErrCodeAccountSuspended, "Account is suspended", fmt.Sprintf("User ID: %s", userID), nil)
}

func ErrUserNotFound(userID string) *AppError {
	return NewAppError(ErrCodeUserNotFound, "User not found", fmt.Sprintf("User ID: %s", userID), nil)
}

func ErrEventNotFound(eventID string) *AppError {
	return NewAppError(ErrCodeEventNotFound, "Event not found", fmt.Sprintf("Event ID: %s", eventID), nil)
}

func ErrInvalidCreditCode(code string) *AppError {
	return NewAppError(ErrCodeInvalidCreditCode, "Invalid credit code", fmt.Sprintf("Code: %s", code), nil)
}

func ErrInvalidStatus(status string) *AppError {
	return NewAppError(ErrCodeInvalidStatus, "Invalid account status", fmt.Sprintf("Status: %s", status), nil)
}

func ErrInvalidRequest(details string) *AppError {
	return NewAppError(ErrCodeInvalidRequest, "Invalid request", details, nil)
}

// ErrUnknownActionCode marks a programming error: the caller passed an
// action code outside the closed enumeration.
func ErrUnknownActionCode(code string) *AppError {
	return NewAppError(ErrCodeUnknownActionCode, "Unknown admin action code", fmt.Sprintf("Code: %s", code), nil)
}

func ErrMissingReason() *AppError {
	return NewAppError(ErrCodeMissingReason, "A non-empty reason is required for admin actions", "", nil)
}

func ErrAuditWriteFailed(cause error) *AppError {
	return NewAppError(ErrCodeAuditWriteFailed, "Failed to write audit record", "", cause)
}

// ErrNoCreditAvailable is the distinguishable failure callers use to
// present a "purchase required" experience.
func ErrNoCreditAvailable(userID, creditCode string) *AppError {
	return NewAppError(ErrCodeNoCreditAvailable, "No available credit",
		fmt.Sprintf("User ID: %s, Credit code: %s", userID, creditCode), nil)
}

func ErrCreditNotConsumed(creditID string) *AppError {
	return NewAppError(ErrCodeCreditNotConsumed, "Credit is not in consumed state",
		fmt.Sprintf("Credit ID: %s", creditID), nil)
}

func ErrCapacityTooLarge(capacity int) *AppError {
	return NewAppError(ErrCodeCapacityTooLarge, "No credit product covers the requested capacity",
		fmt.Sprintf("Capacity: %d", capacity), nil)
}

func ErrDatabase(operation string, cause error) *AppError {
	return NewAppError(ErrCodeDatabaseError, "Database operation failed", operation, cause)
}
