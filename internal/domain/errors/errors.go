package errors

import (
	"net/http"

	"mealtrack/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Authentication: credentials do not structurally match any identity.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		"",
	)

	// Account state: credentials valid but the account may not hold a session.
	ErrAccountInactive = NewBaseError(
		http.StatusForbidden,
		"ACCOUNT_INACTIVE",
		"Account is inactive. Please contact administrator.",
		"",
	)

	ErrAccountSuspended = NewBaseError(
		http.StatusForbidden,
		"ACCOUNT_SUSPENDED",
		"Account suspended due to payment issues. Please contact support.",
		"",
	)

	// Authorization: actor lacks the required role or capability.
	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"You do not have permission to perform this action",
		"",
	)

	// Conflicts.
	ErrEmailTaken = NewBaseError(
		http.StatusConflict,
		"EMAIL_TAKEN",
		"An account with this email already exists",
		"",
	)

	ErrSuperadminExists = NewBaseError(
		http.StatusConflict,
		"SUPERADMIN_EXISTS",
		"A superadmin account already exists",
		"",
	)

	// Demo accounts are immutable.
	ErrDemoAccountImmutable = NewBaseError(
		http.StatusForbidden,
		"DEMO_ACCOUNT_IMMUTABLE",
		"Demo accounts cannot be modified or deleted. This is for demonstration purposes only.",
		"",
	)

	// Target identity does not exist.
	ErrAccountNotFound = NewBaseError(
		http.StatusNotFound,
		"ACCOUNT_NOT_FOUND",
		"Account not found",
		"",
	)

	// Input validation.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	ErrPasswordStrength = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_STRENGTH",
		"Password does not meet security requirements",
		"",
	)

	// Signup disabled until the bootstrap superadmin exists (deployment policy).
	ErrSignupDisabled = NewBaseError(
		http.StatusForbidden,
		"SIGNUP_DISABLED",
		"Registration is disabled until initial setup is complete",
		"",
	)

	// No authenticated session for the requested operation.
	ErrNoActiveSession = NewBaseError(
		http.StatusUnauthorized,
		"NO_ACTIVE_SESSION",
		"No active session",
		"",
	)

	// Backend unreachable. Handled internally by backend selection and
	// never surfaced from login/signup; kept for in-flight operation
	// failures after startup.
	ErrBackendUnreachable = NewBaseError(
		http.StatusServiceUnavailable,
		"BACKEND_UNREACHABLE",
		"Storage backend is unreachable",
		"",
	)

	// General errors.
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)
)

// AccountStateError returns the gating error for the given reason string
// ("inactive" or "suspended"). Unknown reasons map to the generic
// forbidden error so gating never silently passes.
func AccountStateError(reason string) *BaseError {
	switch reason {
	case "inactive":
		return ErrAccountInactive
	case "suspended":
		return ErrAccountSuspended
	default:
		return ErrForbidden
	}
}

// DatabaseExecuteError represents a storage execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a storage-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "storage execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Storage operation failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// Unwrap exposes the wrapped storage error for errors.Is checks.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}
