package errors

import (
	"net/http"

	"pledger/internal/errors"
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

// Predefined error types
var (
	// Signup/login validation errors
	ErrCredentialsRequired = NewBaseError(
		http.StatusBadRequest,
		"CREDENTIALS_REQUIRED",
		"Username and password required.",
		"",
	)

	ErrUsernameTaken = NewBaseError(
		http.StatusConflict,
		"USERNAME_TAKEN",
		"Username already exists.",
		"",
	)

	// ErrInvalidCredentials deliberately carries the same message for an
	// unknown username and a wrong password.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid credentials.",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Could not process password.",
		"",
	)

	// Commitment validation errors
	ErrCommitmentTextRequired = NewBaseError(
		http.StatusBadRequest,
		"COMMITMENT_TEXT_REQUIRED",
		"Commitment text required.",
		"",
	)

	ErrInvalidDeadline = NewBaseError(
		http.StatusBadRequest,
		"INVALID_DEADLINE",
		"Invalid deadline format.",
		"",
	)

	ErrCommitmentNotOpen = NewBaseError(
		http.StatusBadRequest,
		"COMMITMENT_NOT_OPEN",
		"Only open commitments can be resolved.",
		"",
	)

	ErrInvalidOutcomeStatus = NewBaseError(
		http.StatusBadRequest,
		"INVALID_OUTCOME_STATUS",
		"Invalid status selected.",
		"",
	)

	// ErrCommitmentNotFound covers both nonexistent ids and ids owned by
	// another user; the two cases must be indistinguishable to the caller.
	ErrCommitmentNotFound = NewBaseError(
		http.StatusNotFound,
		"COMMITMENT_NOT_FOUND",
		"Commitment not found.",
		"",
	)

	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found.",
		"",
	)

	ErrUserCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_CREATION_FAILED",
		"Could not create account.",
		"",
	)

	ErrSessionCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"SESSION_CREATION_FAILED",
		"Could not establish session.",
		"",
	)

	// General errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Invalid input.",
		"",
	)

	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed.",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Something went wrong.",
		"",
	)
)

// IsValidation reports whether err maps to a user-correctable input problem
// (4xx short of auth/not-found), i.e. the originating form should be
// re-rendered with the error message inline.
func IsValidation(err error) bool {
	var appErr AppError
	if !errors.As(err, &appErr) {
		return false
	}

	switch appErr.HTTPCode() {
	case http.StatusBadRequest, http.StatusConflict:
		return true
	default:
		return false
	}
}

// IsAuth reports whether err is a credential failure.
func IsAuth(err error) bool {
	var appErr AppError

	return errors.As(err, &appErr) && appErr.HTTPCode() == http.StatusUnauthorized
}

// IsNotFound reports whether err is an unauthorized or nonexistent resource
// access, which callers surface without detail.
func IsNotFound(err error) bool {
	var appErr AppError

	return errors.As(err, &appErr) && appErr.HTTPCode() == http.StatusNotFound
}

// UserMessage extracts the user-visible message from err, falling back to a
// generic message so internal detail never leaks to the end user.
func UserMessage(err error) string {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Message()
	}

	return ErrInternalError.Message()
}

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
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
	return "Something went wrong."
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
