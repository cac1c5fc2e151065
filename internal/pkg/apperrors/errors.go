package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// ErrEmptyStorage is returned when a collection that an operation needs is empty.
	ErrEmptyStorage = errors.New("storage is empty")
	// ErrNoMatchingResults is returned by filters that matched nothing.
	ErrNoMatchingResults = errors.New("no matching results")

	// Authentication errors
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrTokenNotFound = errors.New("token not found")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// ErrPayloadTooLarge is returned when an upload exceeds the configured cap.
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrIOFailure wraps filesystem and image codec failures.
	ErrIOFailure = errors.New("i/o failure")
)

// ErrInvalidInput is the domain name for a failed validation.
var ErrInvalidInput = ErrValidationFailed

// Student Errors
var (
	ErrStudentNotFound = NewResourceNotFoundError("student not found")
)

// Faculty Errors
var (
	ErrFacultyNotFound      = NewResourceNotFoundError("faculty not found")
	ErrFacultyAlreadyExists = NewConflictError("faculty with this name already exists")
)

// Avatar Errors
var (
	ErrAvatarNotFound = NewResourceNotFoundError("avatar not found")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
