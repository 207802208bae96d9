package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid          = "CONFIG_INVALID"
	CodeInvalidInput           = "INVALID_INPUT"
	CodeNotFound               = "NOT_FOUND"
	CodeSessionNotFound        = "SESSION_NOT_FOUND"
	CodeExternalService        = "EXTERNAL_SERVICE_ERROR"
	CodeIncompatibleResolution = "INCOMPATIBLE_RESOLUTION"
	CodeNoValidLag             = "NO_VALID_LAG"
	CodeInternalError          = "INTERNAL_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func SessionNotFound(id string) *AppError {
	return New(CodeSessionNotFound, fmt.Sprintf("session %s not found or expired", id))
}

func ExternalServiceError(service string, cause error) *AppError {
	return &AppError{
		Code:    CodeExternalService,
		Message: fmt.Sprintf("%s service error", service),
		Cause:   cause,
	}
}

// IncompatibleResolution signals that two signals cannot be compared because
// they report at different frequencies at the selected geography.
func IncompatibleResolution(signal1, signal2 string) *AppError {
	return New(CodeIncompatibleResolution,
		fmt.Sprintf("signals %s and %s do not share a reporting frequency", signal1, signal2))
}

// NoValidLag reports a sweep whose every lag was statistically undefined.
func NoValidLag() *AppError {
	return New(CodeNoValidLag, "no lag in the swept range produced a defined correlation")
}
