package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Bootstrap step errors
	ErrPlatform       ErrorCode = "PLATFORM"
	ErrShellenv       ErrorCode = "SHELLENV"
	ErrClone          ErrorCode = "CLONE"
	ErrRefresh        ErrorCode = "REFRESH"
	ErrPackageInstall ErrorCode = "PACKAGE_INSTALL"
	ErrDiagnostic     ErrorCode = "DIAGNOSTIC"
	ErrTemplate       ErrorCode = "TEMPLATE"
	ErrInterrupted    ErrorCode = "INTERRUPTED"

	// Process errors
	ErrCommandNotFound ErrorCode = "COMMAND_NOT_FOUND"
	ErrCommandExecute  ErrorCode = "COMMAND_EXECUTE"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// advisoryCodes are the failures a bootstrap run logs and continues past.
var advisoryCodes = map[ErrorCode]bool{
	ErrRefresh:        true,
	ErrPackageInstall: true,
	ErrDiagnostic:     true,
}

// ToolstrapError represents a structured error with code and details
type ToolstrapError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ToolstrapError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ToolstrapError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ToolstrapError) Is(target error) bool {
	var targetErr *ToolstrapError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ToolstrapError with the given code and message
func New(code ErrorCode, message string) *ToolstrapError {
	return &ToolstrapError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ToolstrapError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ToolstrapError {
	return &ToolstrapError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ToolstrapError
func Wrap(err error, code ErrorCode, message string) *ToolstrapError {
	if err == nil {
		return nil
	}
	return &ToolstrapError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ToolstrapError {
	if err == nil {
		return nil
	}
	return &ToolstrapError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ToolstrapError) WithDetail(key string, value interface{}) *ToolstrapError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var tsErr *ToolstrapError
	if errors.As(err, &tsErr) {
		return tsErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ToolstrapError
func GetErrorCode(err error) ErrorCode {
	var tsErr *ToolstrapError
	if errors.As(err, &tsErr) {
		return tsErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ToolstrapError
func GetErrorDetails(err error) map[string]interface{} {
	var tsErr *ToolstrapError
	if errors.As(err, &tsErr) {
		return tsErr.Details
	}
	return nil
}

// IsAdvisory reports whether err is a failure the run continues past.
// Errors without a code are never advisory.
func IsAdvisory(err error) bool {
	if err == nil {
		return false
	}
	return advisoryCodes[GetErrorCode(err)]
}

// IsNotExist reports whether err means a file or directory is missing.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
