package errors

import (
	goerrors "errors"
	"fmt"
)

// AppError represents an application-level error with a code and optional cause
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Code extracts the error code from err, or "" when err is not an AppError.
func Code(err error) string {
	var appErr *AppError
	if goerrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// HasCode reports whether err is an AppError carrying the given code.
func HasCode(err error, code string) bool {
	return Code(err) == code
}

// Error codes
const (
	ErrCodeSchemaParse      = "SCHEMA_PARSE_FAILED"
	ErrCodeSchemaValidation = "SCHEMA_VALIDATION_FAILED"
	ErrCodeUnknownTool      = "UNKNOWN_TOOL"
	ErrCodeMissingField     = "MISSING_PREREQUISITE_FIELD"
	ErrCodeIndexOutOfRange  = "INDEX_OUT_OF_RANGE"
	ErrCodeExternalService  = "EXTERNAL_SERVICE_FAILED"
	ErrCodeAgentConfig      = "AGENT_CONFIG_INVALID"
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeProfileRead      = "PROFILE_READ_FAILED"
	ErrCodeCalendar         = "CALENDAR_FAILED"
	ErrCodeStore            = "STORE_FAILED"
)
