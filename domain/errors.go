package domain

import "fmt"

// ErrCode identifies the category of a DomainError
type ErrCode string

const (
	// ErrCodeRootNotFound indicates the analysis root is missing or unreadable
	ErrCodeRootNotFound ErrCode = "ROOT_NOT_FOUND"

	// ErrCodeTargetNotFound indicates the named target file is not in
	// the discovered set
	ErrCodeTargetNotFound ErrCode = "TARGET_NOT_FOUND"

	// ErrCodeParseError indicates a file could not be parsed
	ErrCodeParseError ErrCode = "PARSE_ERROR"

	// ErrCodeAnalysisError indicates an analysis failed
	ErrCodeAnalysisError ErrCode = "ANALYSIS_ERROR"

	// ErrCodeConfigError indicates invalid or unloadable configuration
	ErrCodeConfigError ErrCode = "CONFIG_ERROR"

	// ErrCodeOutputError indicates output could not be written
	ErrCodeOutputError ErrCode = "OUTPUT_ERROR"

	// ErrCodeUnsupportedFormat indicates an unknown output format
	ErrCodeUnsupportedFormat ErrCode = "UNSUPPORTED_FORMAT"

	// ErrCodeInvalidInput indicates invalid request input
	ErrCodeInvalidInput ErrCode = "INVALID_INPUT"
)

// DomainError is the error type crossing service boundaries
type DomainError struct {
	// Code is the error category
	Code ErrCode

	// Message is a human-readable description
	Message string

	// Cause is the wrapped underlying error, if any
	Cause error
}

// Error implements the error interface
func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e DomainError) Unwrap() error {
	return e.Cause
}

// NewRootNotFoundError creates an error for a missing analysis root
func NewRootNotFoundError(root string, cause error) error {
	return DomainError{
		Code:    ErrCodeRootNotFound,
		Message: fmt.Sprintf("analysis root not found: %s", root),
		Cause:   cause,
	}
}

// NewTargetNotFoundError creates an error for a target outside the
// discovered file set
func NewTargetNotFoundError(target string) error {
	return DomainError{
		Code:    ErrCodeTargetNotFound,
		Message: fmt.Sprintf("target file not found in analyzed tree: %s", target),
	}
}

// NewParseError creates an error for an unparseable file
func NewParseError(path string, cause error) error {
	return DomainError{
		Code:    ErrCodeParseError,
		Message: fmt.Sprintf("failed to parse %s", path),
		Cause:   cause,
	}
}

// NewAnalysisError creates an error for a failed analysis
func NewAnalysisError(message string, cause error) error {
	return DomainError{
		Code:    ErrCodeAnalysisError,
		Message: message,
		Cause:   cause,
	}
}

// NewConfigError creates an error for configuration problems
func NewConfigError(message string, cause error) error {
	return DomainError{
		Code:    ErrCodeConfigError,
		Message: message,
		Cause:   cause,
	}
}

// NewOutputError creates an error for output failures
func NewOutputError(message string, cause error) error {
	return DomainError{
		Code:    ErrCodeOutputError,
		Message: message,
		Cause:   cause,
	}
}

// NewUnsupportedFormatError creates an error for an unknown output format
func NewUnsupportedFormatError(format string) error {
	return DomainError{
		Code:    ErrCodeUnsupportedFormat,
		Message: fmt.Sprintf("unsupported format: %s", format),
	}
}

// NewValidationError creates an error for invalid request input
func NewValidationError(message string) error {
	return DomainError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}
