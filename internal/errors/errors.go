package errors

import (
	stderrors "errors"
	"fmt"
)

// AuditError is the structured error type for the auditor.
// It provides rich context for error handling, logging, and user presentation.
type AuditError struct {
	// Code is the unique error code (e.g., "ERR_201_DATASET_MISSING").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, Dataset, Lookup, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *AuditError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *AuditError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with AuditError.
func (e *AuditError) Is(target error) bool {
	if t, ok := target.(*AuditError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *AuditError) WithDetail(key, value string) *AuditError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *AuditError) WithSuggestion(suggestion string) *AuditError {
	e.Suggestion = suggestion
	return e
}

// New creates a new AuditError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *AuditError {
	return &AuditError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates an AuditError from an existing error.
// The error's message becomes the AuditError message.
func Wrap(code string, err error) *AuditError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *AuditError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// DatasetError creates an error for a dataset file that cannot be used.
// The file name is recorded as a detail so callers can report it.
func DatasetError(code, file, message string, cause error) *AuditError {
	return New(code, fmt.Sprintf("%s: %s", file, message), cause).WithDetail("file", file)
}

// LookupError creates an error for a lesson whose reference data is missing.
func LookupError(code, message string) *AuditError {
	return New(code, message, nil)
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *AuditError {
	return New(ErrCodeInvalidInput, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *AuditError {
	return New(ErrCodeInternal, message, cause)
}

// IsFatal checks if an error has fatal severity.
// Fatal errors should abort the current operation.
func IsFatal(err error) bool {
	var ae *AuditError
	if stderrors.As(err, &ae) {
		return ae.Severity == SeverityFatal
	}
	return false
}

// IsDataset reports whether err is (or wraps) a dataset error.
func IsDataset(err error) bool {
	return GetCategory(err) == CategoryDataset
}

// IsLookup reports whether err is (or wraps) a lookup error.
func IsLookup(err error) bool {
	return GetCategory(err) == CategoryLookup
}

// GetCode extracts the error code from an AuditError.
// Returns empty string if not an AuditError.
func GetCode(err error) string {
	var ae *AuditError
	if stderrors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// GetCategory extracts the category from an AuditError.
// Returns empty string if not an AuditError.
func GetCategory(err error) Category {
	var ae *AuditError
	if stderrors.As(err, &ae) {
		return ae.Category
	}
	return ""
}
