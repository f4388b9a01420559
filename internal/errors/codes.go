// Package errors provides structured error handling for the auditor.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: Dataset errors (missing, malformed, broken references)
//   - 3XX: Lookup errors (per-lesson data gaps)
//   - 4XX: Validation errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryDataset indicates a dataset file could not be loaded.
	CategoryDataset Category = "DATASET"
	// CategoryLookup indicates a lesson could not be correlated with reference data.
	CategoryLookup Category = "LOOKUP"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
	// SeverityInfo indicates informational only.
	SeverityInfo Severity = "INFO"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	// Dataset errors (200-299)
	ErrCodeDatasetMissing   = "ERR_201_DATASET_MISSING"
	ErrCodeDatasetMalformed = "ERR_202_DATASET_MALFORMED"
	ErrCodeDatasetReference = "ERR_203_DATASET_REFERENCE"

	// Lookup errors (300-399)
	ErrCodeNoDayCycle = "ERR_301_NO_DAYCYCLE"
	ErrCodeNoMinimums = "ERR_302_NO_MINIMUMS"
	ErrCodeNoWeather  = "ERR_303_NO_WEATHER"

	// Validation errors (400-499)
	ErrCodeInvalidInput = "ERR_401_INVALID_INPUT"
	ErrCodeInvalidPath  = "ERR_402_INVALID_PATH"

	// Internal errors (500-599)
	ErrCodeInternal     = "ERR_501_INTERNAL"
	ErrCodeReportFailed = "ERR_502_REPORT_FAILED"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Extract numeric portion (e.g., "201" from "ERR_201_DATASET_MISSING")
	numStr := code[4:7]

	switch numStr[0] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryDataset
	case '3':
		return CategoryLookup
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
func severityFromCode(code string) Severity {
	switch categoryFromCode(code) {
	case CategoryDataset:
		// Partial input cannot be trusted for a compliance audit.
		return SeverityFatal
	case CategoryLookup:
		return SeverityWarning
	default:
		return SeverityError
	}
}
