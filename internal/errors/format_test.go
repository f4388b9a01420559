package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatJSON_BasicError(t *testing.T) {
	// Given: a dataset error with a suggestion
	err := DatasetError(ErrCodeDatasetMissing, "weather.json", "file not found", nil).
		WithSuggestion("Check the dataset directory")

	// When: formatting as JSON
	data, jsonErr := FormatJSON(err)

	// Then: valid JSON with expected fields
	require.NoError(t, jsonErr)

	var result map[string]any
	require.NoError(t, json.Unmarshal(data, &result))

	assert.Equal(t, ErrCodeDatasetMissing, result["code"])
	assert.Equal(t, "weather.json: file not found", result["message"])
	assert.Equal(t, string(CategoryDataset), result["category"])
	assert.Equal(t, string(SeverityFatal), result["severity"])
	assert.Equal(t, "Check the dataset directory", result["suggestion"])

	details, ok := result["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "weather.json", details["file"])
}

func TestFormatJSON_StandardError(t *testing.T) {
	data, jsonErr := FormatJSON(errors.New("generic error"))

	require.NoError(t, jsonErr)

	var result map[string]any
	require.NoError(t, json.Unmarshal(data, &result))

	assert.Equal(t, ErrCodeInternal, result["code"])
	assert.Equal(t, "generic error", result["message"])
}

func TestFormatJSON_NilError(t *testing.T) {
	data, err := FormatJSON(nil)

	assert.NoError(t, err)
	assert.Equal(t, "null", strings.TrimSpace(string(data)))
}

func TestFormatJSON_WithCause(t *testing.T) {
	cause := errors.New("underlying error")
	err := New(ErrCodeInternal, "operation failed", cause)

	data, jsonErr := FormatJSON(err)

	require.NoError(t, jsonErr)

	var result map[string]any
	require.NoError(t, json.Unmarshal(data, &result))

	assert.Equal(t, "underlying error", result["cause"])
}

func TestFormatForCLI_NamesFileAndCode(t *testing.T) {
	// Given: a wrapped dataset error with a hint
	inner := DatasetError(ErrCodeDatasetMissing, "lessons.csv", "file not found", nil).
		WithSuggestion("Every dataset directory needs all eight files")
	err := fmt.Errorf("audit: %w", inner)

	// When: formatting for CLI
	result := FormatForCLI(err)

	// Then: the original error is shown, not the wrapper
	assert.Contains(t, result, "Error: lessons.csv: file not found")
	assert.Contains(t, result, "Hint: Every dataset directory")
	assert.Contains(t, result, "Code: ERR_201_DATASET_MISSING")
}

func TestFormatForCLI_ShortFormat(t *testing.T) {
	result := FormatForCLI(New(ErrCodeConfigInvalid, "bad config", nil))

	lines := strings.Split(strings.TrimSpace(result), "\n")
	assert.LessOrEqual(t, len(lines), 3, "Should be concise")
	assert.Empty(t, FormatForCLI(nil))
}

func TestFormatForLog_IncludesDetails(t *testing.T) {
	err := DatasetError(ErrCodeDatasetReference, "lessons.csv", "unknown student S9", nil)

	fields := FormatForLog(err)

	assert.Equal(t, ErrCodeDatasetReference, fields["error_code"])
	assert.Equal(t, string(CategoryDataset), fields["category"])
	assert.Equal(t, "lessons.csv", fields["detail_file"])
}

func TestFormatForLog_StandardError(t *testing.T) {
	fields := FormatForLog(errors.New("plain"))

	assert.Equal(t, map[string]any{"error": "plain"}, fields)
	assert.Nil(t, FormatForLog(nil))
}

func TestMessage_OmitsCause(t *testing.T) {
	err := DatasetError(ErrCodeDatasetMalformed, "weather.json", "entry 2: missing visibility", errors.New("eof"))
	wrapped := fmt.Errorf("weather check: %w", err)

	assert.Equal(t, "weather.json: entry 2: missing visibility", Message(wrapped))
	assert.Equal(t, "plain", Message(errors.New("plain")))
	assert.Equal(t, "", Message(nil))
}
