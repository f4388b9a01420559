package ui

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightschool/auditor/internal/dataset"
	"github.com/flightschool/auditor/internal/errors"
)

func TestIsTTY_NonFile(t *testing.T) {
	assert.False(t, IsTTY(nil))
	assert.False(t, IsTTY(&bytes.Buffer{}))
}

func TestIsTTY_RegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.False(t, IsTTY(f))
	assert.False(t, UseColor(f))
}

func TestDetectNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.True(t, DetectNoColor())
}

func TestGetStyles_NoColorIsPlain(t *testing.T) {
	s := GetStyles(true)
	assert.Equal(t, "PASS", s.Pass.Render("PASS"))
	assert.Equal(t, "FAIL", s.Fail.Render("FAIL"))
}

func passing() ValidationResult {
	return ValidationResult{
		Dir: "/data/2017",
		Files: []dataset.FileReport{
			{File: "daycycle.json", Rows: 31},
			{File: "minimums.csv", Rows: 1},
		},
	}
}

func TestValidationRenderer_AllPass(t *testing.T) {
	// Given: two parsed files and passing references
	var buf bytes.Buffer
	res := passing()

	// When
	NewValidationRenderer(&buf, true).Render(res)

	// Then
	assert.True(t, res.OK())
	want := "Dataset: /data/2017\n\n" +
		"  PASS  daycycle.json  31 rows\n" +
		"  PASS  minimums.csv   1 row\n" +
		"\n" +
		"  PASS  references\n"
	assert.Equal(t, want, buf.String())
}

func TestValidationRenderer_FileFailure(t *testing.T) {
	var buf bytes.Buffer
	res := passing()
	res.Files[1].Err = errors.DatasetError(errors.ErrCodeDatasetMalformed, "minimums.csv", "line 3: invalid VISIBILITY", nil)

	NewValidationRenderer(&buf, true).Render(res)

	assert.False(t, res.OK())
	out := buf.String()
	assert.Contains(t, out, "  FAIL  minimums.csv   ERR_202_DATASET_MALFORMED\n")
	assert.Contains(t, out, "minimums.csv: line 3: invalid VISIBILITY")
	assert.Contains(t, out, "SKIP  references")
}

func TestValidationRenderer_ReferenceFailure(t *testing.T) {
	var buf bytes.Buffer
	res := passing()
	res.CrossErr = errors.DatasetError(errors.ErrCodeDatasetReference, "lessons.csv", "line 2: unknown student S09 (not in students.csv)", nil)

	NewValidationRenderer(&buf, true).Render(res)

	assert.False(t, res.OK())
	assert.Contains(t, buf.String(), "FAIL  references     ERR_203_DATASET_REFERENCE")
}

func TestValidationRenderer_JSON(t *testing.T) {
	var buf bytes.Buffer
	res := passing()
	res.CrossErr = errors.DatasetError(errors.ErrCodeDatasetReference, "fleet.csv", "duplicate airplane N1", nil)

	require.NoError(t, NewValidationRenderer(&buf, true).RenderJSON(res))

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	assert.Equal(t, false, parsed["ok"])
	assert.Len(t, parsed["files"], 2)
	refs := parsed["references"].(map[string]any)
	assert.Equal(t, "ERR_203_DATASET_REFERENCE", refs["code"])
	assert.Equal(t, "fleet.csv: duplicate airplane N1", refs["error"])
}
