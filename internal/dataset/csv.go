package dataset

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/flightschool/auditor/internal/errors"
)

// record is one data row of a CSV table with its columns resolved by name.
type record struct {
	file    string
	line    int
	fields  []string
	columns map[string]int
}

// get returns the trimmed value of a required column.
func (r record) get(column string) string {
	return strings.TrimSpace(r.fields[r.columns[column]])
}

// errorf builds a malformed-row error for this record.
func (r record) errorf(format string, args ...any) error {
	msg := fmt.Sprintf("line %d: %s", r.line, fmt.Sprintf(format, args...))
	return errors.DatasetError(errors.ErrCodeDatasetMalformed, r.file, msg, nil).
		WithDetail("line", strconv.Itoa(r.line))
}

// readTable reads a CSV file whose header must contain every required column.
// Extra columns are ignored; each row must be as wide as the header.
func readTable(dir, file string, required ...string) ([]record, error) {
	f, err := openDatasetFile(dir, file)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // widths are checked below to report the line
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.DatasetError(errors.ErrCodeDatasetMalformed, file, "missing header row", nil)
	}
	if err != nil {
		return nil, errors.DatasetError(errors.ErrCodeDatasetMalformed, file, err.Error(), err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := columns[name]; dup {
			return nil, errors.DatasetError(errors.ErrCodeDatasetMalformed, file,
				fmt.Sprintf("duplicate column %s", name), nil)
		}
		columns[name] = i
	}

	var missing []string
	for _, col := range required {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errors.DatasetError(errors.ErrCodeDatasetMalformed, file,
			fmt.Sprintf("header missing column(s) %s", strings.Join(missing, ", ")), nil).
			WithSuggestion(fmt.Sprintf("Expected header to include %s", strings.Join(required, ",")))
	}

	var records []record
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.DatasetError(errors.ErrCodeDatasetMalformed, file, err.Error(), err)
		}

		line, _ := reader.FieldPos(0)
		if len(fields) != len(header) {
			return nil, errors.DatasetError(errors.ErrCodeDatasetMalformed, file,
				fmt.Sprintf("line %d: expected %d fields, got %d", line, len(header), len(fields)), nil).
				WithDetail("line", strconv.Itoa(line))
		}

		records = append(records, record{
			file:    file,
			line:    line,
			fields:  fields,
			columns: columns,
		})
	}

	return records, nil
}

// openDatasetFile opens one of the dataset files, mapping a missing file to
// a dataset error.
func openDatasetFile(dir, file string) (*os.File, error) {
	f, err := os.Open(filepath.Join(dir, file))
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.DatasetError(errors.ErrCodeDatasetMissing, file, "file not found", err).
				WithSuggestion("A dataset directory must contain " + strings.Join(Files, ", "))
		}
		return nil, errors.DatasetError(errors.ErrCodeDatasetMissing, file, err.Error(), err)
	}
	return f, nil
}
