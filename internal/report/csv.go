// Package report renders audit results as CSV and as the console summary.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/flightschool/auditor/internal/audit"
	"github.com/flightschool/auditor/internal/errors"
)

// Columns of the output CSV, in order.
var Columns = []string{"STUDENT", "AIRPLANE", "INSTRUCTOR", "TAKEOFF", "LANDING", "FILED", "AREA", "REASON"}

// Header is the first line of every output CSV.
var Header = strings.Join(Columns, ",")

// Format writes the header and one row per violation to w in order.
func Format(w io.Writer, violations []audit.Violation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, v := range violations {
		if err := cw.Write(v.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSV writes violations to path, replacing any existing file.
// Concurrent writers of the same path are serialised with a lock file.
func WriteCSV(path string, violations []audit.Violation) (err error) {
	var buf bytes.Buffer
	if err := Format(&buf, violations); err != nil {
		return errors.New(errors.ErrCodeReportFailed, "failed to format report", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if info, statErr := os.Stat(dir); statErr != nil || !info.IsDir() {
			return errors.New(errors.ErrCodeInvalidPath,
				fmt.Sprintf("output directory %s does not exist", dir), statErr).
				WithDetail("path", path)
		}
	}

	lock := newFileLock(path)
	if err := lock.Lock(); err != nil {
		return errors.New(errors.ErrCodeReportFailed, "failed to lock output file", err).
			WithDetail("path", path)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil && err == nil {
			err = errors.New(errors.ErrCodeReportFailed, unlockErr.Error(), unlockErr)
		}
	}()

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0o644); err != nil {
		return errors.New(errors.ErrCodeReportFailed,
			fmt.Sprintf("failed to write %s", path), err).WithDetail("path", path)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.New(errors.ErrCodeReportFailed,
			fmt.Sprintf("failed to write %s", path), err).WithDetail("path", path)
	}
	return nil
}
