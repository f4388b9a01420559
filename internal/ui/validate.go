package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/flightschool/auditor/internal/dataset"
	"github.com/flightschool/auditor/internal/errors"
)

// ValidationResult is the outcome of checking a dataset directory.
type ValidationResult struct {
	Dir   string               `json:"dir"`
	Files []dataset.FileReport `json:"-"`
	// CrossErr is the cross-file check error, if the files parsed.
	CrossErr error `json:"-"`
}

// OK reports whether every file parsed and the cross-file checks passed.
func (r ValidationResult) OK() bool {
	if r.CrossErr != nil {
		return false
	}
	for _, f := range r.Files {
		if !f.OK() {
			return false
		}
	}
	return true
}

// ValidationRenderer prints a ValidationResult.
type ValidationRenderer struct {
	out    io.Writer
	styles Styles
}

// NewValidationRenderer creates a renderer writing to out.
func NewValidationRenderer(out io.Writer, noColor bool) *ValidationRenderer {
	return &ValidationRenderer{out: out, styles: GetStyles(noColor)}
}

// Render prints one line per file and a final cross-file line.
func (r *ValidationRenderer) Render(res ValidationResult) {
	_, _ = fmt.Fprintf(r.out, "%s\n\n", r.styles.Header.Render("Dataset: "+res.Dir))

	allParsed := true
	for _, f := range res.Files {
		if f.OK() {
			_, _ = fmt.Fprintf(r.out, "  %s  %-14s %s\n",
				r.styles.Pass.Render("PASS"), f.File, r.styles.Label.Render(rows(f.Rows)))
			continue
		}
		allParsed = false
		_, _ = fmt.Fprintf(r.out, "  %s  %-14s %s\n", r.styles.Fail.Render("FAIL"), f.File, errors.GetCode(f.Err))
		_, _ = fmt.Fprintf(r.out, "        %s\n", r.styles.Dim.Render(errors.Message(f.Err)))
	}

	_, _ = fmt.Fprintln(r.out)
	switch {
	case !allParsed:
		_, _ = fmt.Fprintf(r.out, "  %s  %s\n", r.styles.Warn.Render("SKIP"), "references (fix the files above first)")
	case res.CrossErr != nil:
		_, _ = fmt.Fprintf(r.out, "  %s  %-14s %s\n", r.styles.Fail.Render("FAIL"), "references", errors.GetCode(res.CrossErr))
		_, _ = fmt.Fprintf(r.out, "        %s\n", r.styles.Dim.Render(errors.Message(res.CrossErr)))
	default:
		_, _ = fmt.Fprintf(r.out, "  %s  %s\n", r.styles.Pass.Render("PASS"), "references")
	}
}

type fileJSON struct {
	File  string `json:"file"`
	Rows  int    `json:"rows"`
	OK    bool   `json:"ok"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

type validationJSON struct {
	Dir        string     `json:"dir"`
	OK         bool       `json:"ok"`
	Files      []fileJSON `json:"files"`
	References *fileJSON  `json:"references,omitempty"`
}

// RenderJSON outputs the result as JSON.
func (r *ValidationRenderer) RenderJSON(res ValidationResult) error {
	out := validationJSON{Dir: res.Dir, OK: res.OK(), Files: make([]fileJSON, 0, len(res.Files))}
	for _, f := range res.Files {
		fj := fileJSON{File: f.File, Rows: f.Rows, OK: f.OK()}
		if f.Err != nil {
			fj.Code = errors.GetCode(f.Err)
			fj.Error = errors.Message(f.Err)
		}
		out.Files = append(out.Files, fj)
	}
	if res.CrossErr != nil {
		out.References = &fileJSON{File: "references", Code: errors.GetCode(res.CrossErr), Error: errors.Message(res.CrossErr)}
	}

	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func rows(n int) string {
	if n == 1 {
		return "1 row"
	}
	return fmt.Sprintf("%d rows", n)
}
