package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter_Line_PrintsExactly(t *testing.T) {
	// Given: a writer with a buffer
	buf := &bytes.Buffer{}
	w := New(buf)

	// When: printing the audit summary
	w.Line("1 violation found.")

	// Then: nothing but the line itself is written
	assert.Equal(t, "1 violation found.\n", buf.String())
}

func TestWriter_Status_PrintsIconAndMessage(t *testing.T) {
	buf := &bytes.Buffer{}
	w := New(buf)

	w.Status("📄", "Wrote config")
	w.Status("", "continued")

	assert.Equal(t, "📄 Wrote config\n   continued\n", buf.String())
}

func TestWriter_Levels(t *testing.T) {
	tests := []struct {
		name  string
		write func(w *Writer)
		want  string
	}{
		{"success", func(w *Writer) { w.Successf("Wrote %d rows", 3) }, "✅ Wrote 3 rows\n"},
		{"success plain", func(w *Writer) { w.Success("Created") }, "✅ Created\n"},
		{"warning", func(w *Writer) { w.Warning("already exists") }, "⚠️  already exists\n"},
		{"status formatted", func(w *Writer) { w.Statusf("📁", "Location: %s", "/tmp/c.yaml") }, "📁 Location: /tmp/c.yaml\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.write(New(buf))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriter_Newline(t *testing.T) {
	buf := &bytes.Buffer{}

	New(buf).Newline()

	assert.Equal(t, "\n", buf.String())
}
