package output

import (
	"fmt"
	"io"

	"github.com/dshills/relnotes/internal/commitrange"
)

// TextWriter prints the range as plain display lines.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, r *commitrange.Result) error {
	ew := &errWriter{w: w}
	for _, line := range r.Lines() {
		ew.println(line)
	}
	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
