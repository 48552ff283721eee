package output

import (
	"fmt"
	"io"
	"os"

	"github.com/dshills/relnotes/internal/commitrange"
)

const (
	notesBanner = "=== RELEASE NOTES ==="
	notesFooter = "====================="
)

// Writer writes a commit range in a specific format.
type Writer interface {
	Write(w io.Writer, r *commitrange.Result) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "", "text":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "markdown":
		return &MarkdownWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteResult writes the range to outPath, or to stdout when outPath is empty.
func WriteResult(stdout io.Writer, r *commitrange.Result, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	w := stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	return writer.Write(w, r)
}

// WriteReleaseNotes prints generated notes between the opening banner and
// the closing rule.
func WriteReleaseNotes(w io.Writer, notes string) error {
	ew := &errWriter{w: w}
	ew.println(notesBanner)
	ew.println(notes)
	ew.println(notesFooter)
	return ew.err
}
