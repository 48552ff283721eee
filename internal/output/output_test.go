package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/relnotes/internal/commitrange"
)

func TestGetWriter(t *testing.T) {
	for _, f := range []string{"", "text", "json", "markdown"} {
		if _, err := GetWriter(f); err != nil {
			t.Errorf("GetWriter(%q) error: %v", f, err)
		}
	}
	if _, err := GetWriter("sarif"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestWriteResult_ToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "range.txt")
	var stdout bytes.Buffer
	if err := WriteResult(&stdout, sampleResult(), "text", path); err != nil {
		t.Fatalf("WriteResult error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "Commits between v1.0.0") {
		t.Errorf("file content = %q", data)
	}
	if stdout.Len() != 0 {
		t.Errorf("nothing should be written to stdout, got %q", stdout.String())
	}
}

func TestWriteResult_Stdout(t *testing.T) {
	var stdout bytes.Buffer
	if err := WriteResult(&stdout, &commitrange.Result{}, "json", ""); err != nil {
		t.Fatalf("WriteResult error: %v", err)
	}
	if !strings.Contains(stdout.String(), `"found": false`) {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestWriteReleaseNotes(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReleaseNotes(&buf, "## Features\n- Added widgets"); err != nil {
		t.Fatalf("WriteReleaseNotes error: %v", err)
	}
	want := "=== RELEASE NOTES ===\n## Features\n- Added widgets\n=====================\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
