package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/relnotes/internal/commitrange"
	"github.com/dshills/relnotes/internal/github"
)

func TestJSONWriter_Found(t *testing.T) {
	var buf bytes.Buffer
	w := &JSONWriter{}
	if err := w.Write(&buf, sampleResult()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	var got jsonResult
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !got.Found {
		t.Error("found should be true")
	}
	if got.From.Source != "tag" || got.To.Source != "passthrough" {
		t.Errorf("sources = %q/%q", got.From.Source, got.To.Source)
	}
	if len(got.Commits) != 2 || got.Commits[0].Title != "Add *fast* path" {
		t.Errorf("commits = %+v", got.Commits)
	}
	if got.Commits[1].Author != "" {
		t.Errorf("missing author should stay empty, got %q", got.Commits[1].Author)
	}
	if got.Diff == nil || len(got.Diff.Lines) != 2 || got.Diff.Omitted != 0 {
		t.Errorf("diff = %+v", got.Diff)
	}
}

func TestJSONWriter_Truncated(t *testing.T) {
	r := sampleResult()
	r.Diff = strings.Repeat("+line\n", commitrange.DefaultDiffLineLimit+7)

	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, r); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	var got jsonResult
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got.Diff.Lines) != commitrange.DefaultDiffLineLimit || got.Diff.Omitted != 7 {
		t.Errorf("lines=%d omitted=%d", len(got.Diff.Lines), got.Diff.Omitted)
	}
}

func TestJSONWriter_NotFound(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, &commitrange.Result{}); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	var got jsonResult
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Found || got.Message != commitrange.NotFoundMessage || got.Diff != nil {
		t.Errorf("got %+v", got)
	}
}

func TestJSONWriter_DiffError(t *testing.T) {
	r := sampleResult()
	r.DiffErr = &github.DiffError{Kind: github.DiffDecode, Err: errors.New("bad bytes")}

	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, r); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	var got jsonResult
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Diff == nil || got.Diff.Error == "" || len(got.Diff.Lines) != 0 {
		t.Errorf("diff = %+v", got.Diff)
	}
}
