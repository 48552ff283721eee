package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/relnotes/internal/commitrange"
	"github.com/dshills/relnotes/internal/refs"
)

// JSONWriter outputs the range as a structured JSON document.
type JSONWriter struct{}

type jsonRef struct {
	Input  string `json:"input"`
	SHA    string `json:"sha"`
	Source string `json:"source"`
}

type jsonCommit struct {
	SHA    string `json:"sha"`
	Author string `json:"author,omitempty"`
	Title  string `json:"title"`
}

type jsonDiff struct {
	Base    string   `json:"base"`
	Head    string   `json:"head"`
	Lines   []string `json:"lines"`
	Omitted int      `json:"omitted"`
	Error   string   `json:"error,omitempty"`
}

type jsonResult struct {
	Owner     string       `json:"owner"`
	Repo      string       `json:"repo"`
	From      jsonRef      `json:"from"`
	To        jsonRef      `json:"to"`
	Found     bool         `json:"found"`
	Message   string       `json:"message,omitempty"`
	Commits   []jsonCommit `json:"commits"`
	Diff      *jsonDiff    `json:"diff,omitempty"`
	Ambiguous []string     `json:"ambiguous,omitempty"`
}

func (j *JSONWriter) Write(w io.Writer, r *commitrange.Result) error {
	data, err := json.MarshalIndent(toJSON(r), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}

func toJSON(r *commitrange.Result) jsonResult {
	out := jsonResult{
		Owner:     r.Owner,
		Repo:      r.Repo,
		From:      jsonRefOf(r.From),
		To:        jsonRefOf(r.To),
		Found:     r.Found,
		Commits:   []jsonCommit{},
		Ambiguous: r.Ambiguous,
	}
	if !r.Found {
		out.Message = commitrange.NotFoundMessage
		return out
	}

	for _, c := range r.Commits {
		out.Commits = append(out.Commits, jsonCommit{SHA: c.SHA, Author: c.AuthorLogin, Title: c.Title()})
	}

	d := &jsonDiff{Base: r.Base, Head: r.Head, Lines: []string{}}
	if r.DiffErr != nil {
		d.Error = r.DiffErr.Error()
	} else {
		shown, omitted := r.DiffLines()
		if shown != nil {
			d.Lines = shown
		}
		d.Omitted = omitted
	}
	out.Diff = d
	return out
}

func jsonRefOf(res refs.Resolution) jsonRef {
	return jsonRef{Input: res.Input, SHA: res.SHA, Source: res.Source.String()}
}
