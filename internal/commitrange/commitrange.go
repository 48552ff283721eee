package commitrange

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/relnotes/internal/github"
	"github.com/dshills/relnotes/internal/refs"
)

const (
	// NotFoundMessage is the only line produced when a reference matches no commit.
	NotFoundMessage = "Could not find one or both of the specified commit references."

	// DefaultDiffLineLimit caps the number of diff lines rendered.
	DefaultDiffLineLimit = 50

	unknownAuthor = "Unknown"
	noMessage     = "No message"
)

// ErrEmptyRef is returned by Extract when either reference is blank.
var ErrEmptyRef = errors.New("both references must be non-empty")

// Pager yields newest-first pages of commit history.
type Pager interface {
	More() bool
	Next(ctx context.Context) ([]github.Commit, error)
}

// DiffSource fetches the unified diff for base...head.
type DiffSource interface {
	CompareDiff(ctx context.Context, owner, repo, base, head string) (string, error)
}

// Extractor locates a commit range in a repository's history.
type Extractor struct {
	Resolver *refs.Resolver
	Pages    func(owner, repo string) Pager
	Diffs    DiffSource

	// DiffLineLimit caps rendered diff lines; zero means DefaultDiffLineLimit.
	DiffLineLimit int
	// StopWhenFound ends paging once both references are located.
	StopWhenFound bool
}

// New wires an Extractor to a GitHub client.
func New(gh *github.Client, diffLineLimit int, stopWhenFound bool) *Extractor {
	return &Extractor{
		Resolver:      &refs.Resolver{Tags: gh},
		Pages:         func(owner, repo string) Pager { return gh.Commits(owner, repo) },
		Diffs:         gh,
		DiffLineLimit: diffLineLimit,
		StopWhenFound: stopWhenFound,
	}
}

// Span is an inclusive index range into newest-first history; Start <= End.
type Span struct {
	Start int
	End   int
}

// Len returns the number of commits covered.
func (s Span) Len() int { return s.End - s.Start + 1 }

// Result is the outcome of Extract.
type Result struct {
	Owner string
	Repo  string
	From  refs.Resolution
	To    refs.Resolution

	// Found is false when either reference matched no commit. All fields
	// below are zero in that case.
	Found   bool
	Span    Span
	Commits []github.Commit

	// Base is the older endpoint, Head the newer.
	Base string
	Head string

	Diff    string
	DiffErr error

	// Ambiguous lists inputs whose SHA prefix matched more than one loaded commit.
	Ambiguous []string
	// Scanned is the number of commits loaded while searching.
	Scanned int

	diffLineLimit int
}

// Extract resolves both references, pages through history, slices the
// inclusive range and fetches the endpoint diff. Failures listing tags or
// commits are returned; a missing reference or a failed diff is not.
func (e *Extractor) Extract(ctx context.Context, owner, repo, from, to string) (*Result, error) {
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return nil, ErrEmptyRef
	}

	fromRes, err := e.Resolver.Resolve(ctx, owner, repo, from)
	if err != nil {
		return nil, err
	}
	toRes, err := e.Resolver.Resolve(ctx, owner, repo, to)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Owner:         owner,
		Repo:          repo,
		From:          fromRes,
		To:            toRes,
		diffLineLimit: e.lineLimit(),
	}

	history, err := e.collect(ctx, owner, repo, fromRes.SHA, toRes.SHA)
	if err != nil {
		return nil, err
	}
	res.Scanned = len(history)

	fromIdx := locate(history, fromRes.SHA)
	toIdx := locate(history, toRes.SHA)
	if fromIdx < 0 || toIdx < 0 {
		return res, nil
	}

	res.Found = true
	res.Span = Span{Start: min(fromIdx, toIdx), End: max(fromIdx, toIdx)}
	res.Commits = history[res.Span.Start : res.Span.End+1]
	res.Head = history[res.Span.Start].SHA
	res.Base = history[res.Span.End].SHA

	for _, r := range []refs.Resolution{fromRes, toRes} {
		if ambiguous(history, r.SHA) && !contains(res.Ambiguous, r.Input) {
			res.Ambiguous = append(res.Ambiguous, r.Input)
		}
	}

	res.Diff, res.DiffErr = e.Diffs.CompareDiff(ctx, owner, repo, res.Base, res.Head)
	return res, nil
}

func (e *Extractor) lineLimit() int {
	if e.DiffLineLimit > 0 {
		return e.DiffLineLimit
	}
	return DefaultDiffLineLimit
}

// collect pages history into memory. With StopWhenFound it returns as soon
// as both SHAs appear in the loaded prefix.
func (e *Extractor) collect(ctx context.Context, owner, repo, fromSHA, toSHA string) ([]github.Commit, error) {
	pager := e.Pages(owner, repo)

	var history []github.Commit
	for pager.More() {
		page, err := pager.Next(ctx)
		if err != nil {
			return nil, err
		}
		history = append(history, page...)

		if e.StopWhenFound && locate(history, fromSHA) >= 0 && locate(history, toSHA) >= 0 {
			break
		}
	}
	return history, nil
}

// locate returns the first index whose SHA equals sha or starts with it.
func locate(history []github.Commit, sha string) int {
	for i, c := range history {
		if c.SHA == sha || strings.HasPrefix(c.SHA, sha) {
			return i
		}
	}
	return -1
}

func ambiguous(history []github.Commit, sha string) bool {
	n := 0
	for _, c := range history {
		if c.SHA == sha {
			return false
		}
		if strings.HasPrefix(c.SHA, sha) {
			n++
		}
	}
	return n > 1
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// DiffLines splits the diff and applies the line cap. omitted is the number
// of lines cut. A whitespace-only diff has no lines; otherwise only the single
// terminating newline is dropped, so trailing blank lines still count.
func (r *Result) DiffLines() (shown []string, omitted int) {
	if strings.TrimSpace(r.Diff) == "" {
		return nil, 0
	}
	lines := strings.Split(strings.TrimSuffix(r.Diff, "\n"), "\n")
	limit := r.diffLineLimit
	if limit <= 0 {
		limit = DefaultDiffLineLimit
	}
	if len(lines) <= limit {
		return lines, 0
	}
	return lines[:limit], len(lines) - limit
}

// Header is the first line of a found range.
func (r *Result) Header() string {
	return fmt.Sprintf("Commits between %s (%s) and %s (%s):", r.From.Input, r.From.SHA, r.To.Input, r.To.SHA)
}

// CommitLine renders one commit of the range.
func CommitLine(c github.Commit) string {
	author := c.AuthorLogin
	if author == "" {
		author = unknownAuthor
	}
	title := c.Title()
	if title == "" {
		title = noMessage
	}
	return fmt.Sprintf("- %s by %s : %s", c.SHA, author, title)
}

// Lines renders the result as display lines.
func (r *Result) Lines() []string {
	if !r.Found {
		return []string{NotFoundMessage}
	}

	lines := make([]string, 0, len(r.Commits)+r.diffLineLimit+4)
	lines = append(lines, r.Header())
	for _, c := range r.Commits {
		lines = append(lines, CommitLine(c))
	}

	lines = append(lines, "")
	if r.DiffErr != nil {
		return append(lines, fmt.Sprintf("Failed to fetch diff: %v", r.DiffErr))
	}

	lines = append(lines, fmt.Sprintf("Diff %s...%s:", r.Base, r.Head))
	shown, omitted := r.DiffLines()
	if len(shown) == 0 {
		return append(lines, "(no changes)")
	}
	lines = append(lines, shown...)
	if omitted > 0 {
		lines = append(lines, fmt.Sprintf("... (%d more lines in diff)", omitted))
	}
	return lines
}
