package github

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	gh "github.com/google/go-github/v75/github"
)

// DefaultPerPage is the page size used for commit and tag listings.
// 100 is the maximum the REST API accepts.
const DefaultPerPage = 100

// Client reads commit history, tags and compare diffs through go-github.
type Client struct {
	api     *gh.Client
	perPage int
}

// TokenFromEnv returns the personal access token from GH_PAT or GITHUB_TOKEN.
func TokenFromEnv() string {
	if v := os.Getenv("GH_PAT"); v != "" {
		return v
	}
	return os.Getenv("GITHUB_TOKEN")
}

// NewClient creates a client authenticated with GH_PAT (or GITHUB_TOKEN).
// GITHUB_API_URL selects a GitHub Enterprise Server API root.
func NewClient(perPage int) (*Client, error) {
	token := TokenFromEnv()
	if token == "" {
		return nil, &authError{message: "GH_PAT environment variable is not set", missing: true}
	}

	api := gh.NewClient(nil).WithAuthToken(token)
	if base := os.Getenv("GITHUB_API_URL"); base != "" {
		var err error
		if api, err = api.WithEnterpriseURLs(base, base); err != nil {
			return nil, fmt.Errorf("invalid GITHUB_API_URL %q: %w", base, err)
		}
	}
	return newClient(api, perPage), nil
}

func newClient(api *gh.Client, perPage int) *Client {
	if perPage <= 0 || perPage > DefaultPerPage {
		perPage = DefaultPerPage
	}
	return &Client{api: api, perPage: perPage}
}

// Commit is a single entry of a repository's commit history.
type Commit struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
	// AuthorLogin is empty when GitHub could not link the commit to an account.
	AuthorLogin string `json:"authorLogin,omitempty"`
}

// Title returns the first line of the commit message, trimmed.
func (c Commit) Title() string {
	line, _, _ := strings.Cut(c.Message, "\n")
	return strings.TrimSpace(line)
}

// Tag is a named reference to a commit.
type Tag struct {
	Name string `json:"name"`
	SHA  string `json:"sha"`
}

// CommitPager walks a repository's commit history one page at a time,
// newest first.
type CommitPager struct {
	c           *Client
	owner, repo string
	page        int
	done        bool
}

// Commits returns a pager positioned at the first page of history.
func (c *Client) Commits(owner, repo string) *CommitPager {
	return &CommitPager{c: c, owner: owner, repo: repo}
}

// More reports whether another page can be fetched.
func (p *CommitPager) More() bool {
	return !p.done
}

// Next fetches the next page. It returns io.EOF once the last page has been
// consumed.
func (p *CommitPager) Next(ctx context.Context) ([]Commit, error) {
	if p.done {
		return nil, io.EOF
	}

	opts := &gh.CommitsListOptions{
		ListOptions: gh.ListOptions{Page: p.page, PerPage: p.c.perPage},
	}
	raw, resp, err := p.c.api.Repositories.ListCommits(ctx, p.owner, p.repo, opts)
	if err != nil {
		return nil, fmt.Errorf("listing commits: %w", classify(err))
	}

	commits := make([]Commit, len(raw))
	for i, rc := range raw {
		commits[i] = Commit{
			SHA:         rc.GetSHA(),
			Message:     rc.GetCommit().GetMessage(),
			AuthorLogin: rc.GetAuthor().GetLogin(),
		}
	}

	p.page = resp.NextPage
	p.done = resp.NextPage == 0
	return commits, nil
}

// ListTags returns every tag in the repository, following pagination to the
// last page.
func (c *Client) ListTags(ctx context.Context, owner, repo string) ([]Tag, error) {
	var tags []Tag
	opts := &gh.ListOptions{PerPage: c.perPage}
	for {
		raw, resp, err := c.api.Repositories.ListTags(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing tags: %w", classify(err))
		}
		for _, rt := range raw {
			tags = append(tags, Tag{Name: rt.GetName(), SHA: rt.GetCommit().GetSHA()})
		}
		if resp.NextPage == 0 {
			return tags, nil
		}
		opts.Page = resp.NextPage
	}
}

// CompareDiff fetches the unified diff for base...head. Every failure is
// returned as a *DiffError.
func (c *Client) CompareDiff(ctx context.Context, owner, repo, base, head string) (string, error) {
	diff, _, err := c.api.Repositories.CompareCommitsRaw(ctx, owner, repo, base, head, gh.RawOptions{Type: gh.Diff})
	if err != nil {
		if code, ok := statusCode(err); ok {
			return "", &DiffError{Kind: DiffStatus, StatusCode: code, Err: err}
		}
		return "", &DiffError{Kind: DiffTransport, Err: err}
	}
	if !utf8.ValidString(diff) {
		return "", &DiffError{Kind: DiffDecode, Err: fmt.Errorf("response is not valid UTF-8 (%d bytes)", len(diff))}
	}
	return diff, nil
}
