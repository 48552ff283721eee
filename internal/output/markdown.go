package output

import (
	"io"
	"strings"

	"github.com/dshills/relnotes/internal/commitrange"
)

// MarkdownWriter outputs a changelog-friendly markdown summary of the range.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, r *commitrange.Result) error {
	ew := &errWriter{w: w}

	if !r.Found {
		ew.printf("> %s\n", commitrange.NotFoundMessage)
		return ew.err
	}

	ew.printf("## Changes from `%s` to `%s`\n\n", r.From.Input, r.To.Input)
	ew.printf("%d commits in %s/%s (`%s`...`%s`)\n\n", len(r.Commits), r.Owner, r.Repo, shortSHA(r.Base), shortSHA(r.Head))

	for _, c := range r.Commits {
		author := c.AuthorLogin
		if author == "" {
			author = "Unknown"
		} else {
			author = "@" + author
		}
		title := c.Title()
		if title == "" {
			title = "No message"
		}
		ew.printf("- `%s` %s (%s)\n", shortSHA(c.SHA), escapeMarkdown(title), author)
	}
	ew.println("")

	if r.DiffErr != nil {
		ew.printf("**Failed to fetch diff:** %s\n", r.DiffErr.Error())
		return ew.err
	}

	shown, omitted := r.DiffLines()
	ew.println("<details>")
	ew.println("<summary>Diff</summary>")
	ew.println("")
	ew.println("```diff")
	if len(shown) == 0 {
		ew.println("(no changes)")
	}
	for _, line := range shown {
		ew.println(line)
	}
	ew.println("```")
	if omitted > 0 {
		ew.printf("\n*%d more lines in diff*\n", omitted)
	}
	ew.println("</details>")
	return ew.err
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

var mdEscaper = strings.NewReplacer("*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`)

func escapeMarkdown(s string) string {
	return mdEscaper.Replace(s)
}
