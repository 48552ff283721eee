package notes

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dshills/relnotes/internal/cache"
	"github.com/dshills/relnotes/internal/providers"
	"github.com/dshills/relnotes/internal/redact"
)

// DefaultMaxTokens is used when Composer.MaxTokens is zero.
const DefaultMaxTokens = 4096

// ErrEmptyPrompt is returned by LoadSystemPrompt for a blank prompt file.
var ErrEmptyPrompt = errors.New("system prompt is empty")

// LoadSystemPrompt reads the system prompt from path.
func LoadSystemPrompt(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading system prompt %s: %w", path, err)
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", fmt.Errorf("%s: %w", path, ErrEmptyPrompt)
	}
	return prompt, nil
}

// Composer drafts release notes from commit-range lines.
type Composer struct {
	Completer    providers.Completer
	SystemPrompt string
	Model        string
	MaxTokens    int

	// Cache may be nil.
	Cache *cache.Cache

	Redact      bool
	RedactPaths []string

	// OutputFile, when set, receives the unredacted range text before the
	// provider is called.
	OutputFile string
}

// Notes is the outcome of one Compose call.
type Notes struct {
	Text       string
	TokensUsed int
	Cached     bool
}

// Prompt returns the user prompt for lines: the joined text, redacted if
// configured.
func (c *Composer) Prompt(lines []string) string {
	body := strings.Join(lines, "\n")
	if c.Redact {
		body = redact.Diff(body, c.RedactPaths)
	}
	return body
}

// Compose sends the range lines to the completion provider and returns the
// generated notes. A provider failure is returned as-is; no fallback text is
// produced.
func (c *Composer) Compose(ctx context.Context, lines []string) (Notes, error) {
	if c.OutputFile != "" {
		raw := strings.Join(lines, "\n") + "\n"
		if err := os.WriteFile(c.OutputFile, []byte(raw), 0o644); err != nil {
			return Notes{}, fmt.Errorf("writing output file: %w", err)
		}
	}

	prompt := c.Prompt(lines)
	key := cache.Key{
		Provider:     c.Completer.Name(),
		Model:        c.Model,
		SystemPrompt: c.SystemPrompt,
		Body:         prompt,
	}
	if e, ok := c.Cache.Lookup(key); ok {
		return Notes{Text: e.Notes, TokensUsed: e.TokensUsed, Cached: true}, nil
	}

	maxTokens := c.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	resp, err := c.Completer.Complete(ctx, providers.CompletionRequest{
		SystemPrompt: c.SystemPrompt,
		UserPrompt:   prompt,
		MaxTokens:    maxTokens,
	})
	if err != nil {
		return Notes{}, fmt.Errorf("%s completion: %w", c.Completer.Name(), err)
	}

	n := Notes{Text: strings.TrimSpace(resp.Content), TokensUsed: resp.TokensUsed}
	if n.Text != "" {
		_ = c.Cache.Store(key, cache.Entry{Notes: n.Text, TokensUsed: n.TokensUsed})
	}
	return n, nil
}
