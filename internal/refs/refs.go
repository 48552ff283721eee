package refs

import (
	"context"
	"fmt"

	"github.com/dshills/relnotes/internal/github"
)

// Source records how a Resolution obtained its SHA.
type Source int

const (
	// Passthrough means no tag matched and the input is used as-is.
	Passthrough Source = iota
	// FromTag means the input named a tag and SHA is the tag's target.
	FromTag
)

func (s Source) String() string {
	if s == FromTag {
		return "tag"
	}
	return "passthrough"
}

// Resolution is the outcome of resolving one reference.
type Resolution struct {
	Input  string
	SHA    string
	Source Source
}

// IsTag reports whether the input matched a tag name.
func (r Resolution) IsTag() bool { return r.Source == FromTag }

// TagLister lists every tag of a repository. Implementations must drain all
// pages before returning.
type TagLister interface {
	ListTags(ctx context.Context, owner, repo string) ([]github.Tag, error)
}

// Resolver maps references to SHAs using the repository's tags.
type Resolver struct {
	Tags TagLister
}

// Resolve looks ref up among the repository's tags. Tags are fetched on every
// call. An error is returned only when the tag listing itself fails.
func (r *Resolver) Resolve(ctx context.Context, owner, repo, ref string) (Resolution, error) {
	tags, err := r.Tags.ListTags(ctx, owner, repo)
	if err != nil {
		return Resolution{}, fmt.Errorf("resolving %q: %w", ref, err)
	}
	return Match(tags, ref), nil
}

// Match resolves ref against an already-fetched tag list.
func Match(tags []github.Tag, ref string) Resolution {
	for _, t := range tags {
		if t.Name == ref {
			return Resolution{Input: ref, SHA: t.SHA, Source: FromTag}
		}
	}
	return Resolution{Input: ref, SHA: ref, Source: Passthrough}
}
