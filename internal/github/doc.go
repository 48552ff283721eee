// Package github reads a repository's commit history, tags and compare
// diffs through go-github.
//
// Commits are exposed through [CommitPager] so callers can consume history
// one page at a time; [Client.ListTags] always drains every page. Both follow
// the next page number go-github parses from the Link header.
// [Client.CompareDiff] requests the unified diff media type and classifies
// failures as transport, status or decode errors (see [DiffError]).
//
// The token is read from GH_PAT (falling back to GITHUB_TOKEN). [DetectRepo]
// opens the enclosing checkout with go-git and reads its origin remote.
package github
