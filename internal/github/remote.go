package github

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	git "github.com/go-git/go-git/v5"
)

var (
	httpsRemoteRe = regexp.MustCompile(`https?://[^/]+/([^/]+)/([^/\s]+)`)
	sshRemoteRe   = regexp.MustCompile(`[^@]+@[^:]+:([^/]+)/([^/\s]+)`)
)

// DetectRepo parses owner/repo from the origin remote of the git repository
// containing dir. Linked worktrees and submodules, whose .git is a file
// pointing elsewhere, are followed to the repository that holds the config.
func DetectRepo(dir string) (owner, repo string, err error) {
	r, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return "", "", fmt.Errorf("cannot detect repo: %s is not inside a git repository", dir)
	}
	if err != nil {
		return "", "", fmt.Errorf("cannot detect repo: %w", err)
	}

	origin, err := r.Remote("origin")
	if err != nil {
		return "", "", fmt.Errorf("cannot detect repo: no origin remote: %w", err)
	}
	urls := origin.Config().URLs
	if len(urls) == 0 {
		return "", "", errors.New("cannot detect repo: origin remote has no URL")
	}
	return ParseRemoteURL(urls[0])
}

// ParseRemoteURL extracts owner/repo from a git remote URL.
func ParseRemoteURL(url string) (owner, repo string, err error) {
	url = strings.TrimSuffix(strings.TrimSpace(url), ".git")

	if m := httpsRemoteRe.FindStringSubmatch(url); len(m) == 3 {
		return m[1], m[2], nil
	}
	if m := sshRemoteRe.FindStringSubmatch(url); len(m) == 3 {
		return m[1], m[2], nil
	}
	return "", "", fmt.Errorf("cannot parse owner/repo from remote URL: %s", url)
}
