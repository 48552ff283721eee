package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/dshills/relnotes/internal/commitrange"
	"github.com/dshills/relnotes/internal/config"
	"github.com/dshills/relnotes/internal/github"
	"github.com/dshills/relnotes/internal/output"
	"github.com/dshills/relnotes/internal/refs"
	"github.com/spf13/cobra"
)

// Shared range flags
var (
	flagOwner         string
	flagRepo          string
	flagFrom          string
	flagTo            string
	flagDiffLines     int
	flagStopWhenFound bool
	flagFormat        string
	flagOut           string
)

func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagOwner, "owner", "o", "", "Repository owner (default: from the origin remote)")
	cmd.Flags().StringVarP(&flagRepo, "repo", "r", "", "Repository name (default: from the origin remote)")
	cmd.Flags().StringVarP(&flagFrom, "from", "f", "", "Starting commit SHA, SHA prefix or tag")
	cmd.Flags().StringVarP(&flagTo, "to", "t", "", "Ending commit SHA, SHA prefix or tag")
	cmd.Flags().IntVar(&flagDiffLines, "diff-lines", 0, "Maximum number of diff lines to print")
	cmd.Flags().BoolVar(&flagStopWhenFound, "stop-when-found", false, "Stop paging history once both references are located")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagSystemPrompt != "" {
		m["systemPromptFile"] = flagSystemPrompt
	}
	if flagDiffLines > 0 {
		m["diffLineLimit"] = strconv.Itoa(flagDiffLines)
	}
	if flagStopWhenFound {
		m["searchAsYouPage"] = "true"
	}
	return m
}

// loadConfig returns the effective config or reports a usage error.
func loadConfig(stderr io.Writer) (config.Config, bool) {
	cfg, err := config.Load(buildOverrides())
	if err != nil {
		fail(stderr, ExitUsageError, err)
		return config.Config{}, false
	}
	return cfg, true
}

// targetRepo returns the repository named by --owner/--repo, filling in
// whatever is missing from the origin remote of the current checkout.
func targetRepo(stderr io.Writer) (string, string, bool) {
	owner, repo := flagOwner, flagRepo
	if owner != "" && repo != "" {
		return owner, repo, true
	}

	detectedOwner, detectedRepo, err := github.DetectRepo(".")
	if err != nil {
		fail(stderr, ExitUsageError, fmt.Errorf("%w\nUse --owner and --repo flags to specify the repository", err))
		return "", "", false
	}
	if owner == "" {
		owner = detectedOwner
	}
	if repo == "" {
		repo = detectedRepo
	}
	return owner, repo, true
}

func newGitHubClient(stderr io.Writer, cfg config.Config) (*github.Client, bool) {
	gh, err := github.NewClient(cfg.PerPage)
	if err != nil {
		code := ExitUsageError
		if github.IsAuthError(err) {
			code = ExitAuthError
		}
		fail(stderr, code, err)
		return nil, false
	}
	return gh, true
}

// extractRange runs the extraction and reports upstream failures.
func extractRange(ctx context.Context, stderr io.Writer, gh *github.Client, cfg config.Config, owner, repo string) (*commitrange.Result, bool) {
	progressf(stderr, "Fetching commits %s..%s from %s/%s...\n", flagFrom, flagTo, owner, repo)

	ex := commitrange.New(gh, cfg.DiffLineLimit, cfg.SearchAsYouPage)
	res, err := ex.Extract(ctx, owner, repo, flagFrom, flagTo)
	if err != nil {
		code := ExitRuntimeError
		switch {
		case github.IsAuthError(err):
			code = ExitAuthError
		case github.IsNotFound(err):
			code = ExitUsageError
			err = fmt.Errorf("repository %s/%s not found", owner, repo)
		case errors.Is(err, commitrange.ErrEmptyRef):
			code = ExitUsageError
		}
		fail(stderr, code, err)
		return nil, false
	}

	for _, r := range []refs.Resolution{res.From, res.To} {
		if r.IsTag() {
			progressf(stderr, "Tag %s is commit %s\n", r.Input, r.SHA)
		}
	}

	for _, input := range res.Ambiguous {
		fmt.Fprintf(stderr, "Warning: %q matches more than one commit; using the newest\n", input)
	}
	if res.Found {
		progressf(stderr, "Scanned %d commits, %d in range\n", res.Scanned, res.Span.Len())
	}
	return res, true
}

var listCommitsCmd = &cobra.Command{
	Use:   "list-commits",
	Short: "List commits and the diff between two commits or tags",
	Long: "Print every commit between --from and --to (inclusive, newest first) followed by the\n" +
		"compare diff between the two endpoints. A reference may be a full SHA, a SHA prefix or a tag name.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

		cfg, ok := loadConfig(stderr)
		if !ok {
			return nil
		}
		owner, repo, ok := targetRepo(stderr)
		if !ok {
			return nil
		}
		gh, ok := newGitHubClient(stderr, cfg)
		if !ok {
			return nil
		}

		res, ok := extractRange(cmd.Context(), stderr, gh, cfg, owner, repo)
		if !ok {
			return nil
		}

		if err := output.WriteResult(stdout, res, cfg.Format, flagOut); err != nil {
			fail(stderr, ExitRuntimeError, fmt.Errorf("writing output: %w", err))
		}
		return nil
	},
}

func init() {
	addRangeFlags(listCommitsCmd)
	listCommitsCmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json, markdown)")
	listCommitsCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
}
