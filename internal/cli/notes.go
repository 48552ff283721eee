package cli

import (
	"fmt"

	"github.com/dshills/relnotes/internal/commitrange"
	"github.com/dshills/relnotes/internal/notes"
	"github.com/dshills/relnotes/internal/output"
	"github.com/dshills/relnotes/internal/providers"
	"github.com/spf13/cobra"
)

// Release-notes flags
var (
	flagProvider     string
	flagModel        string
	flagSystemPrompt string
	flagOutputFile   string
	flagNoCache      bool
	flagNoRedact     bool
)

var releaseNotesCmd = &cobra.Command{
	Use:   "generate-release-notes",
	Short: "Draft release notes for the commits between two commits or tags",
	Long: "Run the same extraction as list-commits, send the commit list and diff to an LLM provider\n" +
		"and print the generated release notes.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

		cfg, ok := loadConfig(stderr)
		if !ok {
			return nil
		}
		if flagNoRedact {
			cfg.Privacy.RedactSecrets = false
			fmt.Fprintln(stderr, "WARNING: secret redaction is disabled")
		}
		if flagNoCache {
			cfg.Cache.Enabled = false
		}

		owner, repo, ok := targetRepo(stderr)
		if !ok {
			return nil
		}
		gh, ok := newGitHubClient(stderr, cfg)
		if !ok {
			return nil
		}

		completer, err := providers.New(cfg.Provider, cfg.Model)
		if err != nil {
			code := ExitUsageError
			if providers.IsAuthError(err) {
				code = ExitAuthError
			}
			fail(stderr, code, fmt.Errorf("creating provider: %w", err))
			return nil
		}
		systemPrompt, err := notes.LoadSystemPrompt(cfg.SystemPromptFile)
		if err != nil {
			fail(stderr, ExitUsageError, err)
			return nil
		}
		ch, err := openCache(cfg)
		if err != nil {
			fail(stderr, ExitRuntimeError, err)
			return nil
		}

		res, ok := extractRange(cmd.Context(), stderr, gh, cfg, owner, repo)
		if !ok {
			return nil
		}
		if !res.Found {
			fmt.Fprintln(stdout, commitrange.NotFoundMessage)
			return nil
		}

		composer := &notes.Composer{
			Completer:    completer,
			SystemPrompt: systemPrompt,
			Model:        cfg.Model,
			MaxTokens:    cfg.MaxTokens,
			Cache:        ch,
			Redact:       cfg.Privacy.RedactSecrets,
			RedactPaths:  cfg.Privacy.RedactPaths,
			OutputFile:   flagOutputFile,
		}

		progressf(stderr, "Generating release notes with %s (%s)...\n", completer.Name(), cfg.Model)
		generated, err := composer.Compose(cmd.Context(), res.Lines())
		if err != nil {
			code := ExitRuntimeError
			if providers.IsAuthError(err) {
				code = ExitAuthError
			}
			fail(stderr, code, err)
			return nil
		}

		switch {
		case generated.Cached:
			progressf(stderr, "Using cached release notes (%d tokens when generated)\n", generated.TokensUsed)
		case generated.TokensUsed > 0:
			progressf(stderr, "Provider reported %d tokens used\n", generated.TokensUsed)
		}

		if err := output.WriteReleaseNotes(stdout, generated.Text); err != nil {
			fail(stderr, ExitRuntimeError, fmt.Errorf("writing output: %w", err))
		}
		return nil
	},
}

func init() {
	addRangeFlags(releaseNotesCmd)
	releaseNotesCmd.Flags().StringVar(&flagOutputFile, "output-file", "", "Write the unredacted commit and diff text to this file before calling the provider")
	releaseNotesCmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (openai, anthropic, gemini, ollama)")
	releaseNotesCmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	releaseNotesCmd.Flags().StringVar(&flagSystemPrompt, "system-prompt", "", "System prompt file")
	releaseNotesCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Do not read or write cached release notes")
	releaseNotesCmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
}
