package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dshills/relnotes/internal/config"
	"github.com/dshills/relnotes/internal/providers"
	"github.com/spf13/cobra"
)

// doctorTimeout bounds the credential check only; release-note generation
// has no timeout of its own.
const doctorTimeout = 30 * time.Second

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List suggested models and check provider credentials",
}

// knownModels are suggestions for `relnotes config set model`. Any model the
// provider accepts works.
var knownModels = []struct {
	Provider string
	Models   []string
}{
	{"anthropic", []string{"claude-sonnet-4-6", "claude-opus-4-6", "claude-haiku-4-5"}},
	{"openai", []string{"gpt-5.2", "gpt-4.1", "gpt-4.1-mini", "gpt-4o", "gpt-4o-mini"}},
	{"gemini", []string{"gemini-3-flash-preview", "gemini-3-pro-preview", "gemini-2.5-flash", "gemini-2.5-pro"}},
	{"ollama", []string{"llama3.3", "llama3.2", "mistral", "qwen2.5"}},
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List suggested models per provider; * marks the configured one",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(nil)
		if err != nil {
			return err
		}
		printModels(cmd.OutOrStdout(), cfg.Provider, cfg.Model)
		return nil
	},
}

func printModels(w io.Writer, provider, model string) {
	for _, p := range knownModels {
		fmt.Fprintf(w, "%s:\n", p.Provider)
		for _, m := range p.Models {
			mark := " "
			if p.Provider == provider && m == model {
				mark = "*"
			}
			fmt.Fprintf(w, " %s %s\n", mark, m)
		}
	}
}

var modelsDoctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Send one short completion to the configured provider",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Checking %s (%s)...\n", cfg.Provider, cfg.Model)

		resp, err := checkProvider(cmd.Context(), cfg)
		if err != nil {
			fmt.Fprintf(stderr, "FAIL: %v\n", err)
			return nil
		}
		fmt.Fprintf(stdout, "OK: %s answered (%d tokens)\n", cfg.Provider, resp.TokensUsed)
		return nil
	},
}

// checkProvider sets exitCode on failure: auth problems map to ExitAuthError,
// a bad provider or model to ExitUsageError, anything else to ExitRuntimeError.
func checkProvider(ctx context.Context, cfg config.Config) (providers.CompletionResponse, error) {
	p, err := providers.New(cfg.Provider, cfg.Model)
	if err != nil {
		exitCode = ExitUsageError
		if providers.IsAuthError(err) {
			exitCode = ExitAuthError
		}
		return providers.CompletionResponse{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, doctorTimeout)
	defer cancel()
	resp, err := p.Complete(ctx, providers.CompletionRequest{
		SystemPrompt: "Reply with the single word: ok",
		UserPrompt:   "Commits between v0.0.1 (a) and v0.0.2 (b):\n- b by relnotes : Health check",
		MaxTokens:    10,
	})
	if err != nil {
		exitCode = ExitRuntimeError
		if providers.IsAuthError(err) {
			exitCode = ExitAuthError
		}
	}
	return resp, err
}

func init() {
	modelsCmd.AddCommand(modelsListCmd, modelsDoctorCmd)
	modelsDoctorCmd.Flags().StringVar(&flagProvider, "provider", "", "Provider to check")
	modelsDoctorCmd.Flags().StringVar(&flagModel, "model", "", "Model to check")
}
