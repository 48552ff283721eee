package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

// Exit codes
const (
	ExitSuccess      = 0
	ExitUsageError   = 2
	ExitAuthError    = 3
	ExitRuntimeError = 4
)

var flagQuiet bool

var rootCmd = &cobra.Command{
	Use:   "relnotes",
	Short: "List commits between two references and draft release notes",
	Long: "relnotes fetches the commit history of a GitHub repository between two commits or tags,\n" +
		"prints the range with its diff, and can send it to an LLM provider to draft release notes.",
	SilenceUsage: true,
}

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.AddCommand(listCommitsCmd)
	rootCmd.AddCommand(releaseNotesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// fail reports err on stderr and records the exit code.
func fail(stderr io.Writer, code int, err error) {
	fmt.Fprintf(stderr, "Error: %v\n", err)
	exitCode = code
}

// progressf prints a progress line on stderr unless --quiet is set.
func progressf(stderr io.Writer, format string, args ...interface{}) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(stderr, format, args...)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print relnotes version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "relnotes version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output on stderr")
}
