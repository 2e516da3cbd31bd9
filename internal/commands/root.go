// Package commands provides CLI commands for finchat.
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	apierrors "github.com/diogo/finchat/internal/errors"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// NewRootCmd builds the command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	if deps == nil {
		deps = NewDependencies()
	}

	flags := &globalFlags{}
	var (
		outputFlag string
		fileFlag   string
		rawFlag    bool
	)

	rootCmd := &cobra.Command{
		Use:   "finchat [message]",
		Short: "Investing basics and live stock quotes in your terminal",
		Long: `finchat answers common investing questions from a built-in knowledge table
and looks up live stock quotes with a monthly price chart.

Examples:
  finchat chat                          Start interactive chat
  finchat config                        Configure settings
  finchat knowledge                     List everything finchat knows about
  finchat "what is an etf"              Ask a single question
  finchat "stock AAPL"                  Live quote and chart
  finchat -f question.txt               Read message from file
  echo "stock msft" | finchat           Read message from stdin
  finchat "stock AAPL" -o aapl.md       Save the exchange to a file`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(cmd.OutOrStdout(), "finchat %s (built %s)\n", Version, BuildTime)
				return nil
			}

			opts := queryOptions{
				output: outputFlag,
				raw:    rawFlag || !isStdoutTTY(),
			}

			if fileFlag != "" {
				data, err := os.ReadFile(fileFlag)
				if err != nil {
					return fmt.Errorf("failed to read file: %w", err)
				}
				return runQuery(cmd, deps, flags, string(data), opts)
			}

			if len(args) > 0 {
				return runQuery(cmd, deps, flags, args[0], opts)
			}

			if hasStdin(cmd.InOrStdin()) {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				return runQuery(cmd, deps, flags, string(data), opts)
			}

			// No input - show help
			return cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.apiKey, "api-key", "", "Market data API key (overrides config and environment)")
	pf.StringVar(&flags.baseURL, "base-url", "", "Market data API base URL")
	pf.StringVarP(&flags.knowledgeFile, "knowledge", "k", "", "YAML file with extra knowledge entries")
	pf.BoolVar(&flags.verbose, "verbose", false, "Log debug output to stderr")

	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save the exchange to a file (.json or markdown)")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read message from file")
	rootCmd.Flags().BoolVar(&rawFlag, "raw", false, "Print plain text without styling or chart")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(NewChatCmd(deps, flags))
	rootCmd.AddCommand(NewConfigCmd(deps))
	rootCmd.AddCommand(NewKnowledgeCmd(flags))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd(nil).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Error"))
		os.Exit(1)
	}
}

// hasStdin reports whether r is piped input rather than a terminal
func hasStdin(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return r != nil
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// formatErrorMessage formats an error with additional context from structured errors
func formatErrorMessage(err error, context string) string {
	if err == nil {
		return ""
	}

	errorStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s: %v", context, err)))

	if status := apierrors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	if endpoint := apierrors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	if body := apierrors.GetResponseBody(err); body != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n\n  %s", strings.ReplaceAll(body, "\n", "\n  "))))
	} else {
		switch {
		case apierrors.IsRateLimitError(err):
			sb.WriteString(dimStyle.Render("\n  Hint: The free API tier allows a few calls per minute. Wait and retry"))
		case apierrors.IsNetworkError(err):
			sb.WriteString(dimStyle.Render("\n  Hint: Check your internet connection and try again"))
		case strings.Contains(err.Error(), "API key"):
			sb.WriteString(dimStyle.Render("\n  Hint: Set FINCHAT_API_KEY or run 'finchat config'"))
		case strings.Contains(err.Error(), "knowledge file"):
			sb.WriteString(dimStyle.Render("\n  Hint: The file needs an \"entries\" list of trigger and answer pairs"))
		}
	}

	return sb.String()
}
