package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/finchat/internal/render"
	"github.com/diogo/finchat/internal/tui"
)

// NewChatCmd creates the interactive chat command
func NewChatCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session.

Ask investing questions or type "stock <SYMBOL>" for a live quote and chart.
Type /help for commands, /export <file> to save the transcript,
and 'exit', 'quit', or Ctrl+C to end the session.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, deps, flags, outputFlag)
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save the transcript to a file on exit")

	return cmd
}

func runChat(cmd *cobra.Command, deps *Dependencies, flags *globalFlags, output string) error {
	stderr := cmd.ErrOrStderr()

	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal, so logs go to the file only
	logger := newLogger(cfg, false, stderr)
	defer func() { _ = logger.Sync() }()

	kb, err := loadKnowledge(cfg, logger, stderr)
	if err != nil {
		return err
	}

	resolver, err := newResolver(deps, cfg, kb, logger)
	if err != nil {
		return err
	}

	if applyTheme(cfg) {
		tui.UpdateTheme()
	}

	log, err := deps.TUI.RunChat(cmd.Context(), resolver, tui.ChatOptions{
		Render:    render.OptionsFromMarkdown(cfg.Markdown),
		Knowledge: kb,
		Logger:    logger.Named("tui"),
	})
	if err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}

	if output != "" && log != nil && log.Len() > 0 {
		if err := log.ExportToFile(output); err != nil {
			return err
		}
		fmt.Fprintln(stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render(
			fmt.Sprintf("✓ Transcript saved to %s", output),
		))
	}

	return nil
}
