package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/diogo/finchat/internal/history"
	"github.com/diogo/finchat/internal/models"
	"github.com/diogo/finchat/internal/render"
)

// Gradient colors for animation
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#9ece6a"), // Green
	lipgloss.Color("#73daca"), // Teal
	lipgloss.Color("#7dcfff"), // Cyan
	lipgloss.Color("#7aa2f7"), // Blue
	lipgloss.Color("#bb9af7"), // Purple
	lipgloss.Color("#e0af68"), // Gold
}

var (
	colorText     = lipgloss.Color("#c0caf5")
	colorTextDim  = lipgloss.Color("#565f89")
	colorTextMute = lipgloss.Color("#3b4261")
	colorSuccess  = lipgloss.Color("#9ece6a")
	colorError    = lipgloss.Color("#f7768e")
)

// spinner handles the animated loading indicator
type spinner struct {
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool // Flag to prevent double-close
}

// newSpinner creates a new animated spinner
func newSpinner(message string) *spinner {
	return &spinner{
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(os.Stderr, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(os.Stderr, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current animation frame
func (s *spinner) render() {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	bars := []rune("▁▂▃▄▅▆▇█▇▆▅▄▃▂")

	spinColor := gradientColors[s.frame%len(gradientColors)]
	spinnerChar := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[s.frame%len(chars)])

	// A scrolling price line
	var bar strings.Builder
	for i := 0; i < 16; i++ {
		style := lipgloss.NewStyle().Foreground(gradientColors[(i+s.frame)%len(gradientColors)])
		bar.WriteString(style.Render(string(bars[(i+s.frame)%len(bars)])))
	}

	var dots strings.Builder
	numDots := (s.frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			dots.WriteString(lipgloss.NewStyle().Foreground(gradientColors[(s.frame+i)%len(gradientColors)]).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}

	msg := lipgloss.NewStyle().Foreground(colorText).Render(s.message)

	fmt.Fprintf(os.Stderr, "\r\033[K%s %s %s %s", spinnerChar, bar.String(), msg, dots.String())
}

// stopOnce safely closes the stop channel only once
func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// stopWithSuccess stops the spinner and shows success message
func (s *spinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done

	checkmark := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("✓")
	msg := lipgloss.NewStyle().Foreground(colorSuccess).Render(message)
	fmt.Fprintf(os.Stderr, "%s %s\n", checkmark, msg)
}

// stopWithError stops the spinner and shows error
func (s *spinner) stopWithError() {
	s.stopOnce()
	<-s.done
}

// queryOptions are the one-shot flags
type queryOptions struct {
	output string
	raw    bool
}

// runQuery answers a single message and prints the reply.
// In raw mode only plain text is written to stdout.
func runQuery(cmd *cobra.Command, deps *Dependencies, flags *globalFlags, input string, opts queryOptions) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return fmt.Errorf("message cannot be empty")
	}

	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	applyTheme(cfg)

	logger := newLogger(cfg, !opts.raw, stderr)
	defer func() { _ = logger.Sync() }()

	kb, err := loadKnowledge(cfg, logger, stderr)
	if err != nil {
		return err
	}

	var spin *spinner
	if !opts.raw {
		spin = newSpinner("Looking that up")
		spin.start()
	}

	resolver, err := newResolver(deps, cfg, kb, logger)
	if err != nil {
		if !opts.raw {
			spin.stopWithError()
			fmt.Fprintln(stderr, formatErrorMessage(err, "Setup failed"))
		}
		return err
	}

	startTime := time.Now()
	resp := resolver.Resolve(cmd.Context(), input)
	requestDuration := time.Since(startTime)

	if !opts.raw {
		spin.stopWithSuccess("Done")
	}

	logger.Info("query answered",
		zap.Duration("elapsed", requestDuration),
		zap.Bool("chart", resp.HasChart()))
	if cfg.Verbose && !opts.raw {
		fmt.Fprintf(stderr, "[verbose] Request took %s\n", requestDuration.Round(time.Millisecond))
	}

	if opts.output != "" {
		log := history.NewLog()
		log.Append(models.NewUserEntry(input))
		log.Append(models.NewAssistantEntry(resp))
		if err := log.ExportToFile(opts.output); err != nil {
			return err
		}
		if !opts.raw {
			fmt.Fprintln(stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render(
				fmt.Sprintf("✓ Response saved to %s", opts.output),
			))
		}
		return nil
	}

	if opts.raw {
		fmt.Fprint(stdout, formatRaw(resp))
		return nil
	}

	if cfg.CopyToClipboard {
		copyToClipboard(resp.Text, stderr)
	}

	fmt.Fprintln(stdout, formatDecorated(resp, getTerminalWidth(), render.OptionsFromMarkdown(cfg.Markdown)))
	return nil
}

// formatRaw is the plain text reply: answer, then the series as a table
func formatRaw(resp models.Response) string {
	var sb strings.Builder
	sb.WriteString(resp.Text)
	sb.WriteString("\n")
	if resp.HasChart() {
		sb.WriteString("\n")
		sb.WriteString(render.Table(resp.Chart))
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatDecorated renders the answer as markdown inside a bubble with the chart below it
func formatDecorated(resp models.Response, termWidth int, opts render.Options) string {
	bubbleWidth := termWidth - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}
	contentWidth := bubbleWidth - 4

	theme := render.GetTUITheme()
	body := render.Answer(resp.Text, opts.WithWidth(contentWidth))
	if resp.HasChart() {
		chartOpts := render.DefaultChartOptions()
		chartOpts.Width = contentWidth
		chartOpts.Theme = theme
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", render.Chart(resp.Chart, chartOpts))
	}

	label := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("◆ finchat")
	bubble := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Foreground(theme.Text).
		Padding(0, 1).
		MarginTop(1).
		MarginBottom(1)
	return label + "\n" + bubble.Width(bubbleWidth).Render(body)
}

func copyToClipboard(text string, stderr io.Writer) {
	if err := clipboard.WriteAll(text); err != nil {
		fmt.Fprintln(stderr, lipgloss.NewStyle().Foreground(colorError).Render(
			fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
		))
		return
	}
	fmt.Fprintln(stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard"))
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
