// Package tui provides the terminal user interface for finchat.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	apierrors "github.com/diogo/finchat/internal/errors"
	"github.com/diogo/finchat/internal/render"
)

// Theme colors, refreshed by UpdateTheme
var (
	colorBorder    lipgloss.Color
	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorAccent    lipgloss.Color
	colorError     lipgloss.Color
	colorGain      lipgloss.Color
	colorLoss      lipgloss.Color
	colorText      lipgloss.Color
	colorTextDim   lipgloss.Color
	colorTextMute  lipgloss.Color
)

// Styles shared by the chat and config screens
var (
	panelStyle    lipgloss.Style // rounded frame around a screen section
	titleStyle    lipgloss.Style
	sectionStyle  lipgloss.Style
	dimStyle      lipgloss.Style
	hintStyle     lipgloss.Style
	keyStyle      lipgloss.Style
	selectedStyle lipgloss.Style
	loadingStyle  lipgloss.Style
	noticeStyle   lipgloss.Style
	errorStyle    lipgloss.Style

	// Price direction, also used for on/off values
	gainStyle lipgloss.Style
	lossStyle lipgloss.Style

	userLabelStyle       lipgloss.Style
	userBubbleStyle      lipgloss.Style
	assistantBubbleStyle lipgloss.Style
	welcomeStyle         lipgloss.Style
)

// Gradient colors for the loading animation (fixed colors)
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#9ece6a"),
	lipgloss.Color("#73daca"),
	lipgloss.Color("#7dcfff"),
	lipgloss.Color("#7aa2f7"),
	lipgloss.Color("#bb9af7"),
	lipgloss.Color("#e0af68"),
}

func init() {
	UpdateTheme()
}

// UpdateTheme refreshes all styles based on the current TUI theme
func UpdateTheme() {
	theme := render.GetTUITheme()

	colorBorder = theme.Border
	colorPrimary = theme.Primary
	colorSecondary = theme.Secondary
	colorAccent = theme.Accent
	colorError = theme.Error
	colorGain = theme.Gain
	colorLoss = theme.Loss
	colorText = theme.Text
	colorTextDim = theme.TextDim
	colorTextMute = theme.TextMute

	rebuildStyles()
}

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func rebuildStyles() {
	panelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder)

	titleStyle = fg(colorPrimary).Bold(true)
	sectionStyle = fg(colorSecondary).Bold(true).MarginTop(1)
	dimStyle = fg(colorTextDim)
	hintStyle = fg(colorTextMute).Italic(true)
	keyStyle = fg(colorTextDim).Bold(true)
	selectedStyle = fg(colorAccent).Bold(true)
	loadingStyle = fg(colorAccent).Bold(true)
	errorStyle = fg(colorError).Bold(true)
	gainStyle = fg(colorGain)
	lossStyle = fg(colorLoss)

	noticeStyle = dimStyle.
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(colorAccent).
		PaddingLeft(1).
		MarginTop(1)

	userLabelStyle = fg(colorSecondary).Bold(true).MarginLeft(4)
	userBubbleStyle = panelStyle.
		BorderForeground(colorSecondary).
		Padding(0, 1).
		MarginLeft(4)
	assistantBubbleStyle = panelStyle.
		BorderForeground(colorPrimary).
		Foreground(colorText).
		Padding(0, 1).
		MarginRight(4)

	welcomeStyle = panelStyle.
		BorderForeground(colorPrimary).
		Padding(1, 2).
		Align(lipgloss.Center)
}

// renderShortcuts draws a "key desc │ key desc" status line
func renderShortcuts(width int, pairs ...[2]string) string {
	items := make([]string, 0, len(pairs))
	for _, p := range pairs {
		items = append(items, keyStyle.Render(p[0])+fg(colorTextMute).Render(" "+p[1]))
	}
	return fg(colorTextMute).MarginTop(1).Width(width).Align(lipgloss.Center).
		Render(strings.Join(items, "  │  "))
}

// FormatError returns a styled error message with additional context
// pulled from the structured error types.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	errStyle := fg(colorError)

	var sb strings.Builder
	sb.WriteString(errStyle.Render(fmt.Sprintf("✗ %v", err)))

	if status := apierrors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	if endpoint := apierrors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	if body := apierrors.GetResponseBody(err); body != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n\n  %s", strings.ReplaceAll(body, "\n", "\n  "))))
		return sb.String()
	}

	switch {
	case apierrors.IsRateLimitError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The free API tier allows a few calls per minute. Wait and retry, or set FINCHAT_API_KEY"))
	case apierrors.IsNotFoundError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Check the ticker symbol"))
	case apierrors.IsNetworkError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Check your internet connection and try again"))
	case apierrors.IsParseError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The quote service returned an unexpected payload; check base_url"))
	}

	return sb.String()
}
