package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/diogo/finchat/internal/history"
	"github.com/diogo/finchat/internal/knowledge"
	"github.com/diogo/finchat/internal/models"
	"github.com/diogo/finchat/internal/render"
)

// Animation tick message
type animationTickMsg time.Time

// responseMsg carries the resolved reply back to the event loop
type responseMsg struct {
	resp models.Response
}

// Resolver is what the chat needs from the assistant
type Resolver interface {
	Resolve(ctx context.Context, raw string) models.Response
}

// ChatOptions configures the chat model
type ChatOptions struct {
	Render    render.Options
	Knowledge *knowledge.Base // listed by /help; nil hides the trigger list
	Logger    *zap.Logger
}

// Model represents the chat TUI state
type Model struct {
	ctx      context.Context
	resolver Resolver
	log      *history.Log
	opts     ChatOptions

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	loading        bool
	ready          bool
	err            error
	notice         string
	animationFrame int

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a chat model that appends to log
func NewChatModel(ctx context.Context, resolver Resolver, log *history.Log, opts ChatOptions) Model {
	if log == nil {
		log = history.NewLog()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	ta := textarea.New()
	ta.Placeholder = "Ask about investing, or type \"stock AAPL\"..."
	ta.CharLimit = 500
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		ctx:      ctx,
		resolver: resolver,
		log:      log,
		opts:     opts,
		textarea: ta,
		spinner:  s,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4
		inputHeight := 6
		statusHeight := 1
		padding := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(contentWidth - 4)
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			// A submission always runs to completion
			if !m.loading {
				return m, tea.Quit
			}

		case "enter":
			if m.loading {
				return m, nil
			}
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			m.textarea.Reset()
			return m.submit(input)
		}

	case responseMsg:
		m.loading = false
		m.log.Append(models.NewAssistantEntry(msg.resp))
		m.updateViewport()
		m.viewport.GotoBottom()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.loading {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}
	}

	// Only key presses reach the textarea, and never while a reply is pending
	if !m.loading {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit handles a non-empty line: local commands first, then the resolver
func (m Model) submit(input string) (tea.Model, tea.Cmd) {
	m.err = nil
	m.notice = ""

	lower := strings.ToLower(input)
	switch {
	case lower == "exit" || lower == "quit" || lower == "/exit" || lower == "/quit":
		return m, tea.Quit

	case lower == "/help":
		m.notice = m.helpText()
		return m, nil

	case lower == "/export" || strings.HasPrefix(lower, "/export "):
		path := strings.TrimSpace(input[len("/export"):])
		if path == "" {
			m.notice = "Usage: /export <file.md|file.json>"
			return m, nil
		}
		if err := m.log.ExportToFile(path); err != nil {
			m.err = err
			return m, nil
		}
		m.notice = fmt.Sprintf("Transcript saved to %s (%d messages)", path, m.log.Len())
		return m, nil
	}

	m.log.Append(models.NewUserEntry(input))
	m.updateViewport()
	m.viewport.GotoBottom()

	m.loading = true
	m.animationFrame = 0

	return m, tea.Batch(
		m.resolve(input),
		m.spinner.Tick,
		animationTick(),
	)
}

// resolve runs the resolver off the event loop
func (m Model) resolve(input string) tea.Cmd {
	ctx := m.ctx
	resolver := m.resolver
	logger := m.opts.Logger
	return func() tea.Msg {
		start := time.Now()
		resp := resolver.Resolve(ctx, input)
		logger.Debug("resolved message",
			zap.Duration("elapsed", time.Since(start)),
			zap.Bool("chart", resp.HasChart()))
		return responseMsg{resp: resp}
	}
}

func (m Model) helpText() string {
	var sb strings.Builder
	sb.WriteString("Commands:\n")
	sb.WriteString("  stock <SYMBOL>    live quote and monthly chart\n")
	sb.WriteString("  /export <path>    save the transcript (.json or markdown)\n")
	sb.WriteString("  /help             this list\n")
	sb.WriteString("  exit, quit        leave")
	if m.opts.Knowledge != nil && m.opts.Knowledge.Len() > 0 {
		sb.WriteString("\n\nI know about:")
		for _, e := range m.opts.Knowledge.Entries() {
			sb.WriteString("\n  • ")
			sb.WriteString(e.Trigger)
		}
	}
	return sb.String()
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4

	headerContent := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("◆ finchat"),
		hintStyle.Render("  •  "),
		dimStyle.Render("investing basics & live quotes"),
	)
	sections = append(sections, panelStyle.Padding(0, 2).MarginBottom(1).Width(contentWidth).Render(headerContent))

	var messagesContent string
	if m.log.Len() == 0 {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}
	sections = append(sections, panelStyle.Padding(1).
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent))

	var inputContent string
	if m.loading {
		inputContent = m.renderLoadingAnimation()
	} else {
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			titleStyle.Render("You"),
			m.textarea.View(),
		)
	}
	sections = append(sections, panelStyle.Padding(0, 1).MarginTop(1).Width(contentWidth).Render(inputContent))

	if m.notice != "" {
		sections = append(sections, noticeStyle.Width(contentWidth).Render(m.notice))
	}

	sections = append(sections, m.renderStatusBar(contentWidth))

	if m.err != nil {
		sections = append(sections, errorStyle.Render("⚠ ")+FormatError(m.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	icon := gainStyle.Width(width).Render(render.Sparkline(welcomeSeries))
	title := titleStyle.Width(width).Render("Welcome to finchat")
	subtitle := welcomeStyle.Width(width).Render(
		"Ask \"what is an etf\", \"how to start investing\", or type \"stock AAPL\". /help lists everything.")

	content := lipgloss.JoinVertical(lipgloss.Center, "", icon, "", title, "", subtitle, "")

	topPadding := (height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

// welcomeSeries is the decorative line on the empty screen
var welcomeSeries = []models.PricePoint{
	{Price: 3}, {Price: 4}, {Price: 3.5}, {Price: 5}, {Price: 4.5}, {Price: 6}, {Price: 7}, {Price: 6.5}, {Price: 8},
}

func (m Model) renderLoadingAnimation() string {
	frame := m.animationFrame
	blocks := []rune("▁▂▃▄▅▆▇█▇▆▅▄▃▂")

	var bar strings.Builder
	for i := 0; i < 16; i++ {
		style := lipgloss.NewStyle().Foreground(gradientColors[(i+frame)%len(gradientColors)])
		bar.WriteString(style.Render(string(blocks[(i+frame)%len(blocks)])))
	}

	text := lipgloss.NewStyle().Foreground(colorText).Render(" looking that up ")
	return fmt.Sprintf("%s %s %s", m.spinner.View(), bar.String(), text)
}

func (m Model) renderStatusBar(width int) string {
	return renderShortcuts(width,
		[2]string{"Enter", "Send"},
		[2]string{"/help", "Help"},
		[2]string{"Esc", "Quit"},
		[2]string{"↑↓", "Scroll"},
	)
}

// updateViewport re-renders the whole log into the viewport
func (m *Model) updateViewport() {
	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	for i, entry := range m.log.Entries() {
		if i > 0 {
			content.WriteString("\n")
		}

		if !entry.FromAssistant {
			label := userLabelStyle.Render("● You")
			bubble := userBubbleStyle.Width(bubbleWidth).Render(entry.Text)
			content.WriteString(label + "\n" + bubble + "\n")
			continue
		}

		label := titleStyle.Render("◆ finchat")
		body := render.Answer(entry.Text, m.opts.Render.WithWidth(bubbleWidth-4))

		if entry.Chart != nil && len(entry.Chart.Series) > 0 {
			chartOpts := render.DefaultChartOptions()
			chartOpts.Width = bubbleWidth - 4
			chartOpts.Theme = render.GetTUITheme()
			body = lipgloss.JoinVertical(lipgloss.Left, body, "", render.Chart(entry.Chart, chartOpts))
		}

		content.WriteString(label + "\n" + assistantBubbleStyle.Width(bubbleWidth).Render(body) + "\n")
	}

	m.viewport.SetContent(content.String())
}

// RunChat starts the chat TUI and returns the log it filled
func RunChat(ctx context.Context, resolver Resolver, opts ChatOptions) (*history.Log, error) {
	log := history.NewLog()
	m := NewChatModel(ctx, resolver, log, opts)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return log, err
}
