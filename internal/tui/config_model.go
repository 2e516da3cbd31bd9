package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/finchat/internal/config"
	"github.com/diogo/finchat/internal/render"
)

// configView represents the current view in the config menu
type configView int

const (
	viewMain configView = iota
	viewAPIKeyEdit
	viewThemeSelect    // Markdown theme
	viewTUIThemeSelect // TUI color theme
)

// Menu item indices for main view
const (
	menuAPIKey = iota
	menuHistoryMonths
	menuConcurrentFetch
	menuVerbose
	menuCopyToClipboard
	menuTheme
	menuTUITheme
	menuExit
	menuItemCount
)

// historyMonthChoices is the cycle for the history months setting
var historyMonthChoices = []int{6, 12, 24, 36, 60}

// feedbackClearMsg is sent to clear feedback messages
type feedbackClearMsg struct{}

// ConfigModel represents the config TUI state
type ConfigModel struct {
	config     config.Config
	configPath string
	save       func(config.Config) error

	// Navigation
	view           configView
	cursor         int
	themeCursor    int
	tuiThemeCursor int

	keyInput textinput.Model

	feedback        string
	feedbackTimeout time.Duration

	width  int
	height int
	ready  bool
}

// NewConfigModel creates a config model from the config on disk
func NewConfigModel() ConfigModel {
	cfg, err := config.LoadConfig()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	return newConfigModel(cfg, config.SaveConfig)
}

func newConfigModel(cfg config.Config, save func(config.Config) error) ConfigModel {
	configPath, _ := config.GetConfigPath()

	ti := textinput.New()
	ti.Placeholder = "API key"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 64
	ti.Width = 40

	m := ConfigModel{
		config:          cfg,
		configPath:      configPath,
		save:            save,
		view:            viewMain,
		keyInput:        ti,
		feedbackTimeout: 2 * time.Second,
	}

	m.themeCursor = indexOf(render.StandardStyleNames(), render.ResolveStyle(cfg.Markdown.Style))
	m.tuiThemeCursor = indexOf(render.TUIThemeNames(), cfg.TUITheme)

	if cfg.TUITheme != "" && render.SetTUITheme(cfg.TUITheme) {
		UpdateTheme()
	}

	return m
}

func indexOf(list []string, value string) int {
	for i, v := range list {
		if v == value {
			return i
		}
	}
	return 0
}

// Init initializes the model
func (m ConfigModel) Init() tea.Cmd {
	return nil
}

func clearFeedback(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return feedbackClearMsg{}
	})
}

// Update handles messages and updates the model
func (m ConfigModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case feedbackClearMsg:
		m.feedback = ""

	case tea.KeyMsg:
		if m.view == viewAPIKeyEdit {
			return m.updateKeyInput(msg)
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.view != viewMain {
				m.view = viewMain
			} else {
				return m, tea.Quit
			}

		case "up", "k":
			m.moveCursor(-1)

		case "down", "j":
			m.moveCursor(1)

		case "enter", " ":
			return m.handleSelect()
		}
	}

	return m, nil
}

func (m *ConfigModel) moveCursor(delta int) {
	wrap := func(v, n int) int {
		return ((v % n) + n) % n
	}
	switch m.view {
	case viewMain:
		m.cursor = wrap(m.cursor+delta, menuItemCount)
	case viewThemeSelect:
		m.themeCursor = wrap(m.themeCursor+delta, len(render.StandardStyleNames()))
	case viewTUIThemeSelect:
		m.tuiThemeCursor = wrap(m.tuiThemeCursor+delta, len(render.TUIThemeNames()))
	}
}

func (m ConfigModel) updateKeyInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.keyInput.Blur()
		m.keyInput.SetValue("")
		m.view = viewMain
		return m, nil
	case "enter":
		key := strings.TrimSpace(m.keyInput.Value())
		m.keyInput.Blur()
		m.keyInput.SetValue("")
		m.view = viewMain
		if key == "" {
			m.feedback = "API key unchanged"
			return m, clearFeedback(m.feedbackTimeout)
		}
		m.config.APIKey = key
		return m.persist("API key updated")
	}

	var cmd tea.Cmd
	m.keyInput, cmd = m.keyInput.Update(msg)
	return m, cmd
}

// persist saves the config and sets feedback either way
func (m ConfigModel) persist(success string) (tea.Model, tea.Cmd) {
	if err := m.save(m.config); err != nil {
		m.feedback = fmt.Sprintf("Error: %v", err)
	} else {
		m.feedback = success
	}
	return m, clearFeedback(m.feedbackTimeout)
}

func toggleLabel(name string, on bool) string {
	if on {
		return name + " enabled"
	}
	return name + " disabled"
}

func nextHistoryMonths(current int) int {
	for i, v := range historyMonthChoices {
		if v == current {
			return historyMonthChoices[(i+1)%len(historyMonthChoices)]
		}
	}
	return historyMonthChoices[0]
}

func (m ConfigModel) handleSelect() (tea.Model, tea.Cmd) {
	switch m.view {
	case viewMain:
		switch m.cursor {
		case menuAPIKey:
			m.view = viewAPIKeyEdit
			cmd := m.keyInput.Focus()
			return m, cmd

		case menuHistoryMonths:
			m.config.HistoryMonths = nextHistoryMonths(m.config.HistoryMonths)
			return m.persist(fmt.Sprintf("Chart history set to %d months", m.config.HistoryMonths))

		case menuConcurrentFetch:
			m.config.ConcurrentFetch = !m.config.ConcurrentFetch
			return m.persist(toggleLabel("Parallel fetch", m.config.ConcurrentFetch))

		case menuVerbose:
			m.config.Verbose = !m.config.Verbose
			return m.persist(toggleLabel("Verbose logging", m.config.Verbose))

		case menuCopyToClipboard:
			m.config.CopyToClipboard = !m.config.CopyToClipboard
			return m.persist(toggleLabel("Copy to clipboard", m.config.CopyToClipboard))

		case menuTheme:
			m.view = viewThemeSelect
			return m, nil

		case menuTUITheme:
			m.view = viewTUIThemeSelect
			return m, nil

		case menuExit:
			return m, tea.Quit
		}

	case viewThemeSelect:
		m.config.Markdown.Style = render.StandardStyleNames()[m.themeCursor]
		m.view = viewMain
		return m.persist(fmt.Sprintf("Markdown theme set to %s", m.config.Markdown.Style))

	case viewTUIThemeSelect:
		selected := render.TUIThemeNames()[m.tuiThemeCursor]
		m.config.TUITheme = selected
		render.SetTUITheme(selected)
		UpdateTheme()
		m.view = viewMain
		return m.persist(fmt.Sprintf("TUI theme set to %s", selected))
	}

	return m, nil
}

// View renders the TUI
func (m ConfigModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	header := titleStyle.MarginBottom(1).Width(contentWidth).Align(lipgloss.Center).Render("◆ finchat configuration")
	sections = append(sections, header)

	pathsContent := lipgloss.JoinVertical(lipgloss.Left,
		sectionStyle.Render("Paths"),
		fmt.Sprintf("   Config:  %s", hintStyle.Render(m.configPath)),
		fmt.Sprintf("   Quotes:  %s", hintStyle.Render(m.config.BaseURL)),
	)
	sections = append(sections, panelStyle.Padding(1, 2).Width(contentWidth).Render(pathsContent))

	var settingsContent string
	switch m.view {
	case viewMain:
		settingsContent = m.renderMainMenu()
	case viewAPIKeyEdit:
		settingsContent = m.renderKeyInput()
	case viewThemeSelect:
		settingsContent = m.renderChoice("Select Markdown Theme", render.StandardStyleNames(), m.themeCursor, render.ResolveStyle(m.config.Markdown.Style))
	case viewTUIThemeSelect:
		settingsContent = m.renderChoice("Select TUI Theme", render.TUIThemeNames(), m.tuiThemeCursor, m.config.TUITheme)
	}
	sections = append(sections, panelStyle.Padding(1, 2).Width(contentWidth).Render(settingsContent))

	if m.feedback != "" {
		sections = append(sections, hintStyle.MarginTop(1).Render("✓ "+m.feedback))
	}

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ConfigModel) menuLine(index int, label, value string) string {
	cursor := "  "
	style := fg(colorText).PaddingLeft(2)
	if m.cursor == index {
		cursor = selectedStyle.Render("▸ ")
		style = selectedStyle
	}
	if value == "" {
		return cursor + style.Render(label)
	}
	return fmt.Sprintf("%s%s%s%s", cursor, style.Render(label), strings.Repeat(" ", max(1, 20-len(label))), value)
}

func (m ConfigModel) renderMainMenu() string {
	items := []string{
		m.menuLine(menuAPIKey, "API Key", dimStyle.Render(config.MaskAPIKey(m.config.APIKey))),
		m.menuLine(menuHistoryMonths, "Chart History", dimStyle.Render(fmt.Sprintf("%d months", m.config.HistoryMonths))),
		m.menuLine(menuConcurrentFetch, "Parallel Fetch", m.renderBoolValue(m.config.ConcurrentFetch)),
		m.menuLine(menuVerbose, "Verbose Logging", m.renderBoolValue(m.config.Verbose)),
		m.menuLine(menuCopyToClipboard, "Copy to Clipboard", m.renderBoolValue(m.config.CopyToClipboard)),
		m.menuLine(menuTheme, "Markdown Theme", dimStyle.Render(m.config.Markdown.Style)),
		m.menuLine(menuTUITheme, "TUI Theme", dimStyle.Render(m.config.TUITheme)),
		"",
		m.menuLine(menuExit, "Exit", ""),
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		append([]string{sectionStyle.Render("Settings"), ""}, items...)...,
	)
}

func (m ConfigModel) renderKeyInput() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		sectionStyle.Render("Set API Key"),
		"",
		"  "+m.keyInput.View(),
		"",
		hintStyle.Render("  FINCHAT_API_KEY in the environment overrides this value"),
	)
}

func (m ConfigModel) renderChoice(title string, names []string, cursorIdx int, current string) string {
	var items []string
	for i, name := range names {
		cursor := "  "
		style := fg(colorText).PaddingLeft(2)
		if cursorIdx == i {
			cursor = selectedStyle.Render("▸ ")
			style = selectedStyle
		}
		marker := ""
		if name == current {
			marker = gainStyle.Render(" (current)")
		}
		items = append(items, cursor+style.Render(name)+marker)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		append([]string{sectionStyle.Render(title), ""}, items...)...,
	)
}

func (m ConfigModel) renderBoolValue(value bool) string {
	if value {
		return gainStyle.Render("enabled")
	}
	return lossStyle.Render("disabled")
}

func (m ConfigModel) renderStatusBar(width int) string {
	back := "Exit"
	if m.view != viewMain {
		back = "Back"
	}
	pairs := [][2]string{
		{"↑↓", "Navigate"},
		{"Enter", "Select"},
		{"Esc", back},
	}
	if m.view == viewAPIKeyEdit {
		pairs = pairs[1:]
	}
	return renderShortcuts(width, pairs...)
}

// RunConfig starts the config TUI
func RunConfig() error {
	p := tea.NewProgram(
		NewConfigModel(),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
