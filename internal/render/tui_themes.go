package render

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// TUITheme defines the color scheme for the TUI interface
type TUITheme struct {
	Name        string
	Description string

	// Base colors
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	// Price direction, used by quotes and charts
	Gain lipgloss.Color
	Loss lipgloss.Color

	// Text colors
	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color

	// MarkdownStyle is the glamour style that suits this palette
	MarkdownStyle string
}

// Built-in TUI themes
var (
	TokyoNightTheme = TUITheme{
		Name:        "tokyonight",
		Description: "Tokyo Night - dark theme with blue accents",

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		Primary:   lipgloss.Color("#7aa2f7"),
		Secondary: lipgloss.Color("#9ece6a"),
		Accent:    lipgloss.Color("#bb9af7"),
		Warning:   lipgloss.Color("#e0af68"),
		Error:     lipgloss.Color("#f7768e"),

		Gain: lipgloss.Color("#9ece6a"),
		Loss: lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),

		MarkdownStyle: StyleTokyoNight,
	}

	DraculaTheme = TUITheme{
		Name:        "dracula",
		Description: "Dracula - dark theme with vibrant colors",

		Background: lipgloss.Color("#282a36"),
		Surface:    lipgloss.Color("#44475a"),
		Border:     lipgloss.Color("#6272a4"),

		Primary:   lipgloss.Color("#8be9fd"), // Cyan
		Secondary: lipgloss.Color("#50fa7b"), // Green
		Accent:    lipgloss.Color("#ff79c6"), // Pink
		Warning:   lipgloss.Color("#f1fa8c"), // Yellow
		Error:     lipgloss.Color("#ff5555"), // Red

		Gain: lipgloss.Color("#50fa7b"),
		Loss: lipgloss.Color("#ff5555"),

		Text:     lipgloss.Color("#f8f8f2"),
		TextDim:  lipgloss.Color("#6272a4"),
		TextMute: lipgloss.Color("#44475a"),

		MarkdownStyle: "dracula",
	}

	// TerminalTheme sticks to the 16 ANSI colors for terminals without true color
	TerminalTheme = TUITheme{
		Name:        "terminal",
		Description: "Terminal - ANSI palette, follows your terminal colors",

		Background: lipgloss.Color("0"),
		Surface:    lipgloss.Color("8"),
		Border:     lipgloss.Color("8"),

		Primary:   lipgloss.Color("4"),
		Secondary: lipgloss.Color("2"),
		Accent:    lipgloss.Color("5"),
		Warning:   lipgloss.Color("3"),
		Error:     lipgloss.Color("1"),

		Gain: lipgloss.Color("2"),
		Loss: lipgloss.Color("1"),

		Text:     lipgloss.Color("7"),
		TextDim:  lipgloss.Color("8"),
		TextMute: lipgloss.Color("8"),

		MarkdownStyle: StyleDark,
	}
)

var (
	themeMu         sync.RWMutex
	currentTUITheme = TokyoNightTheme
)

// GetTUITheme returns the currently active TUI theme
func GetTUITheme() TUITheme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTUITheme
}

// SetTUITheme sets the active TUI theme by name
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if !ok {
		return false
	}
	themeMu.Lock()
	currentTUITheme = theme
	themeMu.Unlock()
	return true
}

// GetTUIThemeByName returns a TUI theme by its name
func GetTUIThemeByName(name string) (TUITheme, bool) {
	for _, t := range AvailableTUIThemes() {
		if t.Name == name {
			return t, true
		}
	}
	return TUITheme{}, false
}

// AvailableTUIThemes returns a list of all available TUI themes
func AvailableTUIThemes() []TUITheme {
	return []TUITheme{
		TokyoNightTheme,
		DraculaTheme,
		TerminalTheme,
	}
}

// TUIThemeNames returns just the theme names for selection
func TUIThemeNames() []string {
	themes := AvailableTUIThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// Direction returns the gain or loss color for a price move
func (t TUITheme) Direction(up bool) lipgloss.Color {
	if up {
		return t.Gain
	}
	return t.Loss
}
