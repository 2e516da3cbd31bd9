package render

import (
	"sort"

	"github.com/charmbracelet/glamour/styles"
)

// Markdown style names accepted in config
const (
	StyleDark       = styles.DarkStyle
	StyleLight      = styles.LightStyle
	StyleNoTTY      = styles.NoTTYStyle
	StyleTokyoNight = styles.TokyoNightStyle
)

// styleAliases maps names used by the TUI theme list to glamour style names
var styleAliases = map[string]string{
	"tokyonight": styles.TokyoNightStyle,
	"plain":      styles.NoTTYStyle,
}

// ResolveStyle maps an alias to a glamour style name. Anything else,
// including a JSON file path, is returned unchanged.
func ResolveStyle(style string) string {
	if s, ok := styleAliases[style]; ok {
		return s
	}
	return style
}

// IsStandardStyle reports whether style names one of glamour's built-in styles
func IsStandardStyle(style string) bool {
	_, ok := styles.DefaultStyles[ResolveStyle(style)]
	return ok
}

// StandardStyleNames lists glamour's built-in styles in sorted order
func StandardStyleNames() []string {
	names := make([]string, 0, len(styles.DefaultStyles))
	for name := range styles.DefaultStyles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
