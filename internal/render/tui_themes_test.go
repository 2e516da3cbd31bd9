package render

import "testing"

func TestTUIThemes_HaveAllColors(t *testing.T) {
	for _, theme := range AvailableTUIThemes() {
		t.Run(theme.Name, func(t *testing.T) {
			colors := map[string]string{
				"Background": string(theme.Background),
				"Surface":    string(theme.Surface),
				"Border":     string(theme.Border),
				"Primary":    string(theme.Primary),
				"Secondary":  string(theme.Secondary),
				"Accent":     string(theme.Accent),
				"Warning":    string(theme.Warning),
				"Error":      string(theme.Error),
				"Gain":       string(theme.Gain),
				"Loss":       string(theme.Loss),
				"Text":       string(theme.Text),
				"TextDim":    string(theme.TextDim),
			}
			for name, c := range colors {
				if c == "" {
					t.Errorf("%s color is empty", name)
				}
			}
			if theme.Description == "" {
				t.Error("description should not be empty")
			}
			if !IsStandardStyle(theme.MarkdownStyle) {
				t.Errorf("MarkdownStyle %q is not a glamour style", theme.MarkdownStyle)
			}
			if theme.Gain == theme.Loss {
				t.Error("gain and loss should differ")
			}
		})
	}
}

func TestSetTUITheme(t *testing.T) {
	defer SetTUITheme("tokyonight")

	if !SetTUITheme("dracula") {
		t.Fatal("SetTUITheme(dracula) = false")
	}
	if GetTUITheme().Name != "dracula" {
		t.Errorf("GetTUITheme() = %s", GetTUITheme().Name)
	}

	if SetTUITheme("nonexistent") {
		t.Error("SetTUITheme should reject unknown names")
	}
	if GetTUITheme().Name != "dracula" {
		t.Error("failed SetTUITheme should keep the current theme")
	}
}

func TestGetTUIThemeByName(t *testing.T) {
	for _, name := range TUIThemeNames() {
		theme, ok := GetTUIThemeByName(name)
		if !ok || theme.Name != name {
			t.Errorf("GetTUIThemeByName(%q) = %v, %v", name, theme.Name, ok)
		}
	}
	if _, ok := GetTUIThemeByName(""); ok {
		t.Error("empty name should not match")
	}
}

func TestTUITheme_Direction(t *testing.T) {
	th := TokyoNightTheme
	if th.Direction(true) != th.Gain || th.Direction(false) != th.Loss {
		t.Error("Direction() mismatch")
	}
}
