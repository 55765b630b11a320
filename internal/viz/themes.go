package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the status bar and help overlay. Particles keep their own
// colors.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Muted     lipgloss.Color
}

var (
	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Muted:     lipgloss.Color("#888888"),
	}

	ThemeFrost = Theme{
		Name:      "frost",
		Primary:   lipgloss.Color("#aec2e0"), // rain blue
		Secondary: lipgloss.Color("#e0f0ff"),
		Accent:    lipgloss.Color("#7fdbff"),
		Muted:     lipgloss.Color("#4488aa"),
	}

	ThemeAurora = Theme{
		Name:      "aurora",
		Primary:   lipgloss.Color("#00ff88"),
		Secondary: lipgloss.Color("#b967ff"),
		Accent:    lipgloss.Color("#01cdfe"),
		Muted:     lipgloss.Color("#3d6b5a"),
	}

	ThemeDusk = Theme{
		Name:      "dusk",
		Primary:   lipgloss.Color("#ff6b6b"), // Coral
		Secondary: lipgloss.Color("#feca57"),
		Accent:    lipgloss.Color("#ff9ff3"),
		Muted:     lipgloss.Color("#8b6b8c"),
	}

	ThemeEmber = Theme{
		Name:      "ember",
		Primary:   lipgloss.Color("#ffaa00"),
		Secondary: lipgloss.Color("#ff4400"),
		Accent:    lipgloss.Color("#ffff66"),
		Muted:     lipgloss.Color("#7a4a2a"),
	}

	// Default theme
	CurrentTheme = ThemeMinimal

	// All available themes
	Themes = []Theme{
		ThemeMinimal,
		ThemeFrost,
		ThemeAurora,
		ThemeDusk,
		ThemeEmber,
	}
)

// GetTheme returns a theme by name, falling back to minimal.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeMinimal
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
