package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors used for each part of a rendered model.
type Theme struct {
	Name    string
	Title   lipgloss.Color
	Accent  lipgloss.Color
	Body    lipgloss.Color
	Ground  lipgloss.Color
	Joint   lipgloss.Color
	Measure lipgloss.Color
	Value   lipgloss.Color
	Muted   lipgloss.Color
	Error   lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Title:   lipgloss.Color("#ff00ff"),
		Accent:  lipgloss.Color("#00ffff"),
		Body:    lipgloss.Color("#00ccff"),
		Ground:  lipgloss.Color("#888899"),
		Joint:   lipgloss.Color("#ffff00"),
		Measure: lipgloss.Color("#00ff88"),
		Value:   lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666688"),
		Error:   lipgloss.Color("#ff4444"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Title:   lipgloss.Color("#00ff00"),
		Accent:  lipgloss.Color("#88ff88"),
		Body:    lipgloss.Color("#00ff00"),
		Ground:  lipgloss.Color("#00aa00"),
		Joint:   lipgloss.Color("#ffff00"),
		Measure: lipgloss.Color("#88ff88"),
		Value:   lipgloss.Color("#ccffcc"),
		Muted:   lipgloss.Color("#005500"),
		Error:   lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Title:   lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Body:    lipgloss.Color("#ffffff"),
		Ground:  lipgloss.Color("#aaaaaa"),
		Joint:   lipgloss.Color("#0088ff"),
		Measure: lipgloss.Color("#cccccc"),
		Value:   lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Error:   lipgloss.Color("#ff0000"),
	}

	CurrentTheme = ThemeCyberpunk

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
