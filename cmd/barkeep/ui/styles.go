// Package ui implements the barkeep terminal interface: a tab bar over the
// three entity lists, a detail pane for the selected item, and a quick-add
// input. Each list is driven by a view synchronizer; the ui package only
// provides the host surface and rendering.
package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds one color scheme.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// DarkTheme returns the default dark scheme.
func DarkTheme() Theme {
	return Theme{
		Background: lipgloss.Color("#14201d"),
		Foreground: lipgloss.Color("#f2f2f2"),
		Primary:    lipgloss.Color("#d4a24e"), // brass
		Accent:     lipgloss.Color("#7fb069"),
		Muted:      lipgloss.Color("#5c6f6a"),
		Border:     lipgloss.Color("#2a3d38"),
		IsDark:     true,
	}
}

// LightTheme returns the light scheme.
func LightTheme() Theme {
	return Theme{
		Background: lipgloss.Color("#f6f5f2"),
		Foreground: lipgloss.Color("#1d2a27"),
		Primary:    lipgloss.Color("#8a6420"),
		Accent:     lipgloss.Color("#4a7d3a"),
		Muted:      lipgloss.Color("#9aa8a3"),
		Border:     lipgloss.Color("#d8d4cc"),
		IsDark:     false,
	}
}

// ThemeByName resolves a config theme name, honoring BARKEEP_THEME.
func ThemeByName(name string) Theme {
	if env := os.Getenv("BARKEEP_THEME"); env != "" {
		name = env
	}
	if strings.EqualFold(name, "light") {
		return LightTheme()
	}
	return DarkTheme()
}

// Styles holds the pre-built lipgloss styles for one theme.
type Styles struct {
	Theme Theme

	Title    lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	TabOn    lipgloss.Style
	TabOff   lipgloss.Style
	Selected lipgloss.Style
	Pane     lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme:    theme,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Body:     lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted:    lipgloss.NewStyle().Foreground(theme.Muted),
		Bold:     lipgloss.NewStyle().Bold(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")),
		Success:  lipgloss.NewStyle().Foreground(theme.Accent),
		TabOn:    lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Underline(true).Padding(0, 1),
		TabOff:   lipgloss.NewStyle().Foreground(theme.Muted).Padding(0, 1),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(theme.Background).Background(theme.Primary),
		Pane:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border).Padding(0, 1),
	}
}

// DefaultStyles returns the dark-theme style set.
func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}
