// Package theme holds the persisted light/dark visual-mode preference.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme is the visual mode, independent of task data.
type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// Parse returns the theme for s and whether s is one of the two valid values.
func Parse(s string) (Theme, bool) {
	switch Theme(s) {
	case Dark:
		return Dark, true
	case Light:
		return Light, true
	}
	return "", false
}

// Other returns the opposite theme.
func (t Theme) Other() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Detect consults the terminal's background color as the ambient
// preference signal. When the background is unknown this reports Dark.
func Detect() Theme {
	if lipgloss.HasDarkBackground() {
		return Dark
	}
	return Light
}
