package ui

import (
	"github.com/charmbracelet/lipgloss"

	"aitodo/internal/theme"
)

// palette holds the colors for one visual mode.
type palette struct {
	accent  lipgloss.Color
	text    lipgloss.Color
	muted   lipgloss.Color
	danger  lipgloss.Color
	surface lipgloss.Color
}

var palettes = map[theme.Theme]palette{
	theme.Dark: {
		accent:  lipgloss.Color("#7C7CFF"),
		text:    lipgloss.Color("#E8E8ED"),
		muted:   lipgloss.Color("#6B6B76"),
		danger:  lipgloss.Color("#FF6B6B"),
		surface: lipgloss.Color("#2A2A33"),
	},
	theme.Light: {
		accent:  lipgloss.Color("#4A4AD4"),
		text:    lipgloss.Color("#1C1C22"),
		muted:   lipgloss.Color("#8E8E99"),
		danger:  lipgloss.Color("#C0392B"),
		surface: lipgloss.Color("#E4E4EC"),
	},
}

type styles struct {
	title      lipgloss.Style
	item       lipgloss.Style
	done       lipgloss.Style
	cursor     lipgloss.Style
	checkbox   lipgloss.Style
	count      lipgloss.Style
	tabActive  lipgloss.Style
	tabIdle    lipgloss.Style
	help       lipgloss.Style
	inputFrame lipgloss.Style
	empty      lipgloss.Style
}

func newStyles(t theme.Theme) styles {
	p, ok := palettes[t]
	if !ok {
		p = palettes[theme.Dark]
	}
	return styles{
		title:      lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		item:       lipgloss.NewStyle().Foreground(p.text),
		done:       lipgloss.NewStyle().Foreground(p.muted).Strikethrough(true),
		cursor:     lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		checkbox:   lipgloss.NewStyle().Foreground(p.accent),
		count:      lipgloss.NewStyle().Foreground(p.muted),
		tabActive:  lipgloss.NewStyle().Foreground(p.accent).Bold(true).Underline(true),
		tabIdle:    lipgloss.NewStyle().Foreground(p.muted),
		help:       lipgloss.NewStyle().Foreground(p.muted),
		inputFrame: lipgloss.NewStyle().Foreground(p.text).Background(p.surface).Padding(0, 1),
		empty:      lipgloss.NewStyle().Foreground(p.muted).Italic(true),
	}
}
