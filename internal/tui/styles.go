package tui

import "github.com/charmbracelet/lipgloss"

type palette struct {
	text, muted, accent, success, failure, border lipgloss.Color
}

var (
	lightPalette = palette{
		text:    lipgloss.Color("235"),
		muted:   lipgloss.Color("244"),
		accent:  lipgloss.Color("27"),
		success: lipgloss.Color("28"),
		failure: lipgloss.Color("160"),
		border:  lipgloss.Color("250"),
	}
	darkPalette = palette{
		text:    lipgloss.Color("252"),
		muted:   lipgloss.Color("242"),
		accent:  lipgloss.Color("75"),
		success: lipgloss.Color("42"),
		failure: lipgloss.Color("203"),
		border:  lipgloss.Color("238"),
	}
)

// styles is the rendering theme, rebuilt whenever the preference flips.
type styles struct {
	dark bool

	title   lipgloss.Style
	label   lipgloss.Style
	errText lipgloss.Style
	help    lipgloss.Style
	button  lipgloss.Style
	focused lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
}

func newStyles(dark bool) styles {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	panel := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2).MarginTop(1)
	return styles{
		dark:    dark,
		title:   lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		label:   lipgloss.NewStyle().Bold(true).Foreground(p.text).MarginTop(1),
		errText: lipgloss.NewStyle().Foreground(p.failure),
		help:    lipgloss.NewStyle().Foreground(p.muted).MarginTop(1),
		button:  lipgloss.NewStyle().Foreground(p.text).Border(lipgloss.NormalBorder()).BorderForeground(p.border).Padding(0, 2).MarginTop(1),
		focused: lipgloss.NewStyle().Bold(true).Foreground(p.accent).Border(lipgloss.NormalBorder()).BorderForeground(p.accent).Padding(0, 2).MarginTop(1),
		success: panel.BorderForeground(p.success).Foreground(p.success),
		failure: panel.BorderForeground(p.failure).Foreground(p.failure),
	}
}
