package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pdxmph/callsim/internal/call"
)

// Styles
var (
	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230"))

	numberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230"))

	answerButton = lipgloss.NewStyle().
			Padding(0, 2).
			Background(lipgloss.Color("34")).
			Foreground(lipgloss.Color("230"))

	rejectButton = lipgloss.NewStyle().
			Padding(0, 2).
			Background(lipgloss.Color("160")).
			Foreground(lipgloss.Color("230"))
)

// theme is the per phone style look of the call screen.
type theme struct {
	accent lipgloss.Color
	frame  lipgloss.Style
	avatar lipgloss.Style
	label  lipgloss.Style
}

func newTheme(accent lipgloss.Color, border lipgloss.Border) theme {
	return theme{
		accent: accent,
		frame: lipgloss.NewStyle().
			Border(border).
			BorderForeground(accent).
			Padding(1, 2).
			Width(38).
			Align(lipgloss.Center),
		avatar: lipgloss.NewStyle().
			Bold(true).
			Padding(1, 3).
			Background(accent).
			Foreground(lipgloss.Color("230")),
		label: lipgloss.NewStyle().
			Foreground(accent),
	}
}

var themes = map[call.Style]theme{
	call.StyleAndroid: newTheme(lipgloss.Color("35"), lipgloss.NormalBorder()),
	call.StyleIPhone:  newTheme(lipgloss.Color("39"), lipgloss.RoundedBorder()),
}

func themeFor(style call.Style) theme {
	if t, ok := themes[style]; ok {
		return t
	}
	return themes[call.StyleAndroid]
}
