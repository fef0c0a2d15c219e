package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33"))

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1)

	taglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("252")).
			Padding(0, 1)

	focusedBoxStyle = inputBoxStyle.
			BorderForeground(lipgloss.Color("33"))

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("33")).
			Padding(0, 2)

	busyButtonStyle = buttonStyle.
			Background(lipgloss.Color("67"))

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("160")).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("224")).
			Padding(0, 1)

	resultsTitleStyle = lipgloss.NewStyle().Bold(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)
)
