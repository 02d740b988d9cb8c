package tui

import "github.com/charmbracelet/lipgloss"

var (
	marsRed = lipgloss.Color("#E4572E")
	dimGray = lipgloss.Color("#888888")

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(dimGray).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	bannerStyle = lipgloss.NewStyle().
			Foreground(marsRed).
			Bold(true)

	locationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5FAFD7")).
			Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD75F"))

	missingStyle = lipgloss.NewStyle().
			Foreground(marsRed).
			Bold(true)

	lockedStyle = lipgloss.NewStyle().
			Foreground(dimGray)

	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(dimGray)

	activeTabStyle = tabStyle.
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(marsRed).
			Bold(true)

	letterStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(marsRed).
			Padding(0, 1).
			Italic(true)
)
