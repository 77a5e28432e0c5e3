package tui

import "github.com/charmbracelet/lipgloss"

var (
	styleHeader = lipgloss.NewStyle().Bold(true)
	styleFooter = lipgloss.NewStyle().Faint(true)
	styleError  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleOK     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleMuted  = lipgloss.NewStyle().Faint(true)
	styleLabel  = lipgloss.NewStyle().Bold(true)

	styleChip = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("7"))
	styleChipOn = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6"))
	styleChipCursor = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Underline(true)

	styleModal = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2)

	styleBtn = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("7"))
	styleBtnActive = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)
