package tui

import (
	"camdeck/v0/pkg/status"
	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))

	activeButtonStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("14"))

	menuBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(0, 1)

	// Ribbon indicator colours.
	indicatorStyles = map[status.Indicator]lipgloss.Style{
		status.IndicatorRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		status.IndicatorYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		status.IndicatorGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)
