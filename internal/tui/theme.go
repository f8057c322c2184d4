package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorIndigo lipgloss.Color = "#818cf8"
	colorGreen  lipgloss.Color = "#a6e3a1"
	colorRed    lipgloss.Color = "#f38ba8"
	colorText   lipgloss.Color = "#cdd6f4"
	colorMuted  lipgloss.Color = "#7f849c"
	colorBase   lipgloss.Color = "#1e1e2e"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorBase).Background(colorIndigo).Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(colorIndigo).Underline(true).Padding(0, 1)
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	mutedStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	inputStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorIndigo).Padding(0, 1)
	errorStyle     = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	loadingStyle   = lipgloss.NewStyle().Foreground(colorIndigo)
	scoreStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorBase).Background(colorIndigo).Padding(0, 1)
	cursorStyle    = lipgloss.NewStyle().Foreground(colorIndigo).Bold(true)
	selectedStyle  = lipgloss.NewStyle().Foreground(colorIndigo)
	correctStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	wrongStyle     = lipgloss.NewStyle().Foreground(colorRed).Strikethrough(true)
)
