package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha
const (
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorRed      lipgloss.Color = "#f38ba8"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorBase     lipgloss.Color = "#1e1e2e"
)

const (
	colorAccent  = colorPeach
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorMuted   = colorOverlay1
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	textStyle  = lipgloss.NewStyle().Foreground(colorText)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	priceStyle = lipgloss.NewStyle().Foreground(colorYellow)

	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorFocus)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBase).Background(colorFocus)
	successStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorSuccess)
	badgeStyle    = lipgloss.NewStyle().Foreground(colorBase).Background(colorRed).Padding(0, 1)

	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorBase).Background(colorAccent).Padding(0, 2)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(colorSubtext0).Background(colorSurface1).Padding(0, 2)

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)
)
