package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText    = lipgloss.Color("#F8F8F2")
	colorMuted   = lipgloss.Color("#6272A4")
	colorPrimary = lipgloss.Color("#BD93F9")
	colorInfo    = lipgloss.Color("#8BE9FD")
	colorWarning = lipgloss.Color("#FFB86C")
	colorDanger  = lipgloss.Color("#FF5555")
	colorBgLight = lipgloss.Color("#44475A")

	titleStyle      = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	categoryStyle   = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
	activeCatStyle  = lipgloss.NewStyle().Foreground(colorText).Background(colorBgLight).Bold(true).Padding(0, 1)
	handleStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	countStyle      = lipgloss.NewStyle().Foreground(colorInfo)
	rowStyle        = lipgloss.NewStyle().Foreground(colorText)
	cursorRowStyle  = lipgloss.NewStyle().Foreground(colorText).Background(colorBgLight)
	focusedRowStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	dimStyle        = lipgloss.NewStyle().Foreground(colorMuted)
	infoStyle       = lipgloss.NewStyle().Foreground(colorInfo)
	errorStyle      = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
)
