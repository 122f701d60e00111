package tui

import (
	"github.com/charmbracelet/lipgloss"

	"notes-client/internal/controller/notify"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	headerStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	editingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("203")).Padding(1, 2)
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	helpKeyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	helpDescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func toastStyle(kind notify.Kind) lipgloss.Style {
	switch {
	case kind == notify.KindSuccess:
		return successStyle
	case kind.IsError():
		return errorStyle
	default:
		return infoStyle
	}
}
