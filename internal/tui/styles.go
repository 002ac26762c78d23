package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/linecalc/internal/ui"
)

// Style variables for the full-screen calculator.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle      lipgloss.Style
	titleStyle      lipgloss.Style
	versionStyle    lipgloss.Style
	promptStyle     lipgloss.Style
	resultStyle     lipgloss.Style
	errorStyle      lipgloss.Style
	dimStyle        lipgloss.Style
	footerKeyStyle  lipgloss.Style
	footerDescStyle lipgloss.Style
	sparklineStyle  lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	promptStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	resultStyle = lipgloss.NewStyle().
		Foreground(t.Result)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	dimStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	footerKeyStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	footerDescStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	sparklineStyle = lipgloss.NewStyle().
		Foreground(t.Accent)
}
