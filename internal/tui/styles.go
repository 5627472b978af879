package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle       = lipgloss.NewStyle().Bold(true)
	successStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	unavailableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	soldOutStyle  = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	labelStyle    = lipgloss.NewStyle().Width(13).Foreground(lipgloss.Color("8"))

	markAvailable   = "●"
	markUnavailable = "○"
)

func panelString(inner string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1).
		Render(inner)
}

func dialogBox(width int, title, body string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("12")).
		Padding(0, 1)
	if width > 8 {
		box = box.Width(width - 4)
	}
	return box.Render(titleStyle.Render(title) + "\n\n" + body)
}
