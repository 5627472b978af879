package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func OK(w io.Writer, msg string)   { fmt.Fprintln(w, current.Success.Render("✔ "+msg)) }
func Fail(w io.Writer, msg string) { fmt.Fprintln(w, current.Error.Render("✖ "+msg)) }

// Price formats an amount the way every food line shows it.
func Price(p float64) string { return fmt.Sprintf("$%.2f", p) }

// AvailabilityBar renders how much of the menu is available, with percentage.
func AvailabilityBar(available, total, width int) string {
	if width < 5 {
		width = 5
	}
	pct := 0
	filled := 0
	if total > 0 {
		filled = available * width / total
		pct = available * 100 / total
	}
	if filled > width {
		filled = width
	}
	return fmt.Sprintf("%s %3d%%", strings.Repeat("█", filled)+strings.Repeat("░", width-filled), pct)
}

// Panel draws lines inside a frame using the current theme.
func Panel(w io.Writer, lines []string) {
	box := lipgloss.NewStyle().
		Border(current.Border).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	fmt.Fprintln(w, box.Render(strings.Join(lines, "\n")))
}
