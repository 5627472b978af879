package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette, availability marks and the panel border.
// All output helpers pull from `current`.
type Theme struct {
	Name                           string
	Title, Muted, Accent           lipgloss.Style
	Success, Error, Unavailable    lipgloss.Style
	MarkAvailable, MarkUnavailable string
	Border                         lipgloss.Border
}

var current = classic()

func classic() Theme {
	return Theme{
		Name:            "classic",
		Title:           lipgloss.NewStyle().Bold(true),
		Muted:           lipgloss.NewStyle().Faint(true),
		Accent:          lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:         lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:           lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Unavailable:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		MarkAvailable:   "●",
		MarkUnavailable: "○",
		Border:          lipgloss.NormalBorder(),
	}
}

// SetTheme switches the palette; unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "neon":
		t := classic()
		t.Name = "neon"
		t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
		t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		t.Unavailable = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
		t.MarkAvailable, t.MarkUnavailable = "◼", "◻"
		t.Border = lipgloss.RoundedBorder()
		current = t
	case "mono":
		plain := lipgloss.NewStyle()
		current = Theme{
			Name:  "mono",
			Title: plain, Muted: plain, Accent: plain,
			Success: plain, Error: plain, Unavailable: plain,
			MarkAvailable: "[x]", MarkUnavailable: "[ ]",
			Border: lipgloss.Border{
				Top: "-", Bottom: "-", Left: "|", Right: "|",
				TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
			},
		}
	default:
		current = classic()
	}
}

func Current() Theme { return current }
