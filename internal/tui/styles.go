package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/jaminalder/codex-connect-three/internal/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	boardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")) // yellow
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))            // gray
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))            // red
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")) // green

	chipStyles = map[domain.Color]lipgloss.Style{
		domain.Red:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		domain.Blue: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	}
)

const (
	chipGlyph  = "●"
	emptyGlyph = "·"
)

func chip(p domain.Player) string {
	if st, ok := chipStyles[p.Color]; ok {
		return st.Render(chipGlyph)
	}
	return chipGlyph
}
