package styles

import "github.com/charmbracelet/lipgloss"

// Panel returns the rounded border shared by the cue panel and the player
// bar. A highlighted panel takes the accent color.
func Panel(highlight bool) lipgloss.Style {
	border := palette.Border
	if highlight {
		border = palette.Accent
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border)
}
