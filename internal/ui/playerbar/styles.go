package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/subrepeat/internal/ui/styles"
)

const (
	playSymbol   = "▶"
	pauseSymbol  = "⏸"
	settleSymbol = "↻"
)

func barStyle() lipgloss.Style {
	return styles.Panel(false)
}

func progressBarFilled() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.P().Accent)
}

func progressBarEmpty() lipgloss.Style {
	return styles.S().Faint
}

func timeStyle() lipgloss.Style {
	return styles.S().Dim
}
