package playerbar

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/subrepeat/internal/ui"
)

// RenderProgressBar renders a line-style progress bar.
// Format: ▶  1:23  ━━━━━─────  4:56
func RenderProgressBar(position, duration time.Duration, width int, status string) string {
	posStr := timeStyle().Render(formatDuration(position))
	durStr := timeStyle().Render(formatDuration(duration))

	fixedWidth := lipgloss.Width(status) + 2 + lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr)
	barWidth := width - fixedWidth

	if barWidth < ui.MinProgressBarWidth {
		return status + "  " + posStr + " / " + durStr
	}

	var ratio float64
	if duration > 0 {
		ratio = float64(position) / float64(duration)
	}
	filled := min(max(int(float64(barWidth)*ratio), 0), barWidth)

	bar := progressBarFilled().Render(repeatBlock("━", filled)) +
		progressBarEmpty().Render(repeatBlock("─", barWidth-filled))

	return status + "  " + posStr + "  " + bar + "  " + durStr
}
