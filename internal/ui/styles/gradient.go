package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// gray stands in for colors that are not #rrggbb, such as ANSI indexes.
var gray = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// CueGradient renders the active cue in bold, sweeping from the accent to the
// secondary color. progress is how far the cue is through its repeats, from
// 0 to 1; the sweep starts warmer as it grows. Each line gets the full sweep.
func CueGradient(text string, progress float64) string {
	to := hexColor(palette.Warm)
	from := hexColor(palette.Accent).BlendHcl(to, min(max(progress, 0), 1)*0.7).Clamped()

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = boldSweep(line, from, to)
	}
	return strings.Join(lines, "\n")
}

// RepeatProgress maps a repeat counter to CueGradient's progress.
func RepeatProgress(done, target int) float64 {
	if target <= 1 {
		return 0
	}
	return float64(min(max(done, 0), target-1)) / float64(target-1)
}

// boldSweep colors each grapheme cluster along an HCL blend.
func boldSweep(text string, from, to colorful.Color) string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}

	var b strings.Builder
	for i, cluster := range clusters {
		c := from
		if n := len(clusters); n > 1 {
			c = from.BlendHcl(to, float64(i)/float64(n-1)).Clamped()
		}
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Hex())).
			Bold(true).
			Render(cluster))
	}
	return b.String()
}

func hexColor(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return gray
	}
	return col
}
