// Package styles holds the color palette and the lipgloss styles built on it.
package styles

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Palette names the colors used across the UI. Colors feeding the cue
// gradient must be #rrggbb.
type Palette struct {
	Accent lipgloss.Color // active cue, highlighted border, progress
	Warm   lipgloss.Color // repeat counter, gradient end

	Text  lipgloss.Color
	Dim   lipgloss.Color // next cue, idle marker, times
	Faint lipgloss.Color // previous cue, separators

	Border lipgloss.Color

	Failure lipgloss.Color // failed seeks, lost player
	Caution lipgloss.Color // invalid input, settings ignored
}

// Styles are the text styles derived from a Palette.
type Styles struct {
	Text    lipgloss.Style
	Dim     lipgloss.Style
	Faint   lipgloss.Style
	Counter lipgloss.Style
	Failure lipgloss.Style
	Caution lipgloss.Style
}

var palette = Palette{
	Accent: lipgloss.Color("#a78bfa"),
	Warm:   lipgloss.Color("#f1a208"),

	Text:  lipgloss.Color("#c0c0c0"),
	Dim:   lipgloss.Color("#808080"),
	Faint: lipgloss.Color("#585858"),

	Border: lipgloss.Color("#585858"),

	Failure: lipgloss.Color("#ff5555"),
	Caution: lipgloss.Color("#f1a208"),
}

var (
	built     Styles
	buildOnce sync.Once
)

// P returns the palette.
func P() Palette {
	return palette
}

// S returns the styles, built on first use.
func S() Styles {
	buildOnce.Do(func() {
		built = newStyles(palette)
	})
	return built
}

func newStyles(p Palette) Styles {
	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	return Styles{
		Text:    fg(p.Text),
		Dim:     fg(p.Dim),
		Faint:   fg(p.Faint),
		Counter: fg(p.Warm),
		Failure: fg(p.Failure).Bold(true),
		Caution: fg(p.Caution),
	}
}
