package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/subrepeat/internal/playback"
	"github.com/llehouerou/subrepeat/internal/player"
)

// Height is the bar height including borders.
const Height = 3

// State holds everything needed to render the player bar.
type State struct {
	Ready      bool
	Paused     bool
	Settling   bool // paused by the scheduler between a seek and the resume
	Position   time.Duration
	Duration   time.Duration
	Volume     int
	Fullscreen bool
}

// NewState builds a State from a scheduler snapshot and the engine.
func NewState(st playback.Status, p player.Interface) State {
	s := State{
		Ready:    st.Ready,
		Paused:   st.Paused || (st.State != playback.StateSeeking && p.IsPaused()),
		Settling: st.State == playback.StateSeeking,
		Position: st.Position,
		Duration: st.Duration,
		Volume:   p.Volume(),
	}
	s.Fullscreen = p.Fullscreen()
	return s
}

// Render returns the player bar for the given width.
func Render(s State, width int) string {
	innerWidth := max(width-6, 0)

	if !s.Ready {
		return barStyle().Padding(0, 2).Width(width - 2).
			Render(timeStyle().Render("waiting for media…"))
	}

	status := playSymbol
	switch {
	case s.Settling:
		status = settleSymbol
	case s.Paused:
		status = pauseSymbol
	}

	extras := RenderVolume(s.Volume)
	if s.Fullscreen {
		extras += "  " + timeStyle().Render("fullscreen")
	}

	bar := RenderProgressBar(s.Position, s.Duration, innerWidth-lipgloss.Width(extras)-3, status)
	line := bar + "   " + extras

	return barStyle().Padding(0, 2).Width(width - 2).Render(line)
}

func formatDuration(d time.Duration) string {
	d = max(d, 0)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func repeatBlock(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}
