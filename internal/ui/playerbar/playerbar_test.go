package playerbar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/subrepeat/internal/playback"
	"github.com/llehouerou/subrepeat/internal/player"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{83 * time.Second, "1:23"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestRenderProgressBar(t *testing.T) {
	out := ansi.Strip(RenderProgressBar(30*time.Second, time.Minute, 40, playSymbol))

	if lipgloss.Width(out) != 40 {
		t.Errorf("width = %d, want 40: %q", lipgloss.Width(out), out)
	}
	if !strings.HasPrefix(out, "▶  0:30  ") || !strings.HasSuffix(out, "  1:00") {
		t.Errorf("RenderProgressBar() = %q", out)
	}
	filled := strings.Count(out, "━")
	empty := strings.Count(out, "─")
	// 25 cells of bar, half way rounds down.
	if filled != 12 || empty != 13 {
		t.Errorf("half way: filled=%d empty=%d, want 12/13", filled, empty)
	}
}

func TestRenderProgressBar_Narrow(t *testing.T) {
	out := ansi.Strip(RenderProgressBar(time.Second, time.Minute, 10, pauseSymbol))

	if out != "⏸  0:01 / 1:00" {
		t.Errorf("RenderProgressBar() = %q", out)
	}
}

func TestNewState(t *testing.T) {
	p := player.NewMock()
	p.SetDuration(time.Minute)
	_ = p.SetVolume(70)

	s := NewState(playback.Status{
		State:    playback.StateSeeking,
		Ready:    true,
		Position: 5 * time.Second,
		Duration: time.Minute,
	}, p)

	if !s.Settling || s.Paused {
		t.Errorf("seeking should render as settling, got %+v", s)
	}
	if s.Volume != 70 {
		t.Errorf("Volume = %d, want 70", s.Volume)
	}
}

func TestRender(t *testing.T) {
	s := State{Ready: true, Paused: true, Position: time.Second, Duration: time.Minute, Volume: 80, Fullscreen: true}

	out := Render(s, 80)

	if lipgloss.Height(out) != Height {
		t.Errorf("height = %d, want %d", lipgloss.Height(out), Height)
	}
	plain := ansi.Strip(out)
	for _, want := range []string{pauseSymbol, "vol  80%", "fullscreen"} {
		if !strings.Contains(plain, want) {
			t.Errorf("Render() missing %q:\n%s", want, plain)
		}
	}
}

func TestRender_NotReady(t *testing.T) {
	out := ansi.Strip(Render(State{}, 60))

	if !strings.Contains(out, "waiting for media") {
		t.Errorf("Render() = %q", out)
	}
}
