package cuepanel

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/subrepeat/internal/cue"
	"github.com/llehouerou/subrepeat/internal/playback"
)

func testIndex(t *testing.T) *cue.Index {
	t.Helper()
	idx, errs := cue.NewIndex([]cue.Cue{
		{Start: 0, End: time.Second, Text: "first"},
		{Start: 2 * time.Second, End: 3 * time.Second, Text: "second"},
		{Start: 4 * time.Second, End: 5 * time.Second, Text: "third"},
	})
	if len(errs) > 0 {
		t.Fatalf("NewIndex() errors: %v", errs)
	}
	return idx
}

func statusAt(idx *cue.Index, i int, pos time.Duration) playback.Status {
	st := playback.Status{
		ActiveIndex:  i,
		Position:     pos,
		RepeatTarget: 3,
		RepeatsDone:  1,
		CueCount:     idx.Len(),
	}
	if i >= 0 {
		c := idx.At(i)
		st.Active = &c
	}
	return st
}

func TestNeighbours(t *testing.T) {
	idx := testIndex(t)
	tests := []struct {
		name     string
		active   int
		pos      time.Duration
		wantPrev int
		wantNext int
	}{
		{"first cue", 0, 500 * time.Millisecond, -1, 1},
		{"middle cue", 1, 2500 * time.Millisecond, 0, 2},
		{"last cue", 2, 4500 * time.Millisecond, 1, -1},
		{"gap", -1, 1500 * time.Millisecond, 0, 1},
		{"after the end", -1, 10 * time.Second, 2, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			m.SetStatus(statusAt(idx, tt.active, tt.pos), idx)
			prev, next := m.neighbours()
			if prev != tt.wantPrev || next != tt.wantNext {
				t.Errorf("neighbours() = (%d, %d), want (%d, %d)", prev, next, tt.wantPrev, tt.wantNext)
			}
		})
	}
}

func TestView_ShowsContext(t *testing.T) {
	idx := testIndex(t)
	m := New()
	m.SetSize(40, 12)
	m.SetStatus(statusAt(idx, 1, 2500*time.Millisecond), idx)

	out := ansi.Strip(m.View())

	for _, want := range []string{"first", "second", "third", "repeat 2/3 · cue 2/3"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q:\n%s", want, out)
		}
	}
	if h := lipgloss.Height(m.View()); h != 12 {
		t.Errorf("height = %d, want 12", h)
	}
	for _, line := range strings.Split(m.View(), "\n") {
		if w := lipgloss.Width(line); w != 40 {
			t.Errorf("line width = %d, want 40", w)
		}
	}
}

func TestView_NoSubtitles(t *testing.T) {
	m := New()
	m.SetSize(40, 8)

	if out := ansi.Strip(m.View()); !strings.Contains(out, "no subtitles loaded") {
		t.Errorf("View() = %q", out)
	}
}

func TestView_TooSmall(t *testing.T) {
	m := New()
	m.SetSize(3, 2)

	if m.View() != "" {
		t.Error("View() should be empty when too small")
	}
}

func TestCounter(t *testing.T) {
	if got := Counter(playback.Status{ActiveIndex: 0, RepeatTarget: 1, CueCount: 5}); got != "cue 1/5" {
		t.Errorf("Counter() = %q", got)
	}
	if got := Counter(playback.Status{ActiveIndex: 2, RepeatsDone: 2, RepeatTarget: 3, CueCount: 5}); got != "repeat 3/3 · cue 3/5" {
		t.Errorf("Counter() = %q", got)
	}
}
