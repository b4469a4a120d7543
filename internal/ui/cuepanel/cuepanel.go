// Package cuepanel renders the previous, active and next cues around the
// playback position.
package cuepanel

import (
	"fmt"
	"strings"

	"github.com/llehouerou/subrepeat/internal/cue"
	"github.com/llehouerou/subrepeat/internal/playback"
	"github.com/llehouerou/subrepeat/internal/ui"
	"github.com/llehouerou/subrepeat/internal/ui/render"
	"github.com/llehouerou/subrepeat/internal/ui/styles"
)

// Model holds what the panel shows. It owns no playback state: the app
// copies a Status in on every tick.
type Model struct {
	ui.Base
	status playback.Status
	index  *cue.Index
}

// New creates an empty panel.
func New() Model {
	return Model{status: playback.Status{ActiveIndex: -1}}
}

// SetStatus updates the snapshot to render.
func (m *Model) SetStatus(st playback.Status, idx *cue.Index) {
	m.status = st
	m.index = idx
}

// neighbours returns the cue indexes shown before and after the centre. When
// no cue is active the centre is the gap before the next cue.
func (m Model) neighbours() (prev, next int) {
	n := m.index.Len()
	if n == 0 {
		return -1, -1
	}
	if i := m.status.ActiveIndex; i >= 0 {
		prev, next = i-1, i+1
	} else {
		next = m.index.FindNextIndex(m.status.Position)
		if m.index.At(next).Start <= m.status.Position {
			next = n
		}
		prev = next - 1
	}
	if next >= n {
		next = -1
	}
	return prev, next
}

// View renders the panel inside a border of the model's size.
func (m Model) View() string {
	inner, rows, ok := m.Inner()
	if !ok {
		return ""
	}
	body := m.lines(inner)

	if len(body) > rows {
		body = body[:rows]
	}
	top := (rows - len(body)) / 2
	out := make([]string, 0, rows)
	for range top {
		out = append(out, "")
	}
	out = append(out, body...)
	for len(out) < rows {
		out = append(out, "")
	}
	for i, l := range out {
		out[i] = render.Center(l, inner)
	}

	active := m.status.Active != nil
	return styles.Panel(active).Width(inner).Render(strings.Join(out, "\n"))
}

func (m Model) lines(width int) []string {
	s := styles.S()

	if m.index.Len() == 0 {
		return []string{s.Faint.Render("no subtitles loaded")}
	}

	prev, next := m.neighbours()
	var out []string

	if prev >= 0 {
		out = append(out, s.Faint.Render(oneLine(m.index.At(prev).Text, width)))
	} else {
		out = append(out, "")
	}
	out = append(out, "")

	if c := m.status.Active; c != nil {
		for _, l := range render.Wrap(c.Text, width) {
			out = append(out, styles.CueGradient(l, styles.RepeatProgress(m.status.RepeatsDone, m.status.RepeatTarget)))
		}
		out = append(out, "", s.Counter.Render(Counter(m.status)))
	} else {
		out = append(out, s.Dim.Render("·  ·  ·"))
	}

	out = append(out, "")
	if next >= 0 {
		out = append(out, s.Dim.Render(oneLine(m.index.At(next).Text, width)))
	}
	return out
}

// Counter formats the repeat progress of the active cue, e.g. "repeat 2/3".
// Without repeats only the cue position is shown.
func Counter(st playback.Status) string {
	if st.RepeatTarget <= 1 {
		return fmt.Sprintf("cue %d/%d", st.ActiveIndex+1, st.CueCount)
	}
	return fmt.Sprintf("repeat %d/%d · cue %d/%d",
		st.RepeatsDone+1, st.RepeatTarget, st.ActiveIndex+1, st.CueCount)
}

func oneLine(text string, width int) string {
	return render.Truncate(strings.ReplaceAll(text, "\n", " / "), width)
}
