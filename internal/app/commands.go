// internal/app/commands.go
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/subrepeat/internal/subtitle"
)

// tickInterval is the redraw rate. Scheduling itself is driven by the
// poller, not by the UI.
const tickInterval = 100 * time.Millisecond

// TickCmd returns a command that sends TickMsg after tickInterval.
func TickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// WatchServiceEvents returns a command that waits for the next scheduler
// event and converts it to a tea.Msg.
func (m Model) WatchServiceEvents() tea.Cmd {
	if m.sub == nil {
		return nil
	}
	sub := m.sub
	return func() tea.Msg {
		select {
		case n := <-sub.Notice:
			return NoticeMsg(n)
		case e := <-sub.CueChanged:
			return CueChangedMsg(e)
		case e := <-sub.StateChanged:
			return StateChangedMsg(e)
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
	}
}

// WatchPlayerExit returns a command that fires once the player is gone.
func (m Model) WatchPlayerExit() tea.Cmd {
	done := m.svc.Player().Done()
	return func() tea.Msg {
		<-done
		return PlayerExitedMsg{}
	}
}

// LoadSubtitleCmd reads the subtitle file again in the background.
func LoadSubtitleCmd(path string, opts subtitle.IndexOptions) tea.Cmd {
	return func() tea.Msg {
		idx, err := subtitle.LoadIndex(path, opts)
		return ReloadedMsg{Path: path, Index: idx, Err: err}
	}
}

func (m Model) reloadCmd() tea.Cmd {
	return LoadSubtitleCmd(m.opts.Subtitle, subtitle.IndexOptions{
		MergeSymbol: m.opts.MergeSymbol,
		Shift:       m.status.Shift,
		Log:         m.opts.Log.With(zap.String("trigger", "reload")),
	})
}
